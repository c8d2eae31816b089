package future

import (
	"errors"
	"testing"
	"time"
)

// testStrError is an error implementation that's used only for testing.
// it's a string to allow comparing its values.
type testStrError string

func (t testStrError) Error() string {
	return string(t)
}

func newStrError() error {
	return testStrError("str_test_error")
}

func TestAlways(t *testing.T) {
	t.Run("zero wait", func(t *testing.T) {
		v := Always(nil, 42)
		got, err := v.Await(0)
		if err != nil {
			t.Fatalf("Await(0) returned error: %v", err)
		}
		if got != 42 {
			t.Fatalf("Await(0) = %d, want: 42", got)
		}
	})

	t.Run("now", func(t *testing.T) {
		v := Always(nil, "done")
		got, err := v.Now()
		if err != nil {
			t.Fatalf("Now() returned error: %v", err)
		}
		if got != "done" {
			t.Fatalf("Now() = %q, want: %q", got, "done")
		}
	})
}

func TestNever(t *testing.T) {
	v := Never[int](nil)

	start := time.Now()
	_, err := v.Await(50 * time.Millisecond)
	if !errors.Is(err, ErrTimedOut) {
		t.Fatalf("Await() error = %v, want: ErrTimedOut", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("Await() returned after %s, before the deadline", elapsed)
	}

	if _, err := v.Now(); !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("Now() error = %v, want: ErrNotCompleted", err)
	}
}

func TestNow(t *testing.T) {
	t.Run("pending", func(t *testing.T) {
		src := NewSource[int](nil)
		if _, err := src.Value().Now(); !errors.Is(err, ErrNotCompleted) {
			t.Fatalf("Now() error = %v, want: ErrNotCompleted", err)
		}
	})

	t.Run("fulfilled", func(t *testing.T) {
		src := NewSource[int](nil)
		src.Fulfill(7)
		got, err := src.Value().Now()
		if err != nil {
			t.Fatalf("Now() returned error: %v", err)
		}
		if got != 7 {
			t.Fatalf("Now() = %d, want: 7", got)
		}
	})

	t.Run("rejected", func(t *testing.T) {
		cause := newStrError()
		src := NewSource[int](nil)
		src.Reject(cause)

		_, err := src.Value().Now()
		if !errors.Is(err, ErrNotCompleted) {
			t.Fatalf("Now() error = %v, want it to match ErrNotCompleted", err)
		}
		if !errors.Is(err, cause) {
			t.Fatalf("Now() error = %v, want it to match the cause", err)
		}
	})
}

func TestAwait(t *testing.T) {
	t.Run("propagates rejection", func(t *testing.T) {
		wantErr := newStrError()
		v := Wrap(nil, Err[int](wantErr))
		_, err := v.Await(0)
		if !errors.Is(err, wantErr) {
			t.Fatalf("Await() error = %v, want: %v", err, wantErr)
		}
	})

	t.Run("timeout leaves the value intact", func(t *testing.T) {
		src := NewSource[int](nil)
		if _, err := src.Value().Await(20 * time.Millisecond); !errors.Is(err, ErrTimedOut) {
			t.Fatalf("Await() error = %v, want: ErrTimedOut", err)
		}

		// the timed-out wait must not have consumed or affected the value.
		src.Fulfill(9)
		got, err := src.Value().Await(time.Second)
		if err != nil {
			t.Fatalf("second Await() returned error: %v", err)
		}
		if got != 9 {
			t.Fatalf("second Await() = %d, want: 9", got)
		}
	})
}

func TestOnComplete(t *testing.T) {
	t.Run("fires once after completion", func(t *testing.T) {
		src := NewSource[int](nil)
		got := make(chan int, 1)
		src.Value().OnComplete(func(res Result[int]) {
			got <- res.Val()
		})

		src.Fulfill(5)
		select {
		case v := <-got:
			if v != 5 {
				t.Fatalf("observer got %d, want: 5", v)
			}
		case <-time.After(time.Second):
			t.Fatal("observer never fired")
		}
	})

	t.Run("fires on an already completed value", func(t *testing.T) {
		v := Always(nil, 3)
		got := make(chan int, 1)
		v.OnComplete(func(res Result[int]) {
			got <- res.Val()
		})

		select {
		case val := <-got:
			if val != 3 {
				t.Fatalf("observer got %d, want: 3", val)
			}
		case <-time.After(time.Second):
			t.Fatal("observer never fired")
		}
	})
}

func TestSource(t *testing.T) {
	t.Run("first completion wins", func(t *testing.T) {
		src := NewSource[int](nil)
		if !src.Fulfill(1) {
			t.Fatal("first Fulfill() = false")
		}
		if src.Fulfill(2) {
			t.Fatal("second Fulfill() = true")
		}
		if src.Reject(newStrError()) {
			t.Fatal("Reject() after Fulfill() = true")
		}

		got, err := src.Value().Await(0)
		if err != nil {
			t.Fatalf("Await() returned error: %v", err)
		}
		if got != 1 {
			t.Fatalf("Await() = %d, want: 1", got)
		}
	})

	t.Run("nil rejection fulfills empty", func(t *testing.T) {
		src := NewSource[int](nil)
		if !src.Reject(nil) {
			t.Fatal("Reject(nil) = false")
		}
		res := src.Value().Result()
		if res.State() != Fulfilled {
			t.Fatalf("State() = %v, want: Fulfilled", res.State())
		}
	})
}

func TestExecutorSizeCap(t *testing.T) {
	exec := NewExecutor(&ExecutorConfig{Size: 2})

	release := make(chan struct{})
	started := make(chan struct{}, 3)
	for i := 0; i < 2; i++ {
		exec.Submit(func() {
			started <- struct{}{}
			<-release
		})
	}
	<-started
	<-started

	// the third submission must block until a reservation frees up.
	third := make(chan struct{})
	go func() {
		exec.Submit(func() { started <- struct{}{} })
		close(third)
	}()

	select {
	case <-third:
		t.Fatal("Submit() returned while the cap was exhausted")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("capped submission never ran")
	}
}

func TestExecutorCapObserverDelivery(t *testing.T) {
	// observers and continuations are delivered outside the size cap, so a
	// worker that resolves a value while holding the only reservation can
	// never block the executor on itself.
	t.Run("continuation under a full cap", func(t *testing.T) {
		exec := NewExecutor(&ExecutorConfig{Size: 1})

		gate := make(chan struct{})
		v := Go(exec, func() (int, error) {
			<-gate
			return 1, nil
		})
		next := ContinueWith(exec, v, func(prev Value[int]) (int, error) {
			got, err := prev.Now()
			return got + 1, err
		})

		close(gate)
		got, err := next.Await(2 * time.Second)
		if err != nil {
			t.Fatalf("Await() returned error: %v", err)
		}
		if got != 2 {
			t.Fatalf("Await() = %d, want: 2", got)
		}
	})

	t.Run("run under a full cap", func(t *testing.T) {
		exec := NewExecutor(&ExecutorConfig{Size: 1})

		sub := Run(exec, func(*Token) Value[Unit] {
			return Always(exec, Unit{})
		})
		if _, err := sub.Done().Await(2 * time.Second); err != nil {
			t.Fatalf("Done() Await() returned error: %v", err)
		}
	})

	t.Run("chained continuations under a full cap", func(t *testing.T) {
		exec := NewExecutor(&ExecutorConfig{Size: 1})

		v := Go(exec, func() (int, error) { return 1, nil })
		for i := 0; i < 4; i++ {
			v = ContinueWith(exec, v, func(prev Value[int]) (int, error) {
				got, err := prev.Now()
				return got + 1, err
			})
		}

		got, err := v.Await(2 * time.Second)
		if err != nil {
			t.Fatalf("Await() returned error: %v", err)
		}
		if got != 5 {
			t.Fatalf("Await() = %d, want: 5", got)
		}
	})
}
