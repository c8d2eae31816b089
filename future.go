package future

import (
	"errors"
	"sync"
	"time"

	"github.com/asyncify/future/internal/status"
)

// Unit is the result type of computations that are run for their effects
// only.
type Unit = struct{}

// Value represents the eventual result of an asynchronous computation: a
// single-assignment slot that moves from pending to completed exactly
// once, from any goroutine, and is immutable afterwards.
//
// It's a private interface, implemented only by types of this package.
type Value[T any] interface {
	// Wait blocks the calling goroutine until the value completes.
	Wait()

	// Result blocks until the value completes and returns its result.
	// The result may be read any number of times, by any goroutine.
	Result() Result[T]

	// Await blocks up to d for the value to complete. It returns the
	// value on fulfillment, the stored error on rejection, and
	// ErrTimedOut if the deadline elapses first. A timed-out wait is
	// abandoned; it neither cancels nor otherwise affects the value.
	//
	// A zero-duration Await against an already completed value succeeds
	// synchronously; completion is checked before any timer is armed.
	Await(d time.Duration) (T, error)

	// Now is a synchronous peek; it never waits. It returns the value if
	// the Value is fulfilled, and ErrNotCompleted otherwise. When the
	// Value is rejected, the rejection cause is joined into the returned
	// error.
	Now() (T, error)

	// OnComplete registers fn to run once on the executor after the
	// value completes. On an already completed value fn is still
	// scheduled, never invoked synchronously from OnComplete.
	OnComplete(fn func(Result[T]))

	// poll reports the result without waiting, sealing the interface to
	// implementations from this package.
	poll() (Result[T], bool)
}

// asyncValue is the default Value implementation.
//
// The zero value is not usable; values are created through the package
// constructors.
type asyncValue[T any] struct {
	exec *Executor

	// closed when this value completes.
	// one goroutine closes it, after winning the status claim and
	// writing res; any number of goroutines may receive on it.
	done chan struct{}

	// holds the result of the value.
	// written once, before the done channel is closed and before the
	// terminal status is published. don't read it unless one of those
	// publications was observed.
	res Result[T]

	// the atomic phase of the value; guards the single assignment.
	st status.Status

	// guards observers until completion. resolve takes the lock after
	// publishing the terminal status, which is what makes the
	// registered-or-fired decision in OnComplete race-free.
	mu        sync.Mutex
	observers []func(Result[T])
}

func newValue[T any](e *Executor) *asyncValue[T] {
	return &asyncValue[T]{exec: e, done: make(chan struct{})}
}

// newValueSync returns a value that is completed synchronously, just
// after it's created.
func newValueSync[T any](e *Executor, res Result[T]) *asyncValue[T] {
	v := newValue[T](e)
	v.resolve(res)
	return v
}

// resolve completes the value with res. Exactly one caller wins; later
// calls report false and their result is discarded.
func (v *asyncValue[T]) resolve(res Result[T]) bool {
	if !v.st.TrySetResolving() {
		return false
	}

	if res == nil {
		res = Empty[T]()
	}
	v.res = res
	if res.Err() != nil {
		v.st.SetRejected()
	} else {
		v.st.SetFulfilled()
	}
	close(v.done)

	v.mu.Lock()
	observers := v.observers
	v.observers = nil
	v.mu.Unlock()
	for _, fn := range observers {
		v.exec.notify(func() { fn(res) })
	}
	return true
}

func (v *asyncValue[T]) Wait() {
	<-v.done
}

func (v *asyncValue[T]) Result() Result[T] {
	<-v.done
	return v.res
}

func (v *asyncValue[T]) Await(d time.Duration) (T, error) {
	if res, ok := v.poll(); ok {
		return res.Val(), res.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-v.done:
		return v.res.Val(), v.res.Err()
	case <-timer.C:
		var zero T
		return zero, ErrTimedOut
	}
}

func (v *asyncValue[T]) Now() (T, error) {
	var zero T
	res, ok := v.poll()
	if !ok {
		return zero, ErrNotCompleted
	}
	if err := res.Err(); err != nil {
		return zero, errors.Join(ErrNotCompleted, err)
	}
	return res.Val(), nil
}

func (v *asyncValue[T]) OnComplete(fn func(Result[T])) {
	if fn == nil {
		panic(nilObserverPanicMsg)
	}

	v.mu.Lock()
	if !status.IsResolved(v.st.Load()) {
		v.observers = append(v.observers, fn)
		v.mu.Unlock()
		return
	}
	v.mu.Unlock()

	res := v.res
	v.exec.notify(func() { fn(res) })
}

func (v *asyncValue[T]) poll() (Result[T], bool) {
	if !status.IsResolved(v.st.Load()) {
		return nil, false
	}
	return v.res, true
}

// handleReturns must be deferred around computation callbacks. It turns a
// panic into a rejection of v; if v was already resolved, the panic value
// goes to the executor's uncaught-panic handler instead.
func handleReturns[T any](v *asyncValue[T]) {
	r := recover()
	if r == nil {
		return
	}
	if !v.resolve(Err[T](PanicError{V: r})) {
		v.exec.reportPanic(r)
	}
}
