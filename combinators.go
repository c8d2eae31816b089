package future

import (
	"sync/atomic"
	"time"

	"github.com/asyncify/future/internal/uniquerand"
)

// Always returns a Value that is already completed with v. No goroutine
// is involved.
func Always[T any](e *Executor, v T) Value[T] {
	return newValueSync(e, Val(v))
}

// Wrap returns a Value that is already completed with res. A nil res
// completes as an empty fulfilled result.
func Wrap[T any](e *Executor, res Result[T]) Value[T] {
	return newValueSync(e, res)
}

// Never returns a Value that never completes. It holds no goroutine and
// no timer, so abandoning it leaks nothing; it only serves waiters as the
// base case of unbounded waits.
func Never[T any](e *Executor) Value[T] {
	return newValue[T](e)
}

// Delay returns a Value that completes with Unit no earlier than d from
// now. The wait lives on the executor's timer facility; the caller is
// never blocked and no worker goroutine is parked for the duration.
func Delay(e *Executor, d time.Duration) Value[Unit] {
	v := newValue[Unit](e)
	e.ScheduleAfter(d, func() {
		v.resolve(Empty[Unit]())
	})
	return v
}

// Go runs fn on the executor and returns the Value of its eventual
// result. A panic in fn rejects the value with a PanicError.
//
// It will panic if a nil function is passed.
func Go[T any](e *Executor, fn func() (T, error)) Value[T] {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}

	v := newValue[T](e)
	e.Submit(func() {
		defer handleReturns(v)
		val, err := fn()
		if err != nil {
			v.resolve(Err[T](err))
		} else {
			v.resolve(Val(val))
		}
	})
	return v
}

// All returns a Value that completes with every input's value, preserving
// input order, once all inputs fulfill. If any input rejects, the first
// observed rejection wins; which one is first follows completion order,
// not input order. Zero inputs complete immediately with an empty slice.
//
// All registers completion observers only. No goroutine waits on the
// inputs, so abandoning the returned Value before completion leaks
// nothing.
func All[T any](e *Executor, vs ...Value[T]) Value[[]T] {
	if len(vs) == 0 {
		return Always(e, []T{})
	}

	next := newValue[[]T](e)
	out := make([]T, len(vs))

	var pending atomic.Int64
	pending.Store(int64(len(vs)))

	for i, in := range vs {
		in.OnComplete(func(res Result[T]) {
			if err := res.Err(); err != nil {
				// first rejection wins the status claim; later ones lose
				// and are discarded.
				next.resolve(Err[[]T](err))
				return
			}
			// each observer owns its slot; the final decrement publishes
			// all slot writes to the resolver.
			out[i] = res.Val()
			if pending.Add(-1) == 0 {
				next.resolve(Val(out))
			}
		})
	}
	return next
}

// Any returns a Value that adopts the result of whichever input completes
// first, success or failure. Losing the race cancels nothing: the
// remaining inputs keep running and their results are discarded.
//
// Inputs that already completed are probed in random unique order before
// any observer is registered, so no fixed input-order bias exists among
// simultaneously settled inputs. Zero inputs never complete.
func Any[T any](e *Executor, vs ...Value[T]) Value[T] {
	if len(vs) == 0 {
		return Never[T](e)
	}

	next := newValue[T](e)

	var randIdx uniquerand.Int
	randIdx.Reset(len(vs))
	for idx, ok := randIdx.Get(); ok; idx, ok = randIdx.Get() {
		if res, settled := vs[idx].poll(); settled {
			next.resolve(res)
			return next
		}
	}

	for _, in := range vs {
		in.OnComplete(func(res Result[T]) {
			// exactly one racer wins the status claim.
			next.resolve(res)
		})
	}
	return next
}

// ContinueWith returns a Value for f's result, where f runs on the
// executor once v completes and receives the completed v itself, so it
// can inspect it synchronously with Now or Result. An error or panic
// from f rejects the returned Value. The caller is never blocked.
//
// It will panic if a nil function is passed.
func ContinueWith[T, S any](e *Executor, v Value[T], f func(Value[T]) (S, error)) Value[S] {
	if f == nil {
		panic(nilCallbackPanicMsg)
	}

	next := newValue[S](e)
	v.OnComplete(func(Result[T]) {
		defer handleReturns(next)
		s, err := f(v)
		if err != nil {
			next.resolve(Err[S](err))
		} else {
			next.resolve(Val(s))
		}
	})
	return next
}

// Continue is ContinueWith with f receiving the unwrapped Result instead
// of the completed Value handle.
//
// It will panic if a nil function is passed.
func Continue[T, S any](e *Executor, v Value[T], f func(Result[T]) (S, error)) Value[S] {
	if f == nil {
		panic(nilCallbackPanicMsg)
	}

	next := newValue[S](e)
	v.OnComplete(func(res Result[T]) {
		defer handleReturns(next)
		s, err := f(res)
		if err != nil {
			next.resolve(Err[S](err))
		} else {
			next.resolve(Val(s))
		}
	})
	return next
}

// Source completes a single Value through explicit calls, the way a
// resolver callback would. The first Fulfill or Reject wins; later calls
// report false and change nothing.
type Source[T any] struct {
	v *asyncValue[T]
}

// NewSource returns a Source and the pending Value it completes.
func NewSource[T any](e *Executor) *Source[T] {
	return &Source[T]{v: newValue[T](e)}
}

// Value returns the Value this source completes.
func (s *Source[T]) Value() Value[T] {
	return s.v
}

// Fulfill completes the value with val. It reports whether this call was
// the one that completed it.
func (s *Source[T]) Fulfill(val T) bool {
	return s.v.resolve(Val(val))
}

// Reject completes the value with err. A nil err fulfills with the empty
// result instead.
func (s *Source[T]) Reject(err error) bool {
	if err == nil {
		return s.v.resolve(Empty[T]())
	}
	return s.v.resolve(Err[T](err))
}
