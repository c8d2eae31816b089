package future

import (
	"errors"
	"fmt"
)

var (
	// ErrTimedOut is returned by Await when the deadline elapses before
	// the value completes. The wait is abandoned; the value itself is not
	// affected and may still complete later for other waiters.
	ErrTimedOut = errors.New("future: await timed out")

	// ErrNotCompleted is returned by Now when the value holds no
	// successful result to peek at, either because it is still pending or
	// because it was rejected. In the rejected case the cause is joined
	// in, so errors.Is works against both.
	ErrNotCompleted = errors.New("future: value not completed")
)

// panic messages
const (
	nilCallbackPanicMsg = "future: the provided callback is nil"
	nilObserverPanicMsg = "future: the provided observer is nil"
)

// PanicError carries a panic value recovered from a computation or a
// continuation, rejecting the value it was meant to complete.
type PanicError struct {
	V any
}

func (e PanicError) Error() string {
	return fmt.Sprintf("future: recovered panic: %v", e.V)
}
