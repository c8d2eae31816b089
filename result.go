package future

import "fmt"

// State describes the outcome held by a completed Result.
type State int

const (
	// the order here matters
	unknown State = iota
	Fulfilled
	Rejected
)

func (s State) String() string {
	switch s {
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	default:
		return "<unknown>"
	}
}

// Result is a container for the outcome of an asynchronous computation,
// either a value or an error.
type Result[T any] interface {
	Val() T
	Err() error
	State() State
}

// Empty returns a fulfilled Result carrying the zero value.
func Empty[T any]() Result[T] {
	return emptyResult[T]{}
}

// Val returns a fulfilled Result carrying val.
func Val[T any](val T) Result[T] {
	return valResult[T]{val: val}
}

// Err returns a rejected Result carrying err.
func Err[T any](err error) Result[T] {
	return errResult[T]{err: err}
}

// ValErr returns a rejected Result carrying both a value and the error
// that accompanied it.
func ValErr[T any](val T, err error) Result[T] {
	return valErrResult[T]{val: val, err: err}
}

type emptyResult[T any] struct{}
type valResult[T any] struct{ val T }
type errResult[T any] struct{ err error }
type valErrResult[T any] struct {
	val T
	err error
}

func (r emptyResult[T]) Val() (v T)  { return v }
func (r valResult[T]) Val() (v T)    { return r.val }
func (r errResult[T]) Val() (v T)    { return v }
func (r valErrResult[T]) Val() (v T) { return r.val }

func (r emptyResult[T]) Err() error  { return nil }
func (r valResult[T]) Err() error    { return nil }
func (r errResult[T]) Err() error    { return r.err }
func (r valErrResult[T]) Err() error { return r.err }

func (r emptyResult[T]) State() State  { return Fulfilled }
func (r valResult[T]) State() State    { return Fulfilled }
func (r errResult[T]) State() State    { return Rejected }
func (r valErrResult[T]) State() State { return Rejected }

func (r emptyResult[T]) String() string {
	return "fulfilled: <nil>"
}
func (r valResult[T]) String() string {
	return fmt.Sprintf("fulfilled: %v", r.val)
}
func (r errResult[T]) String() string {
	return fmt.Sprintf("rejected: %s", r.err.Error())
}
func (r valErrResult[T]) String() string {
	return fmt.Sprintf("rejected: (%v, %s)", r.val, r.err.Error())
}
