// Package future is a small toolkit for composing asynchronous
// computations.
//
// The central type is [Value], a single-assignment result slot that is
// completed exactly once, from any goroutine, and observed any number of
// times. Values are built with constructors like [Always], [Never],
// [Delay], [Go] and [NewSource], and combined with [All], [Any],
// [ContinueWith] and [Continue].
//
// # Execution model
//
// Every constructor takes an [*Executor], the execution-service capability
// that runs computations, continuations and completion observers, and that
// provides the timer behind [Delay]. Nothing in the package touches a
// global scheduler; a nil *Executor behaves like an unlimited default one.
//
// No combinator blocks its caller. The only blocking entry points are the
// explicit waits on a Value: [Value.Wait], [Value.Result] and the timed
// [Value.Await]. [Value.Now] is a synchronous peek and never waits.
//
// # Cancellation
//
// Cancellation is cooperative. [Run] starts a body with a [*Token] and
// returns a [*TokenSource] whose Unsubscribe raises the token's one-way
// flag. The body is expected to poll [Token.NonCancelled] at loop heads
// and exit promptly; nothing can force-stop a body that never checks.
//
// # Errors
//
// Failures travel as rejected results inside a Value, never as panics
// across goroutines. A panic inside a computation or continuation is
// recovered and carried as a [PanicError]. Failures that no result can
// carry reach the executor's uncaught-error handler.
package future
