// Package dispatch streams lazily produced response fragments to a
// per-request exchange, under cooperative cancellation.
//
// A [Handler] turns a [Request] into a lazy, possibly unbounded sequence
// of string fragments. The [Dispatcher] runs one cancellable task per
// accepted request: each iteration re-reads the cancellation token, pulls
// the next fragment and writes it to the [Exchange]. The task ends in one
// of three ways:
//
//   - Finished: the sequence is exhausted and the exchange is closed.
//   - Cancelled: the token was raised; the loop exits without closing
//     the exchange, leaving whatever was already written as its final
//     observable state.
//   - Failed: the handler or a write failed; the error goes to the
//     executor's uncaught-error channel and the dispatch is not retried.
//
// The [Listener] maps relative paths to handlers, with at most one
// handler per path, and hands accepted requests to the dispatcher.
// [Server] adapts a Listener to net/http; it is interface glue only and
// leaves all transport semantics to the standard library.
package dispatch
