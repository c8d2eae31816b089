package dispatch

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrPathTaken reports a second handler registered on an occupied
	// path. It is raised synchronously at registration time.
	ErrPathTaken = errors.New("dispatch: path already has a handler")

	// ErrNotStarted reports a context installed or removed before the
	// listener began accepting.
	ErrNotStarted = errors.New("dispatch: listener not started")

	// ErrNoHandler reports an accepted request for a path with no
	// installed handler.
	ErrNoHandler = errors.New("dispatch: no handler for path")

	// ErrExchangeClosed reports a write against a finalized exchange.
	ErrExchangeClosed = errors.New("dispatch: exchange already closed")

	// ErrServerStart and ErrServerShutdown classify HTTP adapter
	// failures; the underlying error is joined in.
	ErrServerStart    = errors.New("dispatch: server start failed")
	ErrServerShutdown = errors.New("dispatch: server shutdown failed")
)

// HandlerError is how a failed dispatch reaches the executor's
// uncaught-error handler. It names the dispatch and path and wraps the
// cause; it never travels back to the request's caller.
type HandlerError struct {
	Dispatch uuid.UUID
	Path     string
	Err      error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("dispatch %s: handler for %q failed: %v", e.Dispatch, e.Path, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}
