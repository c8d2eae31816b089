package dispatch

import (
	"iter"
	"log/slog"

	"github.com/google/uuid"

	"github.com/asyncify/future"
)

// Dispatcher runs one cancellable streaming task per accepted request.
type Dispatcher struct {
	exec   *future.Executor
	logger *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger used for per-dispatch records.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDispatcher returns a Dispatcher running its tasks on exec.
func NewDispatcher(exec *future.Executor, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		exec:   exec,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch starts the streaming loop for req on the executor, without
// blocking the caller, and returns the source that cancels it.
//
// The loop re-reads the token before every pull. On cancellation it
// stops without closing the exchange, so whatever was already written
// stays as the exchange's final observable state; what happens to a
// never-closed exchange is the transport's business. A handler or write
// failure goes to the executor's uncaught-error channel as a
// *HandlerError and also rejects the returned source's Done value.
func (d *Dispatcher) Dispatch(req Request, h Handler, ex Exchange) *future.TokenSource {
	id := uuid.New()
	return future.Run(d.exec, func(tok *future.Token) future.Value[future.Unit] {
		if err := d.stream(tok, req, h, ex); err != nil {
			d.exec.ReportError(&HandlerError{Dispatch: id, Path: req.Path(), Err: err})
			return future.Wrap(d.exec, future.Err[future.Unit](err))
		}
		if tok.Cancelled() {
			d.logger.Debug("dispatch cancelled",
				"dispatch_id", id, "path", req.Path())
		} else {
			d.logger.Debug("dispatch finished",
				"dispatch_id", id, "path", req.Path())
		}
		return future.Always(d.exec, future.Unit{})
	})
}

// stream runs the Streaming state until Finished (sequence exhausted,
// exchange closed), Cancelled (token raised, exchange left open) or a
// failure. A panic in the handler or the sequence is returned as a
// PanicError so the dispatch fails rather than crashing its worker.
func (d *Dispatcher) stream(tok *future.Token, req Request, h Handler, ex Exchange) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = future.PanicError{V: r}
		}
	}()

	next, stop := iter.Pull(h(req))
	defer stop()

	for tok.NonCancelled() {
		fragment, ok := next()
		if !ok {
			return ex.Close()
		}
		if err := ex.Write(fragment); err != nil {
			return err
		}
	}
	return nil
}
