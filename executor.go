package future

import (
	"log/slog"
	"time"
)

// ExecutorConfig configures an Executor.
type ExecutorConfig struct {
	// Size is the allowed number of concurrently running submissions,
	// covering computations and running bodies. Completion observers,
	// and the continuations built on them, are delivered outside the
	// cap. If it's 0 or less, the executor is unlimited.
	Size int

	// UncaughtErrorHandler receives errors that no value's result can
	// carry anymore, such as a dispatch failing after its value was
	// handed out. Defaults to logging through Logger.
	UncaughtErrorHandler func(err error)

	// UncaughtPanicHandler receives panic values recovered from
	// submitted work that cannot reject any value. Defaults to logging
	// through Logger.
	UncaughtPanicHandler func(v any)

	// Logger backs the default handlers. Defaults to slog.Default().
	Logger *slog.Logger
}

// Executor is the execution-service capability behind every computation,
// continuation and observer in this package, and the timer facility
// behind Delay.
//
// A nil *Executor is valid and behaves like NewExecutor(nil): unlimited,
// with logging default handlers.
type Executor struct {
	reserveChan          chan struct{}
	uncaughtErrorHandler func(err error)
	uncaughtPanicHandler func(v any)
	logger               *slog.Logger
}

// NewExecutor returns an Executor configured by cfg. A nil cfg yields an
// unlimited executor with default handlers.
func NewExecutor(cfg *ExecutorConfig) *Executor {
	e := &Executor{}
	if cfg != nil {
		if cfg.Size > 0 {
			e.reserveChan = make(chan struct{}, cfg.Size)
		}
		e.uncaughtErrorHandler = cfg.UncaughtErrorHandler
		e.uncaughtPanicHandler = cfg.UncaughtPanicHandler
		e.logger = cfg.Logger
	}
	return e
}

// Submit runs fn on a worker goroutine. It blocks the caller only while
// the executor's size cap is exhausted.
func (e *Executor) Submit(fn func()) {
	e.reserveGoroutine()
	go func() {
		defer e.freeGoroutine()
		fn()
	}()
}

// notify runs fn on a fresh goroutine, outside the size cap. Completion
// observers are delivered through it: the goroutine resolving a value may
// itself be a worker that already holds a reservation, and reserving
// again from there would block the executor on itself.
func (e *Executor) notify(fn func()) {
	go fn()
}

// ScheduleAfter arms a timer that runs fn once d elapses. The wait lives
// on the timer, not on a worker goroutine, so many pending schedules
// don't starve the executor. The returned stop function reports whether
// it prevented fn from running.
func (e *Executor) ScheduleAfter(d time.Duration, fn func()) (stop func() bool) {
	t := time.AfterFunc(d, fn)
	return t.Stop
}

// ReportError delivers err to the uncaught-error handler. It is the
// channel for failures that already escaped every result slot.
func (e *Executor) ReportError(err error) {
	if e != nil && e.uncaughtErrorHandler != nil {
		e.uncaughtErrorHandler(err)
		return
	}
	e.slogger().Error("future: uncaught error", "error", err)
}

func (e *Executor) reportPanic(v any) {
	if e != nil && e.uncaughtPanicHandler != nil {
		e.uncaughtPanicHandler(v)
		return
	}
	e.slogger().Error("future: uncaught panic", "value", v)
}

func (e *Executor) slogger() *slog.Logger {
	if e != nil && e.logger != nil {
		return e.logger
	}
	return slog.Default()
}

func (e *Executor) reserveGoroutine() {
	if e != nil && e.reserveChan != nil {
		e.reserveChan <- struct{}{}
	}
}

func (e *Executor) freeGoroutine() {
	if e != nil && e.reserveChan != nil {
		<-e.reserveChan
	}
}
