package future

import "sync/atomic"

// Subscription is a one-shot cancel or unregister capability. Unsubscribe
// is idempotent and never blocks.
type Subscription interface {
	Unsubscribe()
}

// Token is the cooperative cancellation flag handed to a running body.
// The flag moves one way, from not-cancelled to cancelled, and both
// checks re-read it on every call; nothing is cached.
type Token struct {
	cancelled atomic.Bool
}

// Cancelled reports whether Unsubscribe was called on the owning source.
func (t *Token) Cancelled() bool {
	return t.cancelled.Load()
}

// NonCancelled is the loop-head form of the check.
func (t *Token) NonCancelled() bool {
	return !t.cancelled.Load()
}

// TokenSource owns exactly one Token and the completion handle of the
// task the token was issued to. It implements Subscription.
//
// The source may become unreachable to the caller while the task keeps
// reading its token; the task retains the token for as long as it runs.
type TokenSource struct {
	token Token
	done  *asyncValue[Unit]
}

// Token returns the source's token.
func (s *TokenSource) Token() *Token {
	return &s.token
}

// Done is the running task's completion handle: it completes once the
// body returns and the value the body returned completes.
func (s *TokenSource) Done() Value[Unit] {
	return s.done
}

// Unsubscribe asks the running body to stop. It only raises the token's
// flag and returns immediately; it does not wait for the body to observe
// the flag and exit.
func (s *TokenSource) Unsubscribe() {
	s.token.cancelled.Store(true)
}

// Run creates a fresh TokenSource, starts body(token) on the executor
// without blocking the caller, and returns the source that can cancel it.
//
// Cancellation is cooperative, not preemptive: the body is expected to
// poll Token.NonCancelled at reasonable intervals inside any loop and
// terminate promptly once it turns false. How often the check happens is
// the body's responsibility; nothing here can interrupt a body that
// never checks.
//
// A panic in body rejects Done with a PanicError.
//
// It will panic if a nil body is passed.
func Run(e *Executor, body func(t *Token) Value[Unit]) *TokenSource {
	if body == nil {
		panic(nilCallbackPanicMsg)
	}

	src := &TokenSource{done: newValue[Unit](e)}
	e.Submit(func() {
		defer handleReturns(src.done)
		inner := body(&src.token)
		if inner == nil {
			src.done.resolve(Empty[Unit]())
			return
		}
		inner.OnComplete(func(res Result[Unit]) {
			src.done.resolve(res)
		})
	})
	return src
}
