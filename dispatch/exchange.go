package dispatch

import (
	"strings"
	"sync"
)

// Exchange is the per-request transport handle the dispatcher writes to.
// Write appends a fragment to the accumulated response; Close finalizes
// it. Writing after Close is a caller error. A second Close is undefined
// and left to the transport implementation.
//
// Both methods must be safe to call from the goroutine running the
// dispatch loop.
type Exchange interface {
	Write(fragment string) error
	Close() error
}

// BufferExchange accumulates fragments in memory.
//
// Its content is readable at any time, closed or not: a cancelled
// dispatch leaves partial content observable, and Close is only a
// finalization hint, never a gate on readability.
type BufferExchange struct {
	mu     sync.Mutex
	buf    strings.Builder
	closed bool
}

// NewBufferExchange returns an empty, open BufferExchange.
func NewBufferExchange() *BufferExchange {
	return &BufferExchange{}
}

// Write appends fragment to the accumulated content. It returns
// ErrExchangeClosed after Close.
func (x *BufferExchange) Write(fragment string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.closed {
		return ErrExchangeClosed
	}
	x.buf.WriteString(fragment)
	return nil
}

// Close finalizes the accumulated content.
func (x *BufferExchange) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.closed = true
	return nil
}

// Content returns the fragments written so far, concatenated.
func (x *BufferExchange) Content() string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.buf.String()
}

// Closed reports whether Close was called.
func (x *BufferExchange) Closed() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.closed
}
