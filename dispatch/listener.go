package dispatch

import (
	"fmt"
	"sync"

	"github.com/asyncify/future"
)

// Listener maps relative paths to installed handlers and hands accepted
// requests to its Dispatcher. At most one handler holds a path at a time;
// installing and removing require exclusive access to the mapping.
type Listener struct {
	dispatcher *Dispatcher

	mu      sync.Mutex
	started bool
	routes  map[string]Handler
}

// NewListener returns a Listener dispatching through d.
func NewListener(d *Dispatcher) *Listener {
	return &Listener{
		dispatcher: d,
		routes:     make(map[string]Handler),
	}
}

// Begin starts accepting. CreateContext and RemoveContext reject calls
// made before it.
func (l *Listener) Begin() {
	l.mu.Lock()
	l.started = true
	l.mu.Unlock()
}

// Halt stops accepting new dispatches. In-flight dispatches are
// unaffected; only their own tokens stop them.
func (l *Listener) Halt() {
	l.mu.Lock()
	l.started = false
	l.mu.Unlock()
}

// Start registers handler for path, begins accepting, and returns the
// subscription that removes the registration again. Unsubscribing stops
// new dispatches for the path but leaves in-flight ones running.
func (l *Listener) Start(path string, h Handler) (future.Subscription, error) {
	l.Begin()
	if err := l.CreateContext(path, h); err != nil {
		return nil, err
	}
	return &registration{l: l, path: path}, nil
}

// CreateContext installs handler for path. It fails with ErrNotStarted
// before Begin and with ErrPathTaken when the path is occupied.
func (l *Listener) CreateContext(path string, h Handler) error {
	if h == nil {
		panic(nilHandlerPanicMsg)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.started {
		return ErrNotStarted
	}
	if _, ok := l.routes[path]; ok {
		return fmt.Errorf("%w: %s", ErrPathTaken, path)
	}
	l.routes[path] = h
	return nil
}

// RemoveContext uninstalls the handler for path. It fails with
// ErrNotStarted before Begin; removing a vacant path is a no-op.
func (l *Listener) RemoveContext(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.started {
		return ErrNotStarted
	}
	delete(l.routes, path)
	return nil
}

// Accept hands an accepted request to the dispatcher using the handler
// installed for the request's path, and returns the dispatch
// subscription. It fails with ErrNotStarted while halted and with
// ErrNoHandler when the path is vacant.
func (l *Listener) Accept(req Request, ex Exchange) (*future.TokenSource, error) {
	l.mu.Lock()
	started := l.started
	h := l.routes[req.Path()]
	l.mu.Unlock()

	if !started {
		return nil, ErrNotStarted
	}
	if h == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoHandler, req.Path())
	}
	return l.dispatcher.Dispatch(req, h, ex), nil
}

const nilHandlerPanicMsg = "dispatch: the provided handler is nil"

// registration removes its path when unsubscribed. It bypasses the
// started check so a halted listener can still be cleaned up.
type registration struct {
	l    *Listener
	path string
	once sync.Once
}

func (r *registration) Unsubscribe() {
	r.once.Do(func() {
		r.l.mu.Lock()
		delete(r.l.routes, r.path)
		r.l.mu.Unlock()
	})
}
