package dispatch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Server adapts a Listener to net/http. Each incoming request becomes a
// Request plus a response-writer-backed exchange, and a client
// disconnect unsubscribes the dispatch. It is interface glue only:
// header parsing, connection lifecycle and keep-alive stay with
// net/http, and what happens to a connection whose exchange was never
// closed (a cancelled stream) is net/http's timeout machinery's call.
type Server struct {
	cfg      Config
	listener *Listener
	logger   *slog.Logger

	mu  sync.Mutex
	srv *http.Server
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerLogger sets the server's logger.
func WithServerLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer returns a Server that exposes l over HTTP per cfg.
func NewServer(cfg Config, l *Listener, opts ...ServerOption) *Server {
	s := &Server{
		cfg:      cfg,
		listener: l,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router serving the listener's paths. Routing is a
// single wildcard: the listener's mapping is dynamic, so path lookup
// happens per request rather than at mount time.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Handle("/*", http.HandlerFunc(s.serve))
	return r
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	req := NewRequest(r.URL.Path, r.Header)
	ex := &responseExchange{w: w}

	sub, err := s.listener.Accept(req, ex)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoHandler):
			http.NotFound(w, r)
		default:
			http.Error(w, http.StatusText(http.StatusServiceUnavailable),
				http.StatusServiceUnavailable)
		}
		return
	}

	// the handler must not return while the dispatch may still write, so
	// block until the dispatch task completes; a client disconnect asks
	// it to stop first.
	done := make(chan struct{})
	go func() {
		sub.Done().Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-r.Context().Done():
		sub.Unsubscribe()
		<-done
	}
}

// Run starts the HTTP server and blocks until ctx is done or the server
// fails, then shuts down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrServerStart, errors.New("server already running"))
	}
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}
	s.srv = srv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("dispatch server started", "addr", s.cfg.Addr)

	var runErr error
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = errors.Join(ErrServerStart, err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			runErr = errors.Join(ErrServerShutdown, err)
		}
	}

	s.logger.Info("dispatch server stopped")
	return runErr
}

// responseExchange adapts http.ResponseWriter to the Exchange
// capability. Fragments are flushed as written so long-running handlers
// actually stream.
type responseExchange struct {
	mu     sync.Mutex
	w      http.ResponseWriter
	closed bool
}

func (x *responseExchange) Write(fragment string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.closed {
		return ErrExchangeClosed
	}
	if _, err := io.WriteString(x.w, fragment); err != nil {
		return err
	}
	if f, ok := x.w.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}

func (x *responseExchange) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.closed = true
	return nil
}
