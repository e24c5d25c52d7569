package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// Server wraps http.Server with a start/stop lifecycle.
type Server struct {
	mu             sync.Mutex
	addr           string
	server         *http.Server
	listener       net.Listener
	logger         *slog.Logger
	shutdown       time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
	maxHeaderBytes int
	tlsConfig      *tls.Config
	running        bool
}

// New creates a Server listening on addr.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:           addr,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		shutdown:       DefaultShutdownTimeout,
		readTimeout:    DefaultReadTimeout,
		writeTimeout:   DefaultWriteTimeout,
		idleTimeout:    DefaultIdleTimeout,
		maxHeaderBytes: DefaultMaxHeaderBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Addr returns the bound address once the server is listening, and the
// configured address before that.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Start serves handler until ctx is cancelled or the listener fails. On
// cancellation it shuts down gracefully and returns nil.
func (s *Server) Start(ctx context.Context, handler http.Handler) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	if s.tlsConfig != nil {
		ln = tls.NewListener(ln, s.tlsConfig)
	}

	s.listener = ln
	s.server = &http.Server{
		Handler:        handler,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		TLSConfig:      s.tlsConfig,
		ErrorLog:       slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
		BaseContext:    func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	s.running = true
	srv := s.server
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "server starting",
		slog.String("addr", ln.Addr().String()),
		slog.Bool("tls", s.tlsConfig != nil),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.reset()
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		return s.Stop()
	}
}

// Stop gracefully shuts the server down. It is a no-op when not running.
func (s *Server) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	srv := s.server
	s.mu.Unlock()

	s.logger.Info("server shutting down", slog.Duration("timeout", s.shutdown))

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()

	err := srv.Shutdown(ctx)
	s.reset()
	if err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

func (s *Server) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.server = nil
	s.listener = nil
}

// Run returns a function suitable for errgroup.Group.Go.
func (s *Server) Run(ctx context.Context, handler http.Handler) func() error {
	return func() error {
		return s.Start(ctx, handler)
	}
}

// Run creates a Server on addr and returns its run function.
func Run(ctx context.Context, addr string, handler http.Handler, opts ...Option) func() error {
	return New(addr, opts...).Run(ctx, handler)
}
