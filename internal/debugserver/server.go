// Package debugserver runs the monitoring routes on their own listener so
// they stay reachable when the main application is saturated.
package debugserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/NZ-WEB/go-monitoring/apis/common"
	"github.com/NZ-WEB/go-monitoring/internal/config"
	"github.com/NZ-WEB/go-monitoring/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var (
	// ErrNotRunning is returned by Addr when no listener is bound.
	ErrNotRunning = errors.New("debugserver: not running")

	// ErrClosed is returned by Start after Shutdown.
	ErrClosed = errors.New("debugserver: closed")
)

// Server is the secondary HTTP listener.
type Server struct {
	cfg config.DebugServerConfig
	app *fiber.App

	mu       sync.Mutex
	listener net.Listener
	done     chan struct{}
	closed   bool
}

// New builds the debug application. mount registers the monitoring routes
// on it, the same way they are registered on the main application.
func New(cfg config.DebugServerConfig, mount func(fiber.Router)) *Server {
	app := common.NewApp("debug server")
	if mount != nil {
		mount(app)
	}
	return &Server{cfg: cfg, app: app}
}

// App exposes the underlying application, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

// Start binds the configured port and serves in the background. A bind
// failure is logged and returned; the server then stays stopped and the
// caller may carry on without it.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.listener != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		logger.Error("debug server failed to bind", zap.String("addr", s.cfg.Addr()), zap.Error(err))
		return fmt.Errorf("debugserver: listen %s: %w", s.cfg.Addr(), err)
	}

	s.listener = ln
	s.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		if err := s.app.Listener(ln); err != nil && !s.isClosed() {
			logger.Error("debug server stopped serving", zap.Error(err))
		}
	}(s.done)

	logger.Infof("Debug server started on http://%s", ln.Addr())
	return nil
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Running reports whether the listener is bound.
func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listener != nil
}

// Addr returns the bound address, or ErrNotRunning.
func (s *Server) Addr() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return "", ErrNotRunning
	}
	return s.listener.Addr().String(), nil
}

// Shutdown stops accepting connections, waits for in-flight requests and
// for the serve loop to exit. ctx bounds the wait. Calling Shutdown on a
// stopped server is a no-op, and a server cannot be started again after it.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	ln, done := s.listener, s.done
	s.listener = nil
	s.mu.Unlock()

	if ln == nil {
		return nil
	}

	logger.Info("closing debug server")

	var errs []error
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, err)
	}
	// The serve goroutine may not have handed ln to the server yet.
	if err := ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		errs = append(errs, err)
	}

	select {
	case <-done:
	case <-ctx.Done():
		errs = append(errs, ctx.Err())
	}

	if err := errors.Join(errs...); err != nil {
		logger.Error("error closing debug server", zap.Error(err))
		return fmt.Errorf("debugserver: shutdown: %w", err)
	}

	logger.Info("debug server closed")
	return nil
}
