package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/NZ-WEB/go-monitoring/apis/common"
	"github.com/NZ-WEB/go-monitoring/internal/config"
	"github.com/NZ-WEB/go-monitoring/internal/handlers"
	"github.com/NZ-WEB/go-monitoring/internal/monitoring"
	"github.com/NZ-WEB/go-monitoring/internal/version"
	"github.com/NZ-WEB/go-monitoring/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// DefaultShutdownTimeout bounds graceful shutdown when Run's context ends.
const DefaultShutdownTimeout = 10 * time.Second

// Server represents the HTTP server instance with all its components.
// It encapsulates the Fiber application, configuration and the monitoring
// module.
type Server struct {
	// app is the Fiber HTTP application instance
	app *fiber.App

	// cfg contains the server configuration
	cfg *config.Config

	// monitoring owns health, readiness, metrics and the debug server
	monitoring *monitoring.Module

	// ShutdownTimeout bounds Shutdown when called from Run
	ShutdownTimeout time.Duration
}

// New creates and initializes a new Server instance with the provided configuration.
// It sets up the Fiber application with middleware, monitoring and routes.
// The debug server, when enabled, is already listening when New returns.
func New(cfg *config.Config) (*Server, error) {
	mod, err := monitoring.New(cfg.Monitoring)
	if err != nil {
		return nil, err
	}

	app := common.NewApp("go-monitoring " + version.GetVersion())

	// The timing middleware must run before the application routes.
	mod.Install(app)
	handlers.SetupRoutes(app, cfg.Monitoring, mod.Health())

	return &Server{
		app:             app,
		cfg:             cfg,
		monitoring:      mod,
		ShutdownTimeout: DefaultShutdownTimeout,
	}, nil
}

// App returns the main Fiber application.
func (s *Server) App() *fiber.App { return s.app }

// Monitoring returns the monitoring module so application code can report
// health errors and register readiness checks.
func (s *Server) Monitoring() *monitoring.Module { return s.monitoring }

// Start listens on the configured port and blocks until the server stops.
func (s *Server) Start() error {
	return s.app.Listen(":" + s.cfg.Port)
}

// Run serves on ln until ctx is done, then shuts everything down within
// ShutdownTimeout. It returns the first serve error, or the shutdown error.
func (s *Server) Run(ctx context.Context, ln net.Listener) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.app.Listener(ln)
	}()

	logger.Infof("Server listening on %s", ln.Addr())

	select {
	case err := <-serveErr:
		closeErr := s.closeMonitoring(context.Background())
		if err != nil {
			return errors.Join(fmt.Errorf("serve: %w", err), closeErr)
		}
		return closeErr
	case <-ctx.Done():
	}

	logger.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
	defer cancel()

	err := s.Shutdown(shutdownCtx)
	if serr := <-serveErr; serr != nil {
		err = errors.Join(err, fmt.Errorf("serve: %w", serr))
	}
	return err
}

// Shutdown stops the main application and then awaits the monitoring
// teardown, including the debug server.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown app: %w", err))
	}
	if err := s.closeMonitoring(ctx); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		logger.Errorf("Server shutdown finished with errors: %v", err)
		return err
	}
	logger.Info("Server stopped")
	return nil
}

func (s *Server) closeMonitoring(ctx context.Context) error {
	if err := s.monitoring.Close(ctx); err != nil {
		return fmt.Errorf("close monitoring: %w", err)
	}
	return nil
}
