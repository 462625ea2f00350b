// Package monitoring wires the health store, the readiness registry and the
// metrics collector into a Fiber application, either directly or through
// the debug server.
package monitoring

import (
	"context"
	"errors"
	"fmt"

	healthapi "github.com/NZ-WEB/go-monitoring/apis/health"
	metricsapi "github.com/NZ-WEB/go-monitoring/apis/metrics"
	readyapi "github.com/NZ-WEB/go-monitoring/apis/ready"
	"github.com/NZ-WEB/go-monitoring/internal/config"
	"github.com/NZ-WEB/go-monitoring/internal/debugserver"
	"github.com/NZ-WEB/go-monitoring/internal/health"
	"github.com/NZ-WEB/go-monitoring/internal/metrics"
	"github.com/NZ-WEB/go-monitoring/internal/readiness"
	"github.com/NZ-WEB/go-monitoring/internal/version"
	"github.com/NZ-WEB/go-monitoring/pkg/checks"
	"github.com/NZ-WEB/go-monitoring/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// Module owns one instance of each monitoring component for the process.
type Module struct {
	cfg config.MonitoringConfig

	health    *health.Store
	readiness *readiness.Registry
	metrics   *metrics.Collector

	debug  *debugserver.Server
	checks *checks.Set
}

// New builds the monitoring components described by cfg. Nothing is
// installed or started until Install.
func New(cfg config.MonitoringConfig) (*Module, error) {
	collector, err := metrics.NewCollector(metrics.Options{
		DefaultMetrics: cfg.Prometheus.DefaultMetrics,
		Prefix:         cfg.Prometheus.Prefix,
		Labels:         cfg.Prometheus.Labels,
		Version:        version.GetShortVersion(),
		Commit:         version.BuildCommit,
	})
	if err != nil {
		return nil, fmt.Errorf("monitoring: %w", err)
	}

	return &Module{
		cfg:       cfg,
		health:    health.NewStore(),
		readiness: readiness.NewRegistry(),
		metrics:   collector,
	}, nil
}

// Health returns the process health store.
func (m *Module) Health() *health.Store { return m.health }

// Readiness returns the process readiness registry.
func (m *Module) Readiness() *readiness.Registry { return m.readiness }

// Metrics returns the process metrics collector.
func (m *Module) Metrics() *metrics.Collector { return m.metrics }

// DebugServer returns the running debug server, or nil when it is disabled
// or failed to bind.
func (m *Module) DebugServer() *debugserver.Server { return m.debug }

// Install attaches the module to app:
//   - the request-timing middleware when metrics are enabled
//   - the checks from the configured checks file when readiness is enabled
//   - the monitoring routes, on the debug server when it is enabled and on
//     app otherwise
//
// Faults in the checks file or in binding the debug server are logged and
// the host keeps running without them.
func (m *Module) Install(app *fiber.App) {
	if m.cfg.Metrics.Enabled {
		logger.Info("metrics enabled")
		mw := metrics.NewMiddleware(m.metrics, metrics.MiddlewareConfig{
			ExcludedPaths: []string{m.cfg.Metrics.Path, m.cfg.HealthCheck.Path, m.cfg.ReadyCheck.Path},
		})
		app.Use(mw.Handler())
	}

	if file := m.cfg.ReadyCheck.ChecksFile; m.cfg.ReadyCheck.Enabled && file != "" {
		logger.Infof("Readiness checks file: %s", file)
		set, err := checks.Load(file)
		if err != nil {
			logger.Errorf("Failed to load readiness checks: %v", err)
		} else {
			set.Register(m.readiness)
			m.checks = set
		}
	}

	if m.cfg.DebugServer.Enabled {
		logger.Info("debug server enabled")
		srv := debugserver.New(m.cfg.DebugServer, m.Mount)
		if err := srv.Start(); err != nil {
			logger.Warnf("Continuing without debug server: %v", err)
			return
		}
		m.debug = srv
		return
	}

	m.Mount(app)
}

// Mount registers the enabled monitoring routes on router.
func (m *Module) Mount(router fiber.Router) {
	if m.cfg.HealthCheck.Enabled {
		logger.Info("healthcheck enabled")
		healthapi.RegisterRoutes(router, m.cfg.HealthCheck.Path, m.health)
	}
	if m.cfg.ReadyCheck.Enabled {
		logger.Info("readycheck enabled")
		readyapi.RegisterRoutes(router, m.cfg.ReadyCheck.Path, m.readiness)
	}
	if m.cfg.Metrics.Enabled {
		metricsapi.RegisterRoutes(router, m.cfg.Metrics.Path, m.metrics)
	}
}

// Close stops the debug server and releases check connections. ctx bounds
// the debug server shutdown.
func (m *Module) Close(ctx context.Context) error {
	var errs []error
	if m.debug != nil {
		if err := m.debug.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if m.checks != nil {
		if err := m.checks.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close readiness checks: %w", err))
		}
	}
	return errors.Join(errs...)
}
