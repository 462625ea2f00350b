package handlers

import (
	"github.com/NZ-WEB/go-monitoring/apis/healthcontrol"
	"github.com/NZ-WEB/go-monitoring/internal/config"
	"github.com/NZ-WEB/go-monitoring/internal/health"
	"github.com/NZ-WEB/go-monitoring/internal/version"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures the application routes of the server.
// Monitoring routes are installed separately by the monitoring module.
func SetupRoutes(app *fiber.App, cfg config.MonitoringConfig, store *health.Store) {
	// Register all APIs here - just add one line per API
	healthcontrol.RegisterRoutes(app, store)

	// Root endpoint
	app.Get("/", RootHandler(cfg))
}

// RootHandler returns basic server information and where the monitoring
// endpoints can be reached.
func RootHandler(cfg config.MonitoringConfig) fiber.Handler {
	endpoints := fiber.Map{}
	if cfg.HealthCheck.Enabled {
		endpoints["health"] = cfg.HealthCheck.Path
	}
	if cfg.ReadyCheck.Enabled {
		endpoints["ready"] = cfg.ReadyCheck.Path
	}
	if cfg.Metrics.Enabled {
		endpoints["metrics"] = cfg.Metrics.Path
	}

	info := fiber.Map{
		"message":   "go-monitoring server",
		"version":   version.GetShortVersion(),
		"endpoints": endpoints,
		"control":   "/api/health-control",
	}
	if cfg.DebugServer.Enabled {
		info["debugServer"] = cfg.DebugServer.Addr()
	}

	return func(c *fiber.Ctx) error {
		return c.JSON(info)
	}
}
