package healthcontrol

import (
	"github.com/NZ-WEB/go-monitoring/internal/health"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the health control endpoints under /api.
// They let operators and demos flip the health state by hand.
func RegisterRoutes(app *fiber.App, store *health.Store) {
	h := NewHandler(store)

	api := app.Group("/api")
	api.Get("/health-control", h.Control)
	api.Post("/test-health", h.Action)
}
