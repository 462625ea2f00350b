package health

import (
	"github.com/NZ-WEB/go-monitoring/internal/health"

	"github.com/gofiber/fiber/v2"
)

// NewHandler returns a handler that reports the state of store.
// It answers 200 {"status":"ok"} when healthy and 503 with the error
// detail otherwise. The store is only read.
func NewHandler(store *health.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state := store.Snapshot()
		if state.IsHealthy {
			return c.JSON(HealthResponse{Status: StatusOK})
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
			Status: StatusError,
			Errors: state.Errors,
		})
	}
}
