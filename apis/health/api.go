package health

import (
	"github.com/NZ-WEB/go-monitoring/internal/health"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the health endpoint at path on router.
// The same registration is used by the main application and the debug server.
func RegisterRoutes(router fiber.Router, path string, store *health.Store) {
	router.Get(path, NewHandler(store))
}
