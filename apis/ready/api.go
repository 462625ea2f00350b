package ready

import (
	"github.com/NZ-WEB/go-monitoring/internal/readiness"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the readiness endpoint at path on router.
func RegisterRoutes(router fiber.Router, path string, registry *readiness.Registry) {
	router.Get(path, NewHandler(registry))
}
