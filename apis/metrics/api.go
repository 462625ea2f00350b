package metrics

import (
	"github.com/NZ-WEB/go-monitoring/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the exposition endpoint at path on router.
func RegisterRoutes(router fiber.Router, path string, collector *metrics.Collector) {
	router.Get(path, NewHandler(collector))
}
