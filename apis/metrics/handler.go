package metrics

import (
	"bytes"

	"github.com/NZ-WEB/go-monitoring/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// NewHandler returns a handler that writes the collector's rendered metrics
// verbatim with the collector's content type.
func NewHandler(collector *metrics.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := collector.Render(&buf); err != nil {
			return err
		}

		c.Set(fiber.HeaderContentType, collector.ContentType())
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		c.Set(fiber.HeaderAccessControlAllowMethods, "GET")
		return c.Send(buf.Bytes())
	}
}
