package ready

import (
	"github.com/NZ-WEB/go-monitoring/apis/common"
	"github.com/NZ-WEB/go-monitoring/internal/readiness"

	"github.com/gofiber/fiber/v2"
)

// NewHandler returns a handler that evaluates every registered check on
// each request. Any failed check turns the response into a 503 carrying the
// full breakdown.
func NewHandler(registry *readiness.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report := registry.Evaluate(c.UserContext())
		if !report.Ready {
			return common.NewDataError(fiber.StatusServiceUnavailable, FailureData{Checks: report.Results})
		}
		return c.JSON(ReadyResponse{Status: StatusReady, Checks: report.Results})
	}
}
