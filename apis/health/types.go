package health

import "github.com/NZ-WEB/go-monitoring/internal/health"

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// HealthResponse is the body of the health endpoint.
// Errors is present only when the process is unhealthy.
type HealthResponse struct {
	// Status is "ok" when healthy and "error" otherwise
	Status string `json:"status"`

	// Errors holds the reported faults keyed by their reporter-chosen key
	Errors map[string]health.Error `json:"errors,omitempty"`
}
