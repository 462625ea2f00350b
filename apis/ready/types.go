package ready

import "github.com/NZ-WEB/go-monitoring/internal/readiness"

// StatusReady is reported when every check passed.
const StatusReady = "ready"

// ReadyResponse is the success body of the readiness endpoint.
// Checks is omitted when no checks are registered.
type ReadyResponse struct {
	Status string             `json:"status"`
	Checks []readiness.Result `json:"checks,omitempty"`
}

// FailureData is attached as the data field of the 503 error body.
type FailureData struct {
	Checks []readiness.Result `json:"checks"`
}
