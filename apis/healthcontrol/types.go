package healthcontrol

import "github.com/NZ-WEB/go-monitoring/internal/health"

// DefaultKey is used when a control request does not name a key.
const DefaultKey = "manual"

// Actions accepted by the test-health endpoint.
const (
	ActionSetError   = "setError"
	ActionClearError = "clearError"
	ActionGetState   = "getState"
)

// ActionRequest is the JSON body of POST /api/test-health.
type ActionRequest struct {
	Action  string `json:"action"`
	Key     string `json:"key"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ActionResponse acknowledges a state change.
type ActionResponse struct {
	Success bool   `json:"success"`
	Action  string `json:"action"`
	Key     string `json:"key,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// StateResponse is returned when no action is requested.
type StateResponse struct {
	State health.State      `json:"state"`
	Usage map[string]string `json:"usage"`
}
