package health

// Error describes a single reported health fault.
// It is replaced wholesale when the same key is reported again.
type Error struct {
	// Message is the human readable description of the fault
	Message string `json:"message"`

	// Code is an optional machine readable classifier
	Code string `json:"code,omitempty"`

	// Timestamp is when the fault was reported, in Unix milliseconds
	Timestamp int64 `json:"timestamp"`
}

// State is a point-in-time view of the store.
// IsHealthy is true exactly when Errors is empty.
type State struct {
	IsHealthy bool             `json:"isHealthy"`
	Errors    map[string]Error `json:"errors"`
}
