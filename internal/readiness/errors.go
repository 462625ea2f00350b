package readiness

import "errors"

var (
	// ErrCheckPanicked is wrapped into the reason of a check that panicked.
	ErrCheckPanicked = errors.New("readiness: check panicked")

	// ErrNilCheck is reported for a check registered without a function.
	ErrNilCheck = errors.New("readiness: check has no function")
)
