package checks

import "errors"

var (
	// ErrUnknownType is returned for a check whose type is not tcp, http or redis.
	ErrUnknownType = errors.New("checks: unknown check type")

	// ErrMissingField is returned when a check lacks a field its type requires.
	ErrMissingField = errors.New("checks: missing required field")

	// ErrUnexpectedStatus is the reason of an http check that got the wrong status.
	ErrUnexpectedStatus = errors.New("checks: unexpected status")
)
