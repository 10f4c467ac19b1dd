package domain

import "errors"

// Sentinel errors shared across services and adapters. Handlers translate
// them to HTTP statuses at the API boundary; everything else surfaces as a
// generic server fault.
var (
	// ErrNotFound marks a missing record.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a duplicate unique field (e.g. an already
	// registered email).
	ErrConflict = errors.New("conflict")
)

// ValidationError marks user-correctable bad input (missing required
// field, malformed value, wrong credentials).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Invalid builds a ValidationError with the given message.
func Invalid(msg string) error { return &ValidationError{Msg: msg} }
