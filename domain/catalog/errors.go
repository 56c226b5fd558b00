package catalog

import "errors"

// Domain sentinel errors. Stores and services wrap these so that callers
// (and the API boundary) can map them with errors.Is.
var (
	// ErrValidation indicates invalid input for a domain entity or operation.
	ErrValidation = errors.New("validation error")

	// ErrConflict indicates the operation collides with existing state,
	// e.g. linking an already-linked color or deleting a parent with
	// surviving join rows.
	ErrConflict = errors.New("conflict")
)
