package domain

import "errors"

// Error kinds returned by store operations. Callers match them with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrValidation        = errors.New("validation failed")
	ErrForbidden         = errors.New("forbidden")
)
