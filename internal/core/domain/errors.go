package domain

import "errors"

// Business rule violations. Wrap with fmt.Errorf("%w: ...") at the call site
// and match with errors.Is.
var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrForbidden      = errors.New("forbidden")
	ErrRestoreBlocked = errors.New("restore blocked")
	ErrValidation     = errors.New("validation failed")
)
