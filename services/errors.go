package services

import "errors"

// Failure kinds surfaced by the services. Handlers map these onto HTTP
// statuses; anything else is treated as an internal error and its details
// stay server-side.
var (
	ErrValidation = errors.New("validation error")
	ErrAuth       = errors.New("invalid credentials")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrInternal   = errors.New("internal error")
)
