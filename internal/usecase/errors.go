package usecase

import "errors"

// Sentinel errors the handlers translate into HTTP responses. Services
// wrap them with context via fmt.Errorf("%w: ...", ...) so errors.Is
// still matches.
var (
	ErrValidation          = errors.New("validation failed")
	ErrUnauthorized        = errors.New("authentication required")
	ErrForbidden           = errors.New("permission denied")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
)
