package apperror

import "errors"

// Sentinel errors shared by services and the HTTP error handler.
// Wrap them with fmt.Errorf("%w: ...") to add detail; match with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
