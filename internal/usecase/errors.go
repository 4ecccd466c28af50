package usecase

import "errors"

// Domain error taxonomy shared by all usecases. Handlers map these to HTTP
// statuses; anything unrecognized surfaces as an internal error.
var (
	ErrValidation      = errors.New("invalid request")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInternal        = errors.New("internal error")
)
