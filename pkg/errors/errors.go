package errors

import "errors"

// Error taxonomy shared by services and handlers. Services wrap these with
// fmt.Errorf and handlers translate them into HTTP status codes via errors.Is.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource already exists")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrInternal     = errors.New("internal server error")
)
