package adapter

import "errors"

var (
	// ErrUnauthorized is returned when the server rejects the bearer token.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnavailable is returned when the server cannot be reached or
	// responds with a 5xx status. Retriable.
	ErrUnavailable = errors.New("server unavailable")

	// ErrBadRequest is returned when the server rejects the payload.
	ErrBadRequest = errors.New("bad request")
)
