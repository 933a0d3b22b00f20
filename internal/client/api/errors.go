package api

import "errors"

// Sentinel errors returned by Client implementations. Callers match them
// with errors.Is. Transport-level failures (connection refused, timeout)
// surface as ErrUnavailable so the UI can distinguish "server unreachable"
// from an application-level rejection.
var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)
