package server

import "errors"

// Server-specific errors
var (
	ErrServerNotRunning     = errors.New("server is not running")
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrGridTooLarge         = errors.New("sweep grid exceeds row limit")
	ErrInvalidRequest       = errors.New("invalid sweep request")
)
