package server

import "errors"

// Server-specific errors
var (
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrNoSnapshot           = errors.New("no snapshot published yet")
	ErrFrameTooLarge        = errors.New("frame exceeds maximum size")
	ErrInvalidConfig        = errors.New("invalid server configuration")
)
