package domain

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrConsoleBusy       = errors.New("console already has an active session")
	ErrNoActiveSession   = errors.New("no active session for console")
	ErrSessionNotFound   = errors.New("session not found")
	ErrConsoleNotFound   = errors.New("console not found")
	ErrAdminLimitReached = errors.New("admin concurrency limit reached")
	ErrStoreUnavailable  = errors.New("store unavailable")
)
