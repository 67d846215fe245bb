package apperrors

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidConfig      = errors.New("invalid config")
	ErrSessionNotFound    = errors.New("session not found")
	ErrResultNotFound     = errors.New("result not found")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrNoStartRecorded    = errors.New("no start location recorded")
)
