package usecase

import "errors"

// Error definitions shared by the usecases
var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrCompletionFailed   = errors.New("completion failed")
	ErrDatasetUnavailable = errors.New("dataset unavailable")
	ErrRunNotFound        = errors.New("evaluation run not found")
	ErrHistoryDisabled    = errors.New("evaluation history is not configured")
)
