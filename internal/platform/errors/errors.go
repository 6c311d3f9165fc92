package apperrors

import "errors"

var (
	// ErrInvalidInput marks values rejected at the boundary, such as a daily
	// goal outside 1-100 or a surah number past 114.
	ErrInvalidInput        = errors.New("invalid input")
	ErrNoActiveSession     = errors.New("no active reading session")
	ErrActiveSessionExists = errors.New("reading session already active")
)
