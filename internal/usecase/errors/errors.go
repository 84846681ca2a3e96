package errors

import "errors"

// Common errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
)

// Video errors
var (
	ErrInvalidReference = errors.New("invalid video reference")
	ErrNoTranscript     = errors.New("no transcript available")
)

// Generation errors
var (
	ErrGenerationFailure = errors.New("generation failed")
)

// Storage errors
var (
	ErrStorageFailure = errors.New("storage failure")
)

// Session errors
var (
	ErrNoActiveTranscript = errors.New("no active transcript in session")
	ErrSessionNotFound    = errors.New("session not found")
)
