package entities

import "errors"

// Domain errors
var (
	ErrInvalidVideoID    = errors.New("invalid video id")
	ErrEmptySummary      = errors.New("summary is empty")
	ErrInvalidRecordID   = errors.New("invalid record id")
	ErrUnknownArtifact   = errors.New("unknown artifact kind")
	ErrUnsupportedLength = errors.New("unsupported summary length")
)
