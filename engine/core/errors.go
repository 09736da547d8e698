package core

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration       = errors.New("no record shape matches the configuration")
	ErrOverlappingKeys     = errors.New("type mapping declares the same key more than once")
	ErrMalformedNumber     = errors.New("malformed number")
	ErrTruncatedInput      = errors.New("input ended before all declared records were read")
	ErrInvalidChannels     = errors.New("colour channel count must be 3 (RGB) or 4 (RGBA)")
	ErrBothColorsMandatory = errors.New("OFF file should not have both colored vertex and colored face")
	ErrNoWorkers           = errors.New("attempting to create worker pool with less than 1 worker")
	ErrNegativeQueueSize   = errors.New("attempting to create worker pool with a negative queue size")
	ErrJobSystemClosed     = errors.New("job system is shut down")
	ErrWatcherClosed       = errors.New("asset watcher already closed")
	ErrLoaderExists        = errors.New("a loader for this resource type is already registered")
	ErrNoLoader            = errors.New("no loader registered for resource type")
	ErrTooManyLoaders      = errors.New("resource system loader limit reached")
)

// ConfigurationError reports a runtime key that is absent from a type mapping.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: key %s", ErrConfiguration, e.Key)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// ParsePhase names the part of an OFF stream that was being read.
type ParsePhase uint8

const (
	PhaseHeader ParsePhase = iota
	PhaseCounts
	PhaseVertex
	PhaseFace
)

func (p ParsePhase) String() string {
	switch p {
	case PhaseHeader:
		return "header"
	case PhaseCounts:
		return "counts"
	case PhaseVertex:
		return "vertex"
	case PhaseFace:
		return "face"
	default:
		return "unknown"
	}
}

// ParseError is returned for every fatal failure while reading an OFF stream.
// Record is the zero-based vertex or face index and is meaningless for the
// header and counts phases. Line is 1-based.
type ParseError struct {
	Phase  ParsePhase
	Record int
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	switch e.Phase {
	case PhaseVertex, PhaseFace:
		return fmt.Sprintf("off: %s %d (line %d): %v", e.Phase, e.Record, e.Line, e.Err)
	default:
		return fmt.Sprintf("off: %s (line %d): %v", e.Phase, e.Line, e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
