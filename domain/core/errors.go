package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input validation errors
	ErrEmptySample       = errors.New("empty sample")
	ErrDegenerateSamples = errors.New("degenerate samples: both variances are zero")
	ErrInvalidArgument   = errors.New("invalid argument")

	// Numerical errors
	ErrComputation = errors.New("computation error")

	// Lookup errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)
)

// SamplePosition identifies which argument of a two-sample test is meant.
type SamplePosition int

const (
	FirstSample SamplePosition = iota + 1
	SecondSample
)

func (p SamplePosition) String() string {
	switch p {
	case FirstSample:
		return "first"
	case SecondSample:
		return "second"
	default:
		return "unknown"
	}
}

// EmptySampleError reports which sample of a test call had no elements.
type EmptySampleError struct {
	Position SamplePosition
}

func (e *EmptySampleError) Error() string {
	return fmt.Sprintf("%s: %s sample has no elements", ErrEmptySample, e.Position)
}

// Is lets errors.Is(err, ErrEmptySample) match positional errors.
func (e *EmptySampleError) Is(target error) bool {
	return target == ErrEmptySample
}

// Error constructors with context
func NewEmptySampleError(pos SamplePosition) error {
	return &EmptySampleError{Position: pos}
}

func NewComputationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrComputation, fmt.Sprintf(format, args...))
}

func NewInvalidArgumentError(name string, value float64) error {
	return fmt.Errorf("%w: %w: %s = %v", ErrComputation, ErrInvalidArgument, name, value)
}

func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// Error checking helpers
func IsEmptySampleError(err error) bool {
	return errors.Is(err, ErrEmptySample)
}

func IsDegenerateError(err error) bool {
	return errors.Is(err, ErrDegenerateSamples)
}

func IsComputationError(err error) bool {
	return errors.Is(err, ErrComputation)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// EmptySamplePosition extracts the offending position, if err carries one.
func EmptySamplePosition(err error) (SamplePosition, bool) {
	var empty *EmptySampleError
	if errors.As(err, &empty) {
		return empty.Position, true
	}
	return 0, false
}
