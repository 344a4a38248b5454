package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// RunID identifies one computed test run.
type RunID ID

func (id RunID) String() string { return ID(id).String() }

// NewRunID returns a fresh, time-ordered run identifier.
func NewRunID() RunID {
	return RunID(NewID())
}

// ParseRunID parses a string into RunID. The value must be a UUID.
func ParseRunID(s string) (RunID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: run ID cannot be empty", ErrInvalidArgument)
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("%w: run ID %q is not a UUID", ErrInvalidArgument, s)
	}
	return RunID(s), nil
}
