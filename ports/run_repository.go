package ports

import (
	"context"

	"github.com/jbclements/t-test/domain/core"
	"github.com/jbclements/t-test/domain/stats"
)

// RunRepository defines the interface for persisted test runs
type RunRepository interface {
	// Save stores a computed run; saving an existing ID replaces it
	Save(ctx context.Context, run *stats.TestRun) error

	// Get retrieves a run by ID, returning core.ErrRunNotFound when absent
	Get(ctx context.Context, id core.RunID) (*stats.TestRun, error)

	// List returns the most recent runs first, optionally limited
	List(ctx context.Context, limit int) ([]*stats.TestRun, error)
}
