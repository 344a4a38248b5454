package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jbclements/t-test/domain/core"
	"github.com/jbclements/t-test/domain/stats"
	"github.com/jbclements/t-test/ports"
)

// RunRepository implements ports.RunRepository with in-memory storage
type RunRepository struct {
	runs map[core.RunID]stats.TestRun
	mu   sync.RWMutex
}

// NewRunRepository creates an empty in-memory run repository
func NewRunRepository() *RunRepository {
	return &RunRepository{runs: make(map[core.RunID]stats.TestRun)}
}

var _ ports.RunRepository = (*RunRepository)(nil)

func (r *RunRepository) Save(ctx context.Context, run *stats.TestRun) error {
	if run == nil || run.ID == "" {
		return fmt.Errorf("%w: run must have an ID", core.ErrInvalidArgument)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.runs[run.ID] = *run
	return nil
}

func (r *RunRepository) Get(ctx context.Context, id core.RunID) (*stats.TestRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, id)
	}
	return &run, nil
}

func (r *RunRepository) List(ctx context.Context, limit int) ([]*stats.TestRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runs := make([]*stats.TestRun, 0, len(r.runs))
	for _, run := range r.runs {
		run := run
		runs = append(runs, &run)
	}

	// UUIDv7 IDs break ties between runs stamped in the same instant.
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.After(runs[j].CreatedAt)
		}
		return runs[i].ID > runs[j].ID
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
