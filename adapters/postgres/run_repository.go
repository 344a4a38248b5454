package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jbclements/t-test/domain/core"
	"github.com/jbclements/t-test/domain/stats"
	"github.com/jbclements/t-test/ports"

	"github.com/jmoiron/sqlx"
)

// RunRepositoryImpl implements RunRepository for PostgreSQL
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &RunRepositoryImpl{db: db}
}

// runRow is the flat column layout of the test_runs table
type runRow struct {
	ID               string    `db:"id"`
	Label            string    `db:"label"`
	Kind             string    `db:"kind"`
	Count1           int       `db:"count1"`
	Mean1            float64   `db:"mean1"`
	Variance1        float64   `db:"variance1"`
	Count2           int       `db:"count2"`
	Mean2            float64   `db:"mean2"`
	Variance2        float64   `db:"variance2"`
	Statistic        float64   `db:"statistic"`
	DegreesOfFreedom float64   `db:"degrees_of_freedom"`
	PValue           float64   `db:"p_value"`
	Alpha            float64   `db:"alpha"`
	Significant      bool      `db:"significant"`
	CreatedAt        time.Time `db:"created_at"`
}

func toRow(run *stats.TestRun) runRow {
	return runRow{
		ID:               run.ID.String(),
		Label:            run.Label,
		Kind:             string(run.Kind),
		Count1:           run.Sample1.Count,
		Mean1:            run.Sample1.Mean,
		Variance1:        run.Sample1.Variance,
		Count2:           run.Sample2.Count,
		Mean2:            run.Sample2.Mean,
		Variance2:        run.Sample2.Variance,
		Statistic:        run.Statistic,
		DegreesOfFreedom: run.DegreesOfFreedom,
		PValue:           run.PValue,
		Alpha:            run.Alpha,
		Significant:      run.Significant,
		CreatedAt:        run.CreatedAt,
	}
}

func (r runRow) toRun() *stats.TestRun {
	return &stats.TestRun{
		Outcome: stats.Outcome{
			Kind:             stats.TestKind(r.Kind),
			Sample1:          stats.SampleStats{Count: r.Count1, Mean: r.Mean1, Variance: r.Variance1},
			Sample2:          stats.SampleStats{Count: r.Count2, Mean: r.Mean2, Variance: r.Variance2},
			Statistic:        r.Statistic,
			DegreesOfFreedom: r.DegreesOfFreedom,
			PValue:           r.PValue,
		},
		ID:          core.RunID(r.ID),
		Label:       r.Label,
		Alpha:       r.Alpha,
		Significant: r.Significant,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

const runColumns = `id, label, kind, count1, mean1, variance1, count2, mean2, variance2,
	statistic, degrees_of_freedom, p_value, alpha, significant, created_at`

// Save inserts a run, replacing any run stored under the same ID
func (r *RunRepositoryImpl) Save(ctx context.Context, run *stats.TestRun) error {
	if run == nil || run.ID == "" {
		return fmt.Errorf("%w: run must have an ID", core.ErrInvalidArgument)
	}

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO test_runs (`+runColumns+`)
		VALUES (:id, :label, :kind, :count1, :mean1, :variance1, :count2, :mean2, :variance2,
			:statistic, :degrees_of_freedom, :p_value, :alpha, :significant, :created_at)
		ON CONFLICT (id) DO UPDATE SET
			label = EXCLUDED.label,
			kind = EXCLUDED.kind,
			count1 = EXCLUDED.count1,
			mean1 = EXCLUDED.mean1,
			variance1 = EXCLUDED.variance1,
			count2 = EXCLUDED.count2,
			mean2 = EXCLUDED.mean2,
			variance2 = EXCLUDED.variance2,
			statistic = EXCLUDED.statistic,
			degrees_of_freedom = EXCLUDED.degrees_of_freedom,
			p_value = EXCLUDED.p_value,
			alpha = EXCLUDED.alpha,
			significant = EXCLUDED.significant`, toRow(run))
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	return nil
}

// Get retrieves a run by ID
func (r *RunRepositoryImpl) Get(ctx context.Context, id core.RunID) (*stats.TestRun, error) {
	var row runRow
	err := r.db.GetContext(ctx, &row, `SELECT `+runColumns+` FROM test_runs WHERE id = $1`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return row.toRun(), nil
}

// List returns runs newest first, optionally limited
func (r *RunRepositoryImpl) List(ctx context.Context, limit int) ([]*stats.TestRun, error) {
	query := `SELECT ` + runColumns + ` FROM test_runs ORDER BY created_at DESC, id DESC`

	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	var rows []runRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]*stats.TestRun, len(rows))
	for i, row := range rows {
		runs[i] = row.toRun()
	}
	return runs, nil
}
