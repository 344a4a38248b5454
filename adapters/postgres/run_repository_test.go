package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jbclements/t-test/adapters/db/postgres/migrations"
	"github.com/jbclements/t-test/domain/core"
	"github.com/jbclements/t-test/domain/stats"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun(label string, p float64) *stats.TestRun {
	return stats.NewTestRun(label, stats.Outcome{
		Kind:             stats.TestWelch,
		Sample1:          stats.SampleStats{Count: 4, Mean: 2.5, Variance: 1.25},
		Sample2:          stats.SampleStats{Count: 4, Mean: 6.75, Variance: 2.1875},
		Statistic:        -3.9703446152237674,
		DegreesOfFreedom: 5.584615384615385,
		PValue:           p,
	}, 0.05)
}

func TestRunRow_RoundTrip(t *testing.T) {
	run := sampleRun("pilot", 0.0085128631313781695)

	row := toRow(run)
	assert.Equal(t, run.ID.String(), row.ID)
	assert.Equal(t, "welch", row.Kind)
	assert.Equal(t, 4, row.Count2)
	assert.Equal(t, 2.1875, row.Variance2)

	assert.Equal(t, run, row.toRun())
}

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sqlx.Connect("postgres", url)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = migrations.NewMigrator(db.DB).Up(context.Background())
	require.NoError(t, err)
	_, err = db.Exec("TRUNCATE test_runs")
	require.NoError(t, err)
	return db
}

func TestRunRepository_PostgreSQL(t *testing.T) {
	db := openTestDB(t)
	repo := NewRunRepository(db)
	ctx := context.Background()

	older := sampleRun("older", 0.2)
	older.CreatedAt = older.CreatedAt.Add(-time.Minute).Truncate(time.Microsecond)
	newer := sampleRun("newer", 0.01)
	newer.CreatedAt = newer.CreatedAt.Truncate(time.Microsecond)

	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	got, err := repo.Get(ctx, newer.ID)
	require.NoError(t, err)
	assert.Equal(t, newer, got)

	runs, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newer.ID, runs[0].ID)

	runs, err = repo.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)

	newer.Label = "relabelled"
	require.NoError(t, repo.Save(ctx, newer))
	got, err = repo.Get(ctx, newer.ID)
	require.NoError(t, err)
	assert.Equal(t, "relabelled", got.Label)

	_, err = repo.Get(ctx, core.NewRunID())
	assert.ErrorIs(t, err, core.ErrRunNotFound)

	assert.ErrorIs(t, repo.Save(ctx, &stats.TestRun{}), core.ErrInvalidArgument)
}
