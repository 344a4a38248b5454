package container

import (
	"context"
	"os"
	"testing"

	"github.com/jbclements/t-test/adapters/memory"
	"github.com/jbclements/t-test/app"
	"github.com/jbclements/t-test/domain/stats"
	"github.com/jbclements/t-test/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)
}

func TestOpen_InMemoryWithoutDatabaseURL(t *testing.T) {
	ctx := context.Background()
	c, err := Open(ctx, config.Default(), nil)
	require.NoError(t, err)
	defer c.Shutdown(ctx)

	assert.Nil(t, c.DB)
	assert.IsType(t, &memory.RunRepository{}, c.RunRepo)
	assert.NoError(t, c.HealthCheck(ctx))

	run, err := c.Service.Compute(ctx, app.TestRequest{
		Kind:    stats.TestStudent,
		Sample1: []float64{2, 1, 3, 4},
		Sample2: []float64{6, 5, 7, 9},
	})
	require.NoError(t, err)

	stored, err := c.RunRepo.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, stored.ID)
}

func TestOpen_PostgreSQL(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	cfg := config.Default()
	cfg.Database.URL = url

	c, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer c.Shutdown(ctx)

	require.NotNil(t, c.DB)
	assert.NoError(t, c.HealthCheck(ctx))
}
