package config

import (
	"testing"
	"time"

	"github.com/jbclements/t-test/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"DATABASE_URL", "DB_MAX_OPEN_CONNS", "DB_CONN_MAX_LIFETIME",
		"PORT", "GIN_MODE", "TTEST_REQUEST_TIMEOUT",
		"PPROF_PORT", "PPROF_ENABLED", "EXCEL_FILE", "EXCEL_SHEET",
		"TTEST_ALPHA", "TTEST_MAX_CONCURRENCY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.Database.Enabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/ttest?sslmode=disable")
	t.Setenv("PORT", "9090")
	t.Setenv("TTEST_ALPHA", "0.01")
	t.Setenv("TTEST_MAX_CONCURRENCY", "16")
	t.Setenv("TTEST_REQUEST_TIMEOUT", "5s")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("EXCEL_SHEET", "Trials")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 0.01, cfg.Analysis.Alpha)
	assert.Equal(t, 16, cfg.Analysis.MaxConcurrency)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.True(t, cfg.Profiling.Enabled)
	assert.Equal(t, "Trials", cfg.Data.ExcelSheet)
}

func TestLoad_UnparsableValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("TTEST_MAX_CONCURRENCY", "many")
	t.Setenv("PPROF_ENABLED", "perhaps")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Analysis.MaxConcurrency)
	assert.False(t, cfg.Profiling.Enabled)
}

func TestLoad_Invalid(t *testing.T) {
	for key, value := range map[string]string{
		"TTEST_ALPHA":           "1.5",
		"TTEST_MAX_CONCURRENCY": "0",
		"TTEST_REQUEST_TIMEOUT": "-1s",
		"GIN_MODE":              "verbose",
	} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
