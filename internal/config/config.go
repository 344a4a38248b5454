package config

import (
	"os"
	"strconv"
	"time"

	"github.com/jbclements/t-test/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Profiling ProfilingConfig
	Data      DataConfig
	Analysis  AnalysisConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL             string // empty selects the in-memory run repository
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// Enabled reports whether runs are persisted to PostgreSQL
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port           string
	GinMode        string
	RequestTimeout time.Duration
}

// ProfilingConfig holds the ops endpoint settings (health, pprof)
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// DataConfig holds sample import settings
type DataConfig struct {
	ExcelFile  string
	ExcelSheet string
}

// AnalysisConfig holds test execution settings
type AnalysisConfig struct {
	Alpha          float64 // significance level used for verdicts and reports
	MaxConcurrency int     // parallel tests in one batch
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database:  *loadDatabaseConfig(),
		Server:    *loadServerConfig(),
		Profiling: *loadProfilingConfig(),
		Data:      *loadDataConfig(),
		Analysis:  *loadAnalysisConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Database:  DatabaseConfig{MaxOpenConns: 10, ConnMaxLifetime: 30 * time.Minute},
		Server:    ServerConfig{Port: "8080", GinMode: "release", RequestTimeout: 30 * time.Second},
		Profiling: ProfilingConfig{Port: "6060"},
		Data:      DataConfig{ExcelSheet: "Sheet1"},
		Analysis:  AnalysisConfig{Alpha: 0.05, MaxConcurrency: 4},
	}
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URL:             getEnvOrDefault("DATABASE_URL", ""),
		MaxOpenConns:    getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
		ConnMaxLifetime: getEnvDurationOrDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:           getEnvOrDefault("PORT", "8080"),
		GinMode:        getEnvOrDefault("GIN_MODE", "release"),
		RequestTimeout: getEnvDurationOrDefault("TTEST_REQUEST_TIMEOUT", 30*time.Second),
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		ExcelFile:  getEnvOrDefault("EXCEL_FILE", ""),
		ExcelSheet: getEnvOrDefault("EXCEL_SHEET", "Sheet1"),
	}
}

func loadAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		Alpha:          getEnvFloatOrDefault("TTEST_ALPHA", 0.05),
		MaxConcurrency: getEnvIntOrDefault("TTEST_MAX_CONCURRENCY", 4),
	}
}

func validateConfig(config *Config) error {
	if !(config.Analysis.Alpha > 0 && config.Analysis.Alpha < 1) {
		return errors.ConfigInvalid("TTEST_ALPHA must lie strictly between 0 and 1")
	}
	if config.Analysis.MaxConcurrency < 1 {
		return errors.ConfigInvalid("TTEST_MAX_CONCURRENCY must be at least 1")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	if config.Server.RequestTimeout <= 0 {
		return errors.ConfigInvalid("TTEST_REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
