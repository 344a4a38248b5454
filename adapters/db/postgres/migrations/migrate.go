package migrations

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed *.sql
var embedded embed.FS

// Migrator handles database schema migrations
type Migrator struct {
	db    *sql.DB
	files fs.FS
}

// NewMigrator creates a migrator over the SQL files shipped with this package
func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{db: db, files: embedded}
}

// MigrationFile represents a migration file
type MigrationFile struct {
	Version string
	Name    string
}

// MigrationStatus pairs a migration with whether it has been applied
type MigrationStatus struct {
	MigrationFile
	Applied bool
}

const createMigrationsTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		checksum TEXT NOT NULL,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

// Up executes all pending migrations and returns the versions it applied
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	if _, err := m.db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := m.getAppliedMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	files, err := FindMigrationFiles(m.files)
	if err != nil {
		return nil, fmt.Errorf("failed to find migration files: %w", err)
	}

	var done []string
	for _, file := range files {
		if applied[file.Version] {
			continue
		}
		if err := m.applyMigration(ctx, file); err != nil {
			return done, fmt.Errorf("failed to apply migration %s: %w", file.Version, err)
		}
		done = append(done, file.Version)
	}

	return done, nil
}

// Status reports every known migration and whether it has been applied
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	if _, err := m.db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("failed to ensure migrations table: %w", err)
	}

	applied, err := m.getAppliedMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	files, err := FindMigrationFiles(m.files)
	if err != nil {
		return nil, fmt.Errorf("failed to find migration files: %w", err)
	}

	statuses := make([]MigrationStatus, len(files))
	for i, file := range files {
		statuses[i] = MigrationStatus{MigrationFile: file, Applied: applied[file.Version]}
	}
	return statuses, nil
}

// getAppliedMigrations returns map of applied migration versions
func (m *Migrator) getAppliedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

// calculateChecksum computes SHA256 checksum of migration content
func calculateChecksum(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// FindMigrationFiles lists NNN_name.sql files in fsys sorted by version
func FindMigrationFiles(fsys fs.FS) ([]MigrationFile, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	var files []MigrationFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".sql" {
			continue
		}

		// Parse filename: 001_create_test_runs.sql
		parts := strings.SplitN(name, "_", 2)
		if len(parts) < 2 {
			continue
		}

		files = append(files, MigrationFile{Version: parts[0], Name: name})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Version < files[j].Version
	})

	return files, nil
}

// applyMigration executes a single migration file
func (m *Migrator) applyMigration(ctx context.Context, file MigrationFile) error {
	sqlBytes, err := fs.ReadFile(m.files, file.Name)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
		return fmt.Errorf("failed to execute migration SQL: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, checksum) VALUES ($1, $2)",
		file.Version, calculateChecksum(sqlBytes))
	if err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}
