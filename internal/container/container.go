package container

import (
	"context"
	"fmt"

	"github.com/jbclements/t-test/adapters/db/postgres/migrations"
	"github.com/jbclements/t-test/adapters/memory"
	"github.com/jbclements/t-test/adapters/postgres"
	"github.com/jbclements/t-test/app"
	"github.com/jbclements/t-test/internal"
	"github.com/jbclements/t-test/internal/config"
	"github.com/jbclements/t-test/internal/errors"
	"github.com/jbclements/t-test/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure; nil when runs are kept in memory
	DB *sqlx.DB

	RunRepo ports.RunRepository
	Service *app.TTestService
}

// New creates a container backed by the in-memory run repository
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		RunRepo: memory.NewRunRepository(),
	}
	c.initService()
	return c, nil
}

// Open builds a container, connecting to PostgreSQL and applying pending
// migrations when DATABASE_URL is configured
func Open(ctx context.Context, cfg *config.Config, logger *internal.Logger) (*Container, error) {
	c, err := New(cfg, logger)
	if err != nil {
		return nil, err
	}
	if !cfg.Database.Enabled() {
		c.Logger.Info("DATABASE_URL not set; runs are kept in memory")
		return c, nil
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := c.InitWithDatabase(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// InitWithDatabase migrates the schema and switches to the PostgreSQL repository
func (c *Container) InitWithDatabase(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	if err := db.PingContext(ctx); err != nil {
		return errors.DatabaseError("database connection test failed", err)
	}

	applied, err := migrations.NewMigrator(db.DB).Up(ctx)
	if err != nil {
		return errors.DatabaseError("database migration failed", err)
	}
	for _, version := range applied {
		c.Logger.Info("applied migration %s", version)
	}

	c.DB = db
	c.RunRepo = postgres.NewRunRepository(db)
	c.initService()

	c.Logger.Info("Container initialized with database connection")
	return nil
}

func (c *Container) initService() {
	c.Service = app.NewTTestService(c.RunRepo, c.Config.Analysis, c.Logger)
}

// HealthCheck pings the database, or succeeds when there is none
func (c *Container) HealthCheck(ctx context.Context) error {
	if c.DB == nil {
		return nil
	}
	return c.DB.PingContext(ctx)
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
