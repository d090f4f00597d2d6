package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/mnemo-api/internal/config"
	"github.com/phrazzld/mnemo-api/internal/platform/migrate"
	"github.com/phrazzld/mnemo-api/internal/platform/postgres"
	"github.com/phrazzld/mnemo-api/internal/platform/sqlite"
	"github.com/phrazzld/mnemo-api/internal/store"
)

// setupAppDatabase opens the configured database and verifies the
// connection.
func setupAppDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case migrate.DriverPostgres:
		db, err = postgres.Open(ctx, cfg.URL, cfg.MaxOpenConns)
	case migrate.DriverSQLite:
		db, err = sqlite.Open(ctx, cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("database connection established", slog.String("driver", cfg.Driver))
	return db, nil
}

// newSessionStore returns the session store implementation for driver.
func newSessionStore(driver string, db *sql.DB, logger *slog.Logger) (store.SessionStore, error) {
	switch driver {
	case migrate.DriverPostgres:
		return postgres.NewPostgresSessionStore(db, logger), nil
	case migrate.DriverSQLite:
		return sqlite.NewSessionStore(db, logger), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
