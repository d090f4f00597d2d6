package testdb

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/mnemo-api/internal/platform/logger"
	"github.com/phrazzld/mnemo-api/internal/platform/migrate"
	"github.com/phrazzld/mnemo-api/internal/platform/postgres"
	"github.com/phrazzld/mnemo-api/internal/platform/sqlite"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds setup operations against the test database.
const TestTimeout = 10 * time.Second

// IsIntegrationTestEnvironment reports whether a PostgreSQL database is
// configured for integration tests.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// GetTestDatabaseURL returns DATABASE_URL, falling back to
// MNEMO_TEST_DB_URL.
func GetTestDatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return os.Getenv("MNEMO_TEST_DB_URL")
}

// NewSQLite opens a fresh, migrated SQLite database in t's temporary
// directory. The database is closed when the test finishes.
func NewSQLite(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "open sqlite test database")
	t.Cleanup(func() { _ = db.Close() })

	migrateUp(ctx, t, db, migrate.DriverSQLite)
	return db
}

// NewPostgres connects to the integration database and migrates it. The
// test is skipped when no database URL is configured.
func NewPostgres(t *testing.T) *sql.DB {
	t.Helper()

	url := GetTestDatabaseURL()
	if url == "" {
		t.Skip("DATABASE_URL not set - skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, url, 5)
	require.NoError(t, err, "open postgres test database")
	t.Cleanup(func() { _ = db.Close() })

	migrateUp(ctx, t, db, migrate.DriverPostgres)
	return db
}

func migrateUp(ctx context.Context, t *testing.T, db *sql.DB, driver string) {
	t.Helper()

	log, _ := logger.NewBufferLogger()
	m, err := migrate.New(db, driver, log)
	require.NoError(t, err, "create migrator")
	require.NoError(t, m.Up(ctx), "apply migrations")
}
