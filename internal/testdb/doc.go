// Package testdb provides database fixtures for tests.
//
// SQLite databases are created per test in a temporary directory with the
// schema already migrated, so store and service tests run without any
// external services. PostgreSQL fixtures are only available when
// DATABASE_URL is set and are used by tests behind the integration build
// tag.
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.NewSQLite(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        sessions := sqlite.NewSessionStore(tx, nil)
//	        // ...
//	    })
//	}
package testdb
