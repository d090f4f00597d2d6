// Package postgres provides the PostgreSQL implementation of the session
// store defined in internal/store. It handles connection setup, query
// execution, JSONB encoding of configurations and score breakdowns, and
// translation of driver errors into store errors.
package postgres
