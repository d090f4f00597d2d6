// Package store defines the persistence interfaces for exercise sessions
// together with shared error values and transaction helpers. Concrete
// implementations live under internal/platform.
package store
