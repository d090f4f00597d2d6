package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/mnemo-api/internal/domain"
)

// SessionQuery filters the sessions listed for one user.
type SessionQuery struct {
	ExerciseType *domain.ExerciseType
	Limit        int
	Offset       int
}

// CompletedQuery filters the completed, scored sessions that feed a
// leaderboard. Nil fields do not filter.
type CompletedQuery struct {
	ExerciseID   *int64
	ExerciseType *domain.ExerciseType
	Difficulty   *domain.Difficulty
	Limit        int
}

// SessionStore defines the interface for exercise session persistence.
type SessionStore interface {
	// Create inserts a new session and sets its ID.
	Create(ctx context.Context, session *domain.Session) error

	// GetByIDAndUser retrieves a session owned by userID.
	// Returns ErrSessionNotFound if the session does not exist or belongs
	// to someone else.
	GetByIDAndUser(ctx context.Context, id, userID int64) (*domain.Session, error)

	// GetForUpdate behaves like GetByIDAndUser but locks the row until the
	// surrounding transaction ends, on backends that support row locks.
	// It must be called on a store returned by WithTx.
	GetForUpdate(ctx context.Context, id, userID int64) (*domain.Session, error)

	// Update persists the telemetry, completion and scoring fields of an
	// existing session. Identity, classification, config and CreatedAt are
	// never modified.
	// Returns ErrSessionNotFound if no row matches (id, user_id).
	Update(ctx context.Context, session *domain.Session) error

	// ListByUser returns the user's sessions, newest first.
	ListByUser(ctx context.Context, userID int64, query SessionQuery) ([]*domain.Session, error)

	// ListCompleted returns completed sessions with a score matching the
	// query, ordered by score descending and then by id ascending.
	ListCompleted(ctx context.Context, query CompletedQuery) ([]*domain.Session, error)

	// ListAllByUser returns every session of the user, newest first.
	// It feeds the per-user statistics.
	ListAllByUser(ctx context.Context, userID int64) ([]*domain.Session, error)

	// WithTx returns a new SessionStore instance that uses the provided transaction.
	//
	// Example usage:
	//   err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
	//       txStore := sessionStore.WithTx(tx)
	//       s, err := txStore.GetForUpdate(ctx, id, userID)
	//       ...
	//       return txStore.Update(ctx, s)
	//   })
	WithTx(tx *sql.Tx) SessionStore
}
