package service

import (
	"context"
	"database/sql"

	"github.com/phrazzld/mnemo-api/internal/domain"
	"github.com/phrazzld/mnemo-api/internal/store"
)

// NewSessionRepositoryAdapter allows a store.SessionStore to be used where
// a SessionRepository or StatsRepository is expected.
func NewSessionRepositoryAdapter(sessionStore store.SessionStore, db *sql.DB) *SessionRepositoryAdapter {
	return &SessionRepositoryAdapter{
		store: sessionStore,
		db:    db,
	}
}

// SessionRepositoryAdapter pairs a session store with the database its
// transactions are started on.
type SessionRepositoryAdapter struct {
	store store.SessionStore
	db    *sql.DB
}

var (
	_ SessionRepository = (*SessionRepositoryAdapter)(nil)
	_ StatsRepository   = (*SessionRepositoryAdapter)(nil)
)

// Create implements SessionRepository.
func (a *SessionRepositoryAdapter) Create(ctx context.Context, session *domain.Session) error {
	return a.store.Create(ctx, session)
}

// GetByIDAndUser implements SessionRepository.
func (a *SessionRepositoryAdapter) GetByIDAndUser(ctx context.Context, id, userID int64) (*domain.Session, error) {
	return a.store.GetByIDAndUser(ctx, id, userID)
}

// GetForUpdate implements SessionRepository.
func (a *SessionRepositoryAdapter) GetForUpdate(ctx context.Context, id, userID int64) (*domain.Session, error) {
	return a.store.GetForUpdate(ctx, id, userID)
}

// Update implements SessionRepository.
func (a *SessionRepositoryAdapter) Update(ctx context.Context, session *domain.Session) error {
	return a.store.Update(ctx, session)
}

// ListByUser implements SessionRepository.
func (a *SessionRepositoryAdapter) ListByUser(
	ctx context.Context,
	userID int64,
	query store.SessionQuery,
) ([]*domain.Session, error) {
	return a.store.ListByUser(ctx, userID, query)
}

// ListCompleted implements StatsRepository.
func (a *SessionRepositoryAdapter) ListCompleted(
	ctx context.Context,
	query store.CompletedQuery,
) ([]*domain.Session, error) {
	return a.store.ListCompleted(ctx, query)
}

// ListAllByUser implements StatsRepository.
func (a *SessionRepositoryAdapter) ListAllByUser(ctx context.Context, userID int64) ([]*domain.Session, error) {
	return a.store.ListAllByUser(ctx, userID)
}

// WithTx implements SessionRepository.
func (a *SessionRepositoryAdapter) WithTx(tx *sql.Tx) SessionRepository {
	return &SessionRepositoryAdapter{
		store: a.store.WithTx(tx),
		db:    a.db,
	}
}

// DB implements SessionRepository.
func (a *SessionRepositoryAdapter) DB() *sql.DB {
	return a.db
}
