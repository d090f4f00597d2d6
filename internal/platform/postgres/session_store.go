package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/mnemo-api/internal/domain"
	"github.com/phrazzld/mnemo-api/internal/platform/logger"
	"github.com/phrazzld/mnemo-api/internal/store"
)

const sessionColumns = `id, user_id, exercise_id, exercise_type, difficulty, config,
	total_moves, correct_moves, incorrect_moves, time_elapsed_ms, max_sequence_reached,
	is_completed, completed_at, final_score, score_breakdown, created_at, updated_at`

// PostgresSessionStore implements the store.SessionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSessionStore creates a new PostgreSQL implementation of the SessionStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresSessionStore(db store.DBTX, logger *slog.Logger) *PostgresSessionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure PostgresSessionStore implements store.SessionStore interface
var _ store.SessionStore = (*PostgresSessionStore)(nil)

// Create implements store.SessionStore.Create
func (s *PostgresSessionStore) Create(ctx context.Context, session *domain.Session) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	config, err := json.Marshal(session.Config)
	if err != nil {
		return fmt.Errorf("%w: encode config: %v", store.ErrInvalidEntity, err)
	}
	breakdown, err := encodeBreakdown(session.ScoreBreakdown)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO exercise_sessions (
			user_id, exercise_id, exercise_type, difficulty, config,
			total_moves, correct_moves, incorrect_moves, time_elapsed_ms, max_sequence_reached,
			is_completed, completed_at, final_score, score_breakdown, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`
	err = s.db.QueryRowContext(ctx, query,
		session.UserID,
		session.ExerciseID,
		string(session.ExerciseType),
		string(session.Difficulty),
		string(config),
		session.TotalMoves,
		session.CorrectMoves,
		session.IncorrectMoves,
		session.TimeElapsedMs,
		session.MaxSequenceReached,
		session.IsCompleted,
		session.CompletedAt,
		session.FinalScore,
		breakdown,
		session.CreatedAt,
		session.UpdatedAt,
	).Scan(&session.ID)
	if err != nil {
		log.Error("failed to create session",
			slog.String("error", err.Error()),
			slog.Int64("user_id", session.UserID))
		return MapError(err)
	}

	log.Debug("session created",
		slog.Int64("session_id", session.ID),
		slog.Int64("user_id", session.UserID),
		slog.String("exercise_type", string(session.ExerciseType)))
	return nil
}

// GetByIDAndUser implements store.SessionStore.GetByIDAndUser
func (s *PostgresSessionStore) GetByIDAndUser(ctx context.Context, id, userID int64) (*domain.Session, error) {
	return s.get(ctx, id, userID, "")
}

// GetForUpdate implements store.SessionStore.GetForUpdate
// The row stays locked until the enclosing transaction ends.
func (s *PostgresSessionStore) GetForUpdate(ctx context.Context, id, userID int64) (*domain.Session, error) {
	return s.get(ctx, id, userID, " FOR UPDATE")
}

func (s *PostgresSessionStore) get(ctx context.Context, id, userID int64, suffix string) (*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + sessionColumns + ` FROM exercise_sessions WHERE id = $1 AND user_id = $2` + suffix
	session, err := scanSession(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("session not found",
				slog.Int64("session_id", id),
				slog.Int64("user_id", userID))
			return nil, store.ErrSessionNotFound
		}
		log.Error("failed to get session",
			slog.String("error", err.Error()),
			slog.Int64("session_id", id))
		return nil, MapError(err)
	}
	return session, nil
}

// Update implements store.SessionStore.Update
func (s *PostgresSessionStore) Update(ctx context.Context, session *domain.Session) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	breakdown, err := encodeBreakdown(session.ScoreBreakdown)
	if err != nil {
		return err
	}

	query := `
		UPDATE exercise_sessions
		SET total_moves = $1,
			correct_moves = $2,
			incorrect_moves = $3,
			time_elapsed_ms = $4,
			max_sequence_reached = $5,
			is_completed = $6,
			completed_at = $7,
			final_score = $8,
			score_breakdown = $9,
			updated_at = $10
		WHERE id = $11 AND user_id = $12
	`
	result, err := s.db.ExecContext(ctx, query,
		session.TotalMoves,
		session.CorrectMoves,
		session.IncorrectMoves,
		session.TimeElapsedMs,
		session.MaxSequenceReached,
		session.IsCompleted,
		session.CompletedAt,
		session.FinalScore,
		breakdown,
		session.UpdatedAt,
		session.ID,
		session.UserID,
	)
	if err != nil {
		log.Error("failed to update session",
			slog.String("error", err.Error()),
			slog.Int64("session_id", session.ID))
		return store.NewStoreError("session", "update", "write rejected",
			fmt.Errorf("%w: %w", store.ErrUpdateFailed, MapError(err)))
	}
	return CheckRowsAffected(result, store.ErrSessionNotFound)
}

// ListByUser implements store.SessionStore.ListByUser
func (s *PostgresSessionStore) ListByUser(
	ctx context.Context,
	userID int64,
	q store.SessionQuery,
) ([]*domain.Session, error) {
	w := newWhere()
	w.add("user_id = %s", userID)
	if q.ExerciseType != nil {
		w.add("exercise_type = %s", string(*q.ExerciseType))
	}
	filter := w.sql()
	limit, offset := w.arg(q.Limit), w.arg(q.Offset)
	query := `SELECT ` + sessionColumns + ` FROM exercise_sessions` + filter +
		` ORDER BY created_at DESC, id DESC LIMIT ` + limit + ` OFFSET ` + offset

	return s.list(ctx, query, w.args)
}

// ListCompleted implements store.SessionStore.ListCompleted
func (s *PostgresSessionStore) ListCompleted(ctx context.Context, q store.CompletedQuery) ([]*domain.Session, error) {
	w := newWhere()
	w.clauses = append(w.clauses, "is_completed", "final_score IS NOT NULL")
	if q.ExerciseID != nil {
		w.add("exercise_id = %s", *q.ExerciseID)
	}
	if q.ExerciseType != nil {
		w.add("exercise_type = %s", string(*q.ExerciseType))
	}
	if q.Difficulty != nil {
		w.add("difficulty = %s", string(*q.Difficulty))
	}
	filter := w.sql()
	query := `SELECT ` + sessionColumns + ` FROM exercise_sessions` + filter +
		` ORDER BY final_score DESC, id ASC LIMIT ` + w.arg(q.Limit)

	return s.list(ctx, query, w.args)
}

// ListAllByUser implements store.SessionStore.ListAllByUser
func (s *PostgresSessionStore) ListAllByUser(ctx context.Context, userID int64) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM exercise_sessions
		WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	return s.list(ctx, query, []any{userID})
}

func (s *PostgresSessionStore) list(ctx context.Context, query string, args []any) ([]*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query sessions", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			log.Error("failed to scan session", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return sessions, nil
}

// WithTx implements store.SessionStore.WithTx
func (s *PostgresSessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	return &PostgresSessionStore{
		db:     tx,
		logger: s.logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var (
		s            domain.Session
		exerciseID   sql.NullInt64
		exerciseType string
		difficulty   string
		config       []byte
		maxSequence  sql.NullInt64
		completedAt  sql.NullTime
		finalScore   sql.NullFloat64
		breakdown    []byte
	)
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&exerciseID,
		&exerciseType,
		&difficulty,
		&config,
		&s.TotalMoves,
		&s.CorrectMoves,
		&s.IncorrectMoves,
		&s.TimeElapsedMs,
		&maxSequence,
		&s.IsCompleted,
		&completedAt,
		&finalScore,
		&breakdown,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.ExerciseType = domain.ExerciseType(exerciseType)
	s.Difficulty = domain.Difficulty(difficulty)
	if exerciseID.Valid {
		v := exerciseID.Int64
		s.ExerciseID = &v
	}
	if maxSequence.Valid {
		v := int(maxSequence.Int64)
		s.MaxSequenceReached = &v
	}
	if completedAt.Valid {
		v := completedAt.Time.UTC()
		s.CompletedAt = &v
	}
	if finalScore.Valid {
		v := finalScore.Float64
		s.FinalScore = &v
	}
	if s.Config, err = domain.DecodeExerciseConfig(config); err != nil {
		return nil, err
	}
	if s.ScoreBreakdown, err = domain.DecodeScoreBreakdown(breakdown); err != nil {
		return nil, err
	}
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return &s, nil
}

// encodeBreakdown returns the JSON text of b, or nil for SQL NULL.
func encodeBreakdown(b *domain.ScoreBreakdown) (any, error) {
	if b == nil {
		return nil, nil
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("%w: encode score breakdown: %v", store.ErrInvalidEntity, err)
	}
	return string(raw), nil
}

// where accumulates filter clauses with numbered placeholders.
type where struct {
	clauses []string
	args    []any
}

func newWhere() *where { return &where{} }

// arg appends v and returns its placeholder.
func (w *where) arg(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

// add appends a clause whose single %s is replaced by v's placeholder.
func (w *where) add(format string, v any) {
	w.clauses = append(w.clauses, fmt.Sprintf(format, w.arg(v)))
}

func (w *where) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}
