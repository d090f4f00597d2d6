package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/mnemo-api/internal/domain"
	"github.com/phrazzld/mnemo-api/internal/platform/logger"
	"github.com/phrazzld/mnemo-api/internal/store"
)

// timeLayout is fixed-width so that lexical order of the stored text
// matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const sessionColumns = `id, user_id, exercise_id, exercise_type, difficulty, config,
	total_moves, correct_moves, incorrect_moves, time_elapsed_ms, max_sequence_reached,
	is_completed, completed_at, final_score, score_breakdown, created_at, updated_at`

// SessionStore implements store.SessionStore on SQLite.
type SessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSessionStore creates a SQLite session store. It panics on a nil db.
func NewSessionStore(db store.DBTX, logger *slog.Logger) *SessionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

var _ store.SessionStore = (*SessionStore)(nil)

// Create implements store.SessionStore.
func (s *SessionStore) Create(ctx context.Context, session *domain.Session) error {
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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	err = s.db.QueryRowContext(ctx, query,
		session.UserID,
		nullInt64(session.ExerciseID),
		string(session.ExerciseType),
		string(session.Difficulty),
		string(config),
		session.TotalMoves,
		session.CorrectMoves,
		session.IncorrectMoves,
		session.TimeElapsedMs,
		nullInt(session.MaxSequenceReached),
		session.IsCompleted,
		nullTime(session.CompletedAt),
		nullFloat(session.FinalScore),
		breakdown,
		formatTime(session.CreatedAt),
		formatTime(session.UpdatedAt),
	).Scan(&session.ID)
	if err != nil {
		log.Error("failed to create session",
			slog.String("error", err.Error()),
			slog.Int64("user_id", session.UserID))
		return mapError(err)
	}

	log.Debug("session created",
		slog.Int64("session_id", session.ID),
		slog.Int64("user_id", session.UserID))
	return nil
}

// GetByIDAndUser implements store.SessionStore.
func (s *SessionStore) GetByIDAndUser(ctx context.Context, id, userID int64) (*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + sessionColumns + ` FROM exercise_sessions WHERE id = ? AND user_id = ?`
	session, err := scanSession(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSessionNotFound
		}
		log.Error("failed to get session",
			slog.String("error", err.Error()),
			slog.Int64("session_id", id))
		return nil, mapError(err)
	}
	return session, nil
}

// GetForUpdate implements store.SessionStore. SQLite has no row locks;
// the single-connection pool already serialises transactions.
func (s *SessionStore) GetForUpdate(ctx context.Context, id, userID int64) (*domain.Session, error) {
	return s.GetByIDAndUser(ctx, id, userID)
}

// Update implements store.SessionStore.
func (s *SessionStore) Update(ctx context.Context, session *domain.Session) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	breakdown, err := encodeBreakdown(session.ScoreBreakdown)
	if err != nil {
		return err
	}

	query := `
		UPDATE exercise_sessions
		SET total_moves = ?, correct_moves = ?, incorrect_moves = ?, time_elapsed_ms = ?,
			max_sequence_reached = ?, is_completed = ?, completed_at = ?, final_score = ?,
			score_breakdown = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		session.TotalMoves,
		session.CorrectMoves,
		session.IncorrectMoves,
		session.TimeElapsedMs,
		nullInt(session.MaxSequenceReached),
		session.IsCompleted,
		nullTime(session.CompletedAt),
		nullFloat(session.FinalScore),
		breakdown,
		formatTime(session.UpdatedAt),
		session.ID,
		session.UserID,
	)
	if err != nil {
		log.Error("failed to update session",
			slog.String("error", err.Error()),
			slog.Int64("session_id", session.ID))
		return store.NewStoreError("session", "update", "write rejected",
			fmt.Errorf("%w: %w", store.ErrUpdateFailed, mapError(err)))
	}

	n, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("session", "update", "rows affected unavailable",
			fmt.Errorf("%w: %w", store.ErrUpdateFailed, err))
	}
	if n == 0 {
		return store.ErrSessionNotFound
	}
	return nil
}

// ListByUser implements store.SessionStore.
func (s *SessionStore) ListByUser(ctx context.Context, userID int64, q store.SessionQuery) ([]*domain.Session, error) {
	clauses := []string{"user_id = ?"}
	args := []any{userID}
	if q.ExerciseType != nil {
		clauses = append(clauses, "exercise_type = ?")
		args = append(args, string(*q.ExerciseType))
	}
	args = append(args, q.Limit, q.Offset)

	query := `SELECT ` + sessionColumns + ` FROM exercise_sessions WHERE ` + strings.Join(clauses, " AND ") +
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	return s.list(ctx, query, args)
}

// ListCompleted implements store.SessionStore.
func (s *SessionStore) ListCompleted(ctx context.Context, q store.CompletedQuery) ([]*domain.Session, error) {
	clauses := []string{"is_completed = 1", "final_score IS NOT NULL"}
	var args []any
	if q.ExerciseID != nil {
		clauses = append(clauses, "exercise_id = ?")
		args = append(args, *q.ExerciseID)
	}
	if q.ExerciseType != nil {
		clauses = append(clauses, "exercise_type = ?")
		args = append(args, string(*q.ExerciseType))
	}
	if q.Difficulty != nil {
		clauses = append(clauses, "difficulty = ?")
		args = append(args, string(*q.Difficulty))
	}
	args = append(args, q.Limit)

	query := `SELECT ` + sessionColumns + ` FROM exercise_sessions WHERE ` + strings.Join(clauses, " AND ") +
		` ORDER BY final_score DESC, id ASC LIMIT ?`
	return s.list(ctx, query, args)
}

// ListAllByUser implements store.SessionStore.
func (s *SessionStore) ListAllByUser(ctx context.Context, userID int64) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM exercise_sessions WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	return s.list(ctx, query, []any{userID})
}

func (s *SessionStore) list(ctx context.Context, query string, args []any) ([]*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query sessions", slog.String("error", err.Error()))
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			log.Error("failed to scan session", slog.String("error", err.Error()))
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return sessions, nil
}

// WithTx implements store.SessionStore.
func (s *SessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	return &SessionStore{db: tx, logger: s.logger}
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
		config       sql.NullString
		maxSequence  sql.NullInt64
		isCompleted  int64
		completedAt  sql.NullString
		finalScore   sql.NullFloat64
		breakdown    sql.NullString
		createdAt    string
		updatedAt    string
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
		&isCompleted,
		&completedAt,
		&finalScore,
		&breakdown,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.ExerciseType = domain.ExerciseType(exerciseType)
	s.Difficulty = domain.Difficulty(difficulty)
	s.IsCompleted = isCompleted != 0
	if exerciseID.Valid {
		v := exerciseID.Int64
		s.ExerciseID = &v
	}
	if maxSequence.Valid {
		v := int(maxSequence.Int64)
		s.MaxSequenceReached = &v
	}
	if finalScore.Valid {
		v := finalScore.Float64
		s.FinalScore = &v
	}
	if completedAt.Valid {
		t, err := parseTime(completedAt.String)
		if err != nil {
			return nil, err
		}
		s.CompletedAt = &t
	}
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if s.Config, err = domain.DecodeExerciseConfig([]byte(config.String)); err != nil {
		return nil, err
	}
	if breakdown.Valid {
		if s.ScoreBreakdown, err = domain.DecodeScoreBreakdown([]byte(breakdown.String)); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q", domain.ErrInvalidFormat, s)
	}
	return t, nil
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func encodeBreakdown(b *domain.ScoreBreakdown) (sql.NullString, error) {
	if b == nil {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("%w: encode score breakdown: %v", store.ErrInvalidEntity, err)
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}
