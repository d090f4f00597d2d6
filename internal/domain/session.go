package domain

import (
	"math"
	"time"
)

// Session is the persisted state of one exercise playthrough.
type Session struct {
	ID                 int64
	UserID             int64
	ExerciseID         *int64
	ExerciseType       ExerciseType
	Difficulty         Difficulty
	Config             ExerciseConfig
	TotalMoves         int
	CorrectMoves       int
	IncorrectMoves     int
	TimeElapsedMs      int64
	MaxSequenceReached *int
	IsCompleted        bool
	CompletedAt        *time.Time
	FinalScore         *float64
	ScoreBreakdown     *ScoreBreakdown
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewSession builds an unsaved session for userID. Classification fields
// are copied out of cfg so they can be indexed.
func NewSession(userID int64, exerciseID *int64, cfg ExerciseConfig, now time.Time) (*Session, error) {
	if userID <= 0 {
		return nil, NewValidationError("user_id", "must be positive", ErrInvalidID)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	now = now.UTC()
	return &Session{
		UserID:       userID,
		ExerciseID:   clonePtr(exerciseID),
		ExerciseType: cfg.ExerciseType,
		Difficulty:   cfg.Difficulty,
		Config:       cfg.Clone(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Accuracy returns the percentage of correct moves, or 0 with no moves.
// It never exceeds 100.
func (s *Session) Accuracy() float64 {
	if s.TotalMoves <= 0 {
		return 0
	}
	return math.Min(100, float64(s.CorrectMoves)/float64(s.TotalMoves)*100)
}

// ValidateTelemetry checks the merged telemetry of s. Correct moves are a
// subset of all moves.
func (s *Session) ValidateTelemetry() error {
	if s.CorrectMoves > s.TotalMoves {
		return NewValidationError("correct_moves", "must not exceed total_moves", ErrInvalidTelemetry)
	}
	return nil
}

// SessionUpdate is a partial update. Nil fields are left unchanged.
type SessionUpdate struct {
	TotalMoves         *int
	CorrectMoves       *int
	IncorrectMoves     *int
	TimeElapsedMs      *int64
	MaxSequenceReached *int
	CompletedAt        *time.Time
}

// MaxMoveCount bounds the move and sequence counters, which are stored
// as 32-bit integers.
const MaxMoveCount = math.MaxInt32

// Validate rejects negative or oversized telemetry.
func (u SessionUpdate) Validate() error {
	for name, v := range map[string]*int{
		"total_moves":          u.TotalMoves,
		"correct_moves":        u.CorrectMoves,
		"incorrect_moves":      u.IncorrectMoves,
		"max_sequence_reached": u.MaxSequenceReached,
	} {
		if v == nil {
			continue
		}
		if *v < 0 {
			return NewValidationError(name, "must not be negative", ErrInvalidTelemetry)
		}
		if *v > MaxMoveCount {
			return NewValidationError(name, "is too large", ErrInvalidTelemetry)
		}
	}
	if u.TimeElapsedMs != nil && *u.TimeElapsedMs < 0 {
		return NewValidationError("time_elapsed_ms", "must not be negative", ErrInvalidTelemetry)
	}
	return nil
}

// Completes reports whether the update finalizes the session.
func (u SessionUpdate) Completes() bool {
	return u.CompletedAt != nil
}

// Apply copies the present telemetry fields onto s and refreshes
// UpdatedAt. Completion is left to the caller, which must score the
// session after the telemetry is in place.
func (u SessionUpdate) Apply(s *Session, now time.Time) {
	if u.TotalMoves != nil {
		s.TotalMoves = *u.TotalMoves
	}
	if u.CorrectMoves != nil {
		s.CorrectMoves = *u.CorrectMoves
	}
	if u.IncorrectMoves != nil {
		s.IncorrectMoves = *u.IncorrectMoves
	}
	if u.TimeElapsedMs != nil {
		s.TimeElapsedMs = *u.TimeElapsedMs
	}
	if u.MaxSequenceReached != nil {
		s.MaxSequenceReached = clonePtr(u.MaxSequenceReached)
	}
	s.UpdatedAt = now.UTC()
}

// Complete marks the session finished and records its score.
func (s *Session) Complete(at time.Time, score float64, breakdown ScoreBreakdown) {
	completedAt := at.UTC()
	s.IsCompleted = true
	s.CompletedAt = &completedAt
	s.FinalScore = &score
	s.ScoreBreakdown = &breakdown
}
