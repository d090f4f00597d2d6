package domain

import (
	"errors"
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestNewSession(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	exerciseID := int64(7)
	cfg := ExerciseConfig{
		ExerciseType: ExerciseTypeMemoryCards,
		Difficulty:   DifficultyMedium,
		GridRows:     intPtr(4),
		GridCols:     intPtr(4),
		Colors:       []string{"#fff"},
	}

	s, err := NewSession(42, &exerciseID, cfg, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if s.UserID != 42 {
		t.Errorf("Expected user ID 42, got %d", s.UserID)
	}
	if s.ExerciseType != ExerciseTypeMemoryCards || s.Difficulty != DifficultyMedium {
		t.Errorf("Expected classification to be copied from config, got %s/%s", s.ExerciseType, s.Difficulty)
	}
	if s.IsCompleted || s.CompletedAt != nil || s.FinalScore != nil || s.ScoreBreakdown != nil {
		t.Error("Expected a fresh session to be incomplete and unscored")
	}
	if s.TotalMoves != 0 || s.CorrectMoves != 0 || s.IncorrectMoves != 0 || s.TimeElapsedMs != 0 {
		t.Error("Expected zeroed telemetry")
	}
	if !s.CreatedAt.Equal(now) || !s.UpdatedAt.Equal(now) {
		t.Errorf("Expected timestamps %v, got %v/%v", now, s.CreatedAt, s.UpdatedAt)
	}

	// The session must not share memory with the caller's config.
	*cfg.GridRows = 9
	cfg.Colors[0] = "#000"
	exerciseID = 99
	if *s.Config.GridRows != 4 || s.Config.Colors[0] != "#fff" || *s.ExerciseID != 7 {
		t.Error("Expected session config to be an independent copy")
	}
}

func TestNewSessionValidation(t *testing.T) {
	t.Parallel()
	now := time.Now()
	valid := ExerciseConfig{ExerciseType: ExerciseTypeImagePairs, Difficulty: DifficultyEasy}

	tests := []struct {
		name   string
		userID int64
		cfg    ExerciseConfig
		want   error
	}{
		{"zero user", 0, valid, ErrInvalidID},
		{"unknown type", 1, ExerciseConfig{ExerciseType: "chess", Difficulty: DifficultyEasy}, ErrInvalidExerciseType},
		{"unknown difficulty", 1, ExerciseConfig{ExerciseType: ExerciseTypeImagePairs, Difficulty: "insane"}, ErrInvalidDifficulty},
		{"negative grid", 1, ExerciseConfig{ExerciseType: ExerciseTypeImagePairs, Difficulty: DifficultyEasy, GridRows: intPtr(-1)}, ErrInvalidConfig},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSession(tc.userID, nil, tc.cfg, now)
			if !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Expected error to match ErrValidation, got %v", err)
			}
		})
	}
}

func TestSessionAccuracy(t *testing.T) {
	t.Parallel()
	s := &Session{}
	if got := s.Accuracy(); got != 0 {
		t.Errorf("Expected 0 accuracy without moves, got %v", got)
	}
	s.TotalMoves, s.CorrectMoves = 10, 8
	if got := s.Accuracy(); got != 80 {
		t.Errorf("Expected 80, got %v", got)
	}
	s.TotalMoves, s.CorrectMoves = 2, 5
	if got := s.Accuracy(); got != 100 {
		t.Errorf("Expected accuracy capped at 100, got %v", got)
	}
}

func TestSessionValidateTelemetry(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		total, correct int
		wantErr        bool
	}{
		{"empty", 0, 0, false},
		{"partial", 10, 8, false},
		{"all correct", 4, 4, false},
		{"correct exceeds total", 2, 5, true},
		{"correct without total", 0, 1, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := (&Session{TotalMoves: tc.total, CorrectMoves: tc.correct}).ValidateTelemetry()
			if tc.wantErr && !errors.Is(err, ErrInvalidTelemetry) {
				t.Errorf("Expected ErrInvalidTelemetry, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestSessionUpdateApply(t *testing.T) {
	t.Parallel()
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &Session{TotalMoves: 3, CorrectMoves: 2, IncorrectMoves: 1, TimeElapsedMs: 500, CreatedAt: created, UpdatedAt: created}
	moves := 10
	later := created.Add(time.Minute)

	SessionUpdate{TotalMoves: &moves}.Apply(s, later)

	if s.TotalMoves != 10 {
		t.Errorf("Expected total moves 10, got %d", s.TotalMoves)
	}
	if s.CorrectMoves != 2 || s.IncorrectMoves != 1 || s.TimeElapsedMs != 500 {
		t.Error("Expected absent fields to be left unchanged")
	}
	if !s.UpdatedAt.Equal(later) || !s.CreatedAt.Equal(created) {
		t.Error("Expected UpdatedAt to be refreshed and CreatedAt to be kept")
	}
	if s.IsCompleted {
		t.Error("Apply must not complete the session")
	}
}

func TestSessionUpdateValidate(t *testing.T) {
	t.Parallel()
	neg := -1
	negTime := int64(-5)
	if err := (SessionUpdate{CorrectMoves: &neg}).Validate(); !errors.Is(err, ErrInvalidTelemetry) {
		t.Errorf("Expected ErrInvalidTelemetry, got %v", err)
	}
	if err := (SessionUpdate{TimeElapsedMs: &negTime}).Validate(); !errors.Is(err, ErrInvalidTelemetry) {
		t.Errorf("Expected ErrInvalidTelemetry, got %v", err)
	}
	huge := MaxMoveCount + 1
	if err := (SessionUpdate{TotalMoves: &huge}).Validate(); !errors.Is(err, ErrInvalidTelemetry) {
		t.Errorf("Expected ErrInvalidTelemetry for an oversized count, got %v", err)
	}
	limit := MaxMoveCount
	if err := (SessionUpdate{MaxSequenceReached: &limit}).Validate(); err != nil {
		t.Errorf("Expected the largest storable count to be valid, got %v", err)
	}
	if err := (SessionUpdate{}).Validate(); err != nil {
		t.Errorf("Expected empty update to be valid, got %v", err)
	}
}

func TestSessionComplete(t *testing.T) {
	t.Parallel()
	s := &Session{}
	at := time.Date(2026, 2, 2, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	s.Complete(at, 81.6, ScoreBreakdown{FinalScore: 81.6})

	if !s.IsCompleted || s.CompletedAt == nil || s.FinalScore == nil || s.ScoreBreakdown == nil {
		t.Fatal("Expected completion fields to be set")
	}
	if s.CompletedAt.Location() != time.UTC {
		t.Error("Expected completion time in UTC")
	}
	if *s.FinalScore != 81.6 || s.ScoreBreakdown.FinalScore != 81.6 {
		t.Errorf("Expected score 81.6, got %v", *s.FinalScore)
	}
}
