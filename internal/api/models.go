package api

import (
	"time"

	"github.com/phrazzld/mnemo-api/internal/domain"
	"github.com/phrazzld/mnemo-api/internal/preset"
)

// CreateSessionRequest is the body of POST /sessions. UserID is only
// consulted when the caller is not authenticated.
type CreateSessionRequest struct {
	UserID     *int64                `json:"user_id"     validate:"omitempty,gt=0"`
	ExerciseID *int64                `json:"exercise_id" validate:"omitempty,gt=0"`
	Config     domain.ExerciseConfig `json:"config"`
}

// UpdateSessionRequest is the body of PUT /sessions/{id}. Absent fields
// are left unchanged; completed_at finalizes and scores the session.
// Scores sent by clients are not accepted. Move counts must fit the
// 32-bit integer columns.
type UpdateSessionRequest struct {
	TotalMoves         *int       `json:"total_moves"          validate:"omitempty,gte=0,lte=2147483647"`
	CorrectMoves       *int       `json:"correct_moves"        validate:"omitempty,gte=0,lte=2147483647"`
	IncorrectMoves     *int       `json:"incorrect_moves"      validate:"omitempty,gte=0,lte=2147483647"`
	TimeElapsedMs      *int64     `json:"time_elapsed_ms"      validate:"omitempty,gte=0"`
	MaxSequenceReached *int       `json:"max_sequence_reached" validate:"omitempty,gte=0,lte=2147483647"`
	CompletedAt        *time.Time `json:"completed_at"`
}

func (req UpdateSessionRequest) toDomain() domain.SessionUpdate {
	return domain.SessionUpdate{
		TotalMoves:         req.TotalMoves,
		CorrectMoves:       req.CorrectMoves,
		IncorrectMoves:     req.IncorrectMoves,
		TimeElapsedMs:      req.TimeElapsedMs,
		MaxSequenceReached: req.MaxSequenceReached,
		CompletedAt:        req.CompletedAt,
	}
}

// SessionResponse is the wire form of a session.
type SessionResponse struct {
	ID                 int64                  `json:"id"`
	UserID             int64                  `json:"user_id"`
	ExerciseID         *int64                 `json:"exercise_id"`
	ExerciseType       domain.ExerciseType    `json:"exercise_type"`
	Difficulty         domain.Difficulty      `json:"difficulty"`
	Config             domain.ExerciseConfig  `json:"config"`
	IsCompleted        bool                   `json:"is_completed"`
	TotalMoves         int                    `json:"total_moves"`
	CorrectMoves       int                    `json:"correct_moves"`
	IncorrectMoves     int                    `json:"incorrect_moves"`
	TimeElapsedMs      int64                  `json:"time_elapsed_ms"`
	MaxSequenceReached *int                   `json:"max_sequence_reached"`
	FinalScore         *float64               `json:"final_score"`
	ScoreBreakdown     *domain.ScoreBreakdown `json:"score_breakdown"`
	Accuracy           float64                `json:"accuracy"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
	CompletedAt        *time.Time             `json:"completed_at"`
}

func sessionToResponse(s *domain.Session) SessionResponse {
	return SessionResponse{
		ID:                 s.ID,
		UserID:             s.UserID,
		ExerciseID:         s.ExerciseID,
		ExerciseType:       s.ExerciseType,
		Difficulty:         s.Difficulty,
		Config:             s.Config,
		IsCompleted:        s.IsCompleted,
		TotalMoves:         s.TotalMoves,
		CorrectMoves:       s.CorrectMoves,
		IncorrectMoves:     s.IncorrectMoves,
		TimeElapsedMs:      s.TimeElapsedMs,
		MaxSequenceReached: s.MaxSequenceReached,
		FinalScore:         s.FinalScore,
		ScoreBreakdown:     s.ScoreBreakdown,
		Accuracy:           s.Accuracy(),
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
		CompletedAt:        s.CompletedAt,
	}
}

func sessionsToResponse(sessions []*domain.Session) []SessionResponse {
	out := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		out[i] = sessionToResponse(s)
	}
	return out
}

// LeaderboardEntryResponse is one ranked leaderboard row.
type LeaderboardEntryResponse struct {
	Rank          int               `json:"rank"`
	SessionID     int64             `json:"session_id"`
	UserID        int64             `json:"user_id"`
	FinalScore    float64           `json:"final_score"`
	Accuracy      float64           `json:"accuracy"`
	TimeElapsedMs int64             `json:"time_elapsed_ms"`
	Difficulty    domain.Difficulty `json:"difficulty"`
	CompletedAt   *time.Time        `json:"completed_at"`
	IsCurrentUser bool              `json:"is_current_user"`
}

func leaderboardToResponse(entries []domain.LeaderboardEntry) []LeaderboardEntryResponse {
	out := make([]LeaderboardEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = LeaderboardEntryResponse{
			Rank:          e.Rank,
			SessionID:     e.SessionID,
			UserID:        e.UserID,
			FinalScore:    e.Score,
			Accuracy:      e.Accuracy,
			TimeElapsedMs: e.TimeElapsedMs,
			Difficulty:    e.Difficulty,
			CompletedAt:   e.CompletedAt,
			IsCurrentUser: e.IsCurrentUser,
		}
	}
	return out
}

// ExerciseStatsResponse summarizes one exercise type for a user.
type ExerciseStatsResponse struct {
	ExerciseType      domain.ExerciseType `json:"exercise_type"`
	TotalAttempts     int                 `json:"total_attempts"`
	CompletedAttempts int                 `json:"completed_attempts"`
	BestScore         *float64            `json:"best_score"`
	BestAccuracy      *float64            `json:"best_accuracy"`
	FastestTimeMs     *int64              `json:"fastest_time_ms"`
	LongestSequence   *int                `json:"longest_sequence"`
	AvgScore          *float64            `json:"avg_score"`
	AvgAccuracy       *float64            `json:"avg_accuracy"`
	AvgTimeMs         *float64            `json:"avg_time_ms"`
	RecentScores      []float64           `json:"recent_scores"`
	RecentAccuracies  []float64           `json:"recent_accuracies"`
	ImprovementRate   *float64            `json:"improvement_rate"`
}

func statsToResponse(stats []domain.ExerciseStats) []ExerciseStatsResponse {
	out := make([]ExerciseStatsResponse, len(stats))
	for i, s := range stats {
		recentScores := s.RecentScores
		if recentScores == nil {
			recentScores = []float64{}
		}
		recentAccuracies := s.RecentAccuracies
		if recentAccuracies == nil {
			recentAccuracies = []float64{}
		}
		out[i] = ExerciseStatsResponse{
			ExerciseType:      s.ExerciseType,
			TotalAttempts:     s.TotalAttempts,
			CompletedAttempts: s.CompletedAttempts,
			BestScore:         s.BestScore,
			BestAccuracy:      s.BestAccuracy,
			FastestTimeMs:     s.FastestTimeMs,
			LongestSequence:   s.LongestSequence,
			AvgScore:          s.AvgScore,
			AvgAccuracy:       s.AvgAccuracy,
			AvgTimeMs:         s.AvgTimeMs,
			RecentScores:      recentScores,
			RecentAccuracies:  recentAccuracies,
			ImprovementRate:   s.ImprovementRate,
		}
	}
	return out
}

// PresetResponse is a named configuration template.
type PresetResponse struct {
	Name       string                `json:"name"`
	Difficulty domain.Difficulty     `json:"difficulty"`
	Config     domain.ExerciseConfig `json:"config"`
}

func presetsToResponse(presets []preset.Preset) []PresetResponse {
	out := make([]PresetResponse, len(presets))
	for i, p := range presets {
		out[i] = PresetResponse{Name: p.Name, Difficulty: p.Difficulty, Config: p.Config}
	}
	return out
}
