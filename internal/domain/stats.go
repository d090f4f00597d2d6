package domain

import "time"

// LeaderboardEntry is one ranked row of a leaderboard.
type LeaderboardEntry struct {
	Rank          int
	SessionID     int64
	UserID        int64
	Score         float64
	Accuracy      float64
	TimeElapsedMs int64
	Difficulty    Difficulty
	CompletedAt   *time.Time
	IsCurrentUser bool
}

// ExerciseStats summarises one user's sessions of a single exercise type.
// Pointer fields are nil when no completed session defines them.
type ExerciseStats struct {
	ExerciseType      ExerciseType
	TotalAttempts     int
	CompletedAttempts int
	BestScore         *float64
	BestAccuracy      *float64
	FastestTimeMs     *int64
	LongestSequence   *int
	AvgScore          *float64
	AvgAccuracy       *float64
	AvgTimeMs         *float64
	RecentScores      []float64
	RecentAccuracies  []float64
	ImprovementRate   *float64
}
