package domain

import (
	"encoding/json"
	"fmt"
)

// ScoreBreakdown explains how a final score was derived.
type ScoreBreakdown struct {
	Accuracy             float64 `json:"accuracy"`
	AccuracyScore        float64 `json:"accuracy_score"`
	TimeScore            float64 `json:"time_score"`
	TimeElapsedMs        int64   `json:"time_elapsed_ms"`
	TotalMoves           int     `json:"total_moves"`
	CorrectMoves         int     `json:"correct_moves"`
	IncorrectMoves       int     `json:"incorrect_moves"`
	MaxSequence          *int    `json:"max_sequence"`
	SequenceBonus        float64 `json:"sequence_bonus"`
	DifficultyMultiplier float64 `json:"difficulty_multiplier"`
	FinalScore           float64 `json:"final_score"`
}

// DecodeScoreBreakdown parses a stored breakdown blob. An empty or null
// blob yields nil.
func DecodeScoreBreakdown(raw []byte) (*ScoreBreakdown, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var b ScoreBreakdown
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return &b, nil
}
