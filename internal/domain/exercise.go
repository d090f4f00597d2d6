package domain

import (
	"encoding/json"
	"fmt"
)

// ExerciseType identifies one of the visual memory exercises.
type ExerciseType string

// Supported exercise types. The order of ExerciseTypes is the order used
// when reporting per-type statistics.
const (
	ExerciseTypeMemoryCards    ExerciseType = "memory_cards"
	ExerciseTypePatternRecall  ExerciseType = "pattern_recall"
	ExerciseTypeSequenceMemory ExerciseType = "sequence_memory"
	ExerciseTypeImagePairs     ExerciseType = "image_pairs"
)

// ExerciseTypes lists every supported exercise type in canonical order.
var ExerciseTypes = []ExerciseType{
	ExerciseTypeMemoryCards,
	ExerciseTypePatternRecall,
	ExerciseTypeSequenceMemory,
	ExerciseTypeImagePairs,
}

// IsValid reports whether t is a known exercise type.
func (t ExerciseType) IsValid() bool {
	switch t {
	case ExerciseTypeMemoryCards, ExerciseTypePatternRecall,
		ExerciseTypeSequenceMemory, ExerciseTypeImagePairs:
		return true
	default:
		return false
	}
}

// ParseExerciseType converts a wire value into an ExerciseType.
func ParseExerciseType(s string) (ExerciseType, error) {
	t := ExerciseType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidExerciseType, s)
	}
	return t, nil
}

// Difficulty is the difficulty level a session was played at.
type Difficulty string

// Supported difficulty levels.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// IsValid reports whether d is a known difficulty.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert:
		return true
	default:
		return false
	}
}

// ParseDifficulty converts a wire value into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
	}
	return d, nil
}

// Defaults applied when a configuration omits a value.
const (
	DefaultTimeWeight     = 0.5
	DefaultAccuracyWeight = 0.5
	DefaultTimeLimitMs    = int64(60000)
)

// ExerciseConfig is the configuration captured when a session is created.
// Optional values are pointers so that a missing key can be told apart
// from an explicit zero.
type ExerciseConfig struct {
	ExerciseType          ExerciseType `json:"exercise_type"                     yaml:"exercise_type"`
	Difficulty            Difficulty   `json:"difficulty"                        yaml:"difficulty"`
	GridRows              *int         `json:"grid_rows,omitempty"               yaml:"grid_rows,omitempty"`
	GridCols              *int         `json:"grid_cols,omitempty"               yaml:"grid_cols,omitempty"`
	InitialSequenceLength *int         `json:"initial_sequence_length,omitempty" yaml:"initial_sequence_length,omitempty"`
	MaxSequenceLength     *int         `json:"max_sequence_length,omitempty"     yaml:"max_sequence_length,omitempty"`
	PreviewDurationMs     *int64       `json:"preview_duration_ms,omitempty"     yaml:"preview_duration_ms,omitempty"`
	TimeLimitMs           *int64       `json:"time_limit_ms,omitempty"           yaml:"time_limit_ms,omitempty"`
	Colors                []string     `json:"colors,omitempty"                  yaml:"colors,omitempty"`
	Images                []string     `json:"images,omitempty"                  yaml:"images,omitempty"`
	TimeWeight            *float64     `json:"time_weight,omitempty"             yaml:"time_weight,omitempty"`
	AccuracyWeight        *float64     `json:"accuracy_weight,omitempty"         yaml:"accuracy_weight,omitempty"`
}

// TimeWeightOrDefault returns the configured time weight, or 0.5.
func (c ExerciseConfig) TimeWeightOrDefault() float64 {
	if c.TimeWeight == nil {
		return DefaultTimeWeight
	}
	return *c.TimeWeight
}

// AccuracyWeightOrDefault returns the configured accuracy weight, or 0.5.
func (c ExerciseConfig) AccuracyWeightOrDefault() float64 {
	if c.AccuracyWeight == nil {
		return DefaultAccuracyWeight
	}
	return *c.AccuracyWeight
}

// TimeLimitOrDefault returns the configured time limit in milliseconds.
// Missing and non-positive limits fall back to one minute.
func (c ExerciseConfig) TimeLimitOrDefault() int64 {
	if c.TimeLimitMs == nil || *c.TimeLimitMs <= 0 {
		return DefaultTimeLimitMs
	}
	return *c.TimeLimitMs
}

// Validate checks the classification fields and numeric bounds.
func (c ExerciseConfig) Validate() error {
	if !c.ExerciseType.IsValid() {
		return NewValidationError("exercise_type", "unknown exercise type", ErrInvalidExerciseType)
	}
	if !c.Difficulty.IsValid() {
		return NewValidationError("difficulty", "unknown difficulty", ErrInvalidDifficulty)
	}
	for name, v := range map[string]*int{
		"grid_rows":               c.GridRows,
		"grid_cols":               c.GridCols,
		"initial_sequence_length": c.InitialSequenceLength,
		"max_sequence_length":     c.MaxSequenceLength,
	} {
		if v != nil && *v < 0 {
			return NewValidationError(name, "must not be negative", ErrInvalidConfig)
		}
	}
	if c.PreviewDurationMs != nil && *c.PreviewDurationMs < 0 {
		return NewValidationError("preview_duration_ms", "must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c ExerciseConfig) Clone() ExerciseConfig {
	out := c
	out.GridRows = clonePtr(c.GridRows)
	out.GridCols = clonePtr(c.GridCols)
	out.InitialSequenceLength = clonePtr(c.InitialSequenceLength)
	out.MaxSequenceLength = clonePtr(c.MaxSequenceLength)
	out.PreviewDurationMs = clonePtr(c.PreviewDurationMs)
	out.TimeLimitMs = clonePtr(c.TimeLimitMs)
	out.TimeWeight = clonePtr(c.TimeWeight)
	out.AccuracyWeight = clonePtr(c.AccuracyWeight)
	if c.Colors != nil {
		out.Colors = append([]string(nil), c.Colors...)
	}
	if c.Images != nil {
		out.Images = append([]string(nil), c.Images...)
	}
	return out
}

// DecodeExerciseConfig parses a stored configuration blob. Unknown keys
// are ignored and missing keys are left unset.
func DecodeExerciseConfig(raw []byte) (ExerciseConfig, error) {
	var cfg ExerciseConfig
	if len(raw) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return cfg, nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
