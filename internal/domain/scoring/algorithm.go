package scoring

import (
	"math"

	"github.com/phrazzld/mnemo-api/internal/domain"
)

// calculateAccuracy returns the raw accuracy percentage (0-100).
// A session without moves has zero accuracy.
func calculateAccuracy(total, correct int) float64 {
	if total <= 0 || correct <= 0 {
		return 0
	}
	return math.Min(100, float64(correct)/float64(total)*100)
}

// calculateTimeScore rewards faster play. The elapsed/limit ratio is
// capped at 1 so the score never goes negative when the limit is
// exceeded. Non-positive elapsed time or limit yields 0.
func calculateTimeScore(elapsedMs, limitMs int64) float64 {
	if elapsedMs <= 0 || limitMs <= 0 {
		return 0
	}
	ratio := math.Min(1, float64(elapsedMs)/float64(limitMs))
	return (1 - ratio) * 100
}

// calculateSequenceBonus returns the bonus for sequence memory sessions.
// Other exercise types, and sessions without a reached sequence, get 0.
func calculateSequenceBonus(
	exerciseType domain.ExerciseType,
	maxSequence *int,
	params *Params,
) float64 {
	if exerciseType != domain.ExerciseTypeSequenceMemory || maxSequence == nil || *maxSequence <= 0 {
		return 0
	}
	return math.Min(params.MaxSequenceBonus, float64(*maxSequence)*params.SequenceBonusPerStep)
}

// clampScore bounds a score to [0, params.MaxScore]. NaN, which can only
// arise from non-finite weights, is treated as 0.
func clampScore(score float64, params *Params) float64 {
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	return math.Min(params.MaxScore, score)
}

// components holds the intermediate values of one scoring pass.
type components struct {
	accuracy      float64
	accuracyScore float64
	timeScore     float64
	sequenceBonus float64
	multiplier    float64
	final         float64
}

// calculateComponents runs the scoring algorithm over s.
//
// Steps:
//  1. accuracy = correct / total * 100
//  2. time score = (1 - min(1, elapsed / limit)) * 100
//  3. base = accuracy * accuracy_weight + time * time_weight
//  4. sequence bonus for sequence memory
//  5. final = min(100, (base + bonus) * difficulty multiplier)
//
// Weights are not normalised; they need not sum to 1. With zero moves
// every component except the multiplier is 0.
func calculateComponents(s *domain.Session, params *Params) components {
	c := components{multiplier: params.multiplier(s.Difficulty)}
	if s.TotalMoves <= 0 {
		return c
	}

	cfg := s.Config
	c.accuracy = calculateAccuracy(s.TotalMoves, s.CorrectMoves)
	c.accuracyScore = c.accuracy * cfg.AccuracyWeightOrDefault()
	c.timeScore = calculateTimeScore(s.TimeElapsedMs, cfg.TimeLimitOrDefault()) * cfg.TimeWeightOrDefault()
	c.sequenceBonus = calculateSequenceBonus(s.ExerciseType, s.MaxSequenceReached, params)

	if s.IsCompleted {
		c.final = clampScore((c.accuracyScore+c.timeScore+c.sequenceBonus)*c.multiplier, params)
	}
	return c
}

// buildBreakdown assembles the breakdown record reporting finalScore.
func buildBreakdown(s *domain.Session, c components, finalScore float64) domain.ScoreBreakdown {
	var maxSeq *int
	if s.MaxSequenceReached != nil {
		v := *s.MaxSequenceReached
		maxSeq = &v
	}
	return domain.ScoreBreakdown{
		Accuracy:             c.accuracy,
		AccuracyScore:        c.accuracyScore,
		TimeScore:            c.timeScore,
		TimeElapsedMs:        s.TimeElapsedMs,
		TotalMoves:           s.TotalMoves,
		CorrectMoves:         s.CorrectMoves,
		IncorrectMoves:       s.IncorrectMoves,
		MaxSequence:          maxSeq,
		SequenceBonus:        c.sequenceBonus,
		DifficultyMultiplier: c.multiplier,
		FinalScore:           finalScore,
	}
}
