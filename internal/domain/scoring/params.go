package scoring

import (
	"github.com/phrazzld/mnemo-api/internal/domain"
)

// Params defines the tunable constants of the scoring algorithm. The
// defaults must not change without a migration plan: stored scores were
// computed with them.
type Params struct {
	// Difficulty multipliers; difficulties missing from the map use
	// UnknownDifficultyMultiplier.
	DifficultyMultipliers       map[domain.Difficulty]float64
	UnknownDifficultyMultiplier float64

	// Sequence memory bonus
	SequenceBonusPerStep float64
	MaxSequenceBonus     float64

	// Upper bound applied once, after the multiplier
	MaxScore float64
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	EasyMultiplier   float64
	MediumMultiplier float64
	HardMultiplier   float64
	ExpertMultiplier float64

	SequenceBonusPerStep float64
	MaxSequenceBonus     float64
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		DifficultyMultipliers: map[domain.Difficulty]float64{
			domain.DifficultyEasy:   1.0,
			domain.DifficultyMedium: 1.2,
			domain.DifficultyHard:   1.5,
			domain.DifficultyExpert: 2.0,
		},
		UnknownDifficultyMultiplier: 1.0,

		SequenceBonusPerStep: 2,
		MaxSequenceBonus:     20,

		MaxScore: 100,
	}
}

// NewParams creates a new Params instance, overriding the defaults with
// every positive value in config.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	overrides := map[domain.Difficulty]float64{
		domain.DifficultyEasy:   config.EasyMultiplier,
		domain.DifficultyMedium: config.MediumMultiplier,
		domain.DifficultyHard:   config.HardMultiplier,
		domain.DifficultyExpert: config.ExpertMultiplier,
	}
	for d, m := range overrides {
		if m > 0 {
			params.DifficultyMultipliers[d] = m
		}
	}

	if config.SequenceBonusPerStep > 0 {
		params.SequenceBonusPerStep = config.SequenceBonusPerStep
	}
	if config.MaxSequenceBonus > 0 {
		params.MaxSequenceBonus = config.MaxSequenceBonus
	}

	return params
}

// multiplier returns the multiplier for d, degrading to the unknown
// multiplier for unrecognised values.
func (p *Params) multiplier(d domain.Difficulty) float64 {
	if m, ok := p.DifficultyMultipliers[d]; ok {
		return m
	}
	return p.UnknownDifficultyMultiplier
}
