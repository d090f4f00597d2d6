// Package preset provides the static catalog of named exercise
// configurations offered to clients when starting a session.
package preset

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/phrazzld/mnemo-api/internal/domain"
)

//go:embed presets.yaml
var defaultPresets []byte

// Preset is a named, pre-filled configuration template.
type Preset struct {
	Name       string                `yaml:"name"       json:"name"`
	Difficulty domain.Difficulty     `yaml:"difficulty" json:"difficulty"`
	Config     domain.ExerciseConfig `yaml:"config"     json:"config"`
}

// Catalog maps exercise types to their ordered presets. It is immutable
// after construction and safe for concurrent use.
type Catalog struct {
	presets map[domain.ExerciseType][]Preset
}

// NewDefaultCatalog returns the built-in catalog.
func NewDefaultCatalog() (*Catalog, error) {
	return Parse(defaultPresets)
}

// Parse builds a catalog from YAML keyed by exercise type. Every preset
// must carry a name and a valid configuration whose classification
// matches its key and difficulty.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string][]Preset
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}

	c := &Catalog{presets: make(map[domain.ExerciseType][]Preset, len(raw))}
	for key, list := range raw {
		et, err := domain.ParseExerciseType(key)
		if err != nil {
			return nil, fmt.Errorf("invalid preset group: %w", err)
		}
		for i, p := range list {
			if p.Name == "" {
				return nil, fmt.Errorf("preset %s[%d]: missing name", key, i)
			}
			if err := p.Config.Validate(); err != nil {
				return nil, fmt.Errorf("preset %s/%s: %w", key, p.Name, err)
			}
			if p.Config.ExerciseType != et || p.Config.Difficulty != p.Difficulty {
				return nil, fmt.Errorf("preset %s/%s: config classification does not match", key, p.Name)
			}
		}
		c.presets[et] = list
	}
	return c, nil
}

// Lookup returns a copy of the presets for exerciseType. Unknown types
// yield an empty, non-nil slice.
func (c *Catalog) Lookup(exerciseType domain.ExerciseType) []Preset {
	list := c.presets[exerciseType]
	out := make([]Preset, len(list))
	for i, p := range list {
		out[i] = Preset{Name: p.Name, Difficulty: p.Difficulty, Config: p.Config.Clone()}
	}
	return out
}

// ExerciseTypes returns the exercise types that have presets, in
// canonical order.
func (c *Catalog) ExerciseTypes() []domain.ExerciseType {
	var types []domain.ExerciseType
	for _, et := range domain.ExerciseTypes {
		if len(c.presets[et]) > 0 {
			types = append(types, et)
		}
	}
	return types
}
