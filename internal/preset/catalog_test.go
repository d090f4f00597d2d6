package preset

import (
	"testing"

	"github.com/phrazzld/mnemo-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()
	c, err := NewDefaultCatalog()
	require.NoError(t, err)

	cards := c.Lookup(domain.ExerciseTypeMemoryCards)
	require.Len(t, cards, 3)
	assert.Equal(t, []string{"Facile", "Moyen", "Difficile"}, []string{cards[0].Name, cards[1].Name, cards[2].Name})
	assert.Equal(t, domain.DifficultyMedium, cards[1].Difficulty)
	require.NotNil(t, cards[1].Config.GridRows)
	assert.Equal(t, 6, *cards[1].Config.GridRows)
	assert.Equal(t, int64(420000), cards[1].Config.TimeLimitOrDefault())
	assert.Equal(t, 0.6, cards[1].Config.AccuracyWeightOrDefault())

	pattern := c.Lookup(domain.ExerciseTypePatternRecall)
	require.Len(t, pattern, 1)
	assert.Equal(t, []string{"#3B82F6", "#EF4444", "#10B981", "#F59E0B"}, pattern[0].Config.Colors)

	seq := c.Lookup(domain.ExerciseTypeSequenceMemory)
	require.Len(t, seq, 1)
	assert.Nil(t, seq[0].Config.TimeLimitMs)
	require.NotNil(t, seq[0].Config.MaxSequenceLength)
	assert.Equal(t, 20, *seq[0].Config.MaxSequenceLength)

	assert.Len(t, c.Lookup(domain.ExerciseTypeImagePairs), 1)
	assert.Equal(t, domain.ExerciseTypes, c.ExerciseTypes())
}

func TestLookupUnknownType(t *testing.T) {
	t.Parallel()
	c, err := NewDefaultCatalog()
	require.NoError(t, err)

	got := c.Lookup("crossword")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLookupReturnsCopies(t *testing.T) {
	t.Parallel()
	c, err := NewDefaultCatalog()
	require.NoError(t, err)

	first := c.Lookup(domain.ExerciseTypePatternRecall)
	first[0].Name = "changed"
	first[0].Config.Colors[0] = "#000000"
	*first[0].Config.GridRows = 99

	second := c.Lookup(domain.ExerciseTypePatternRecall)
	assert.Equal(t, "Facile", second[0].Name)
	assert.Equal(t, "#3B82F6", second[0].Config.Colors[0])
	assert.Equal(t, 3, *second[0].Config.GridRows)
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		yaml string
	}{
		{
			name: "unknown group",
			yaml: "chess:\n  - name: A\n    difficulty: easy\n    config: {exercise_type: memory_cards, difficulty: easy}\n",
		},
		{
			name: "missing name",
			yaml: "memory_cards:\n  - difficulty: easy\n    config: {exercise_type: memory_cards, difficulty: easy}\n",
		},
		{
			name: "mismatched type",
			yaml: "memory_cards:\n  - name: A\n    difficulty: easy\n    config: {exercise_type: image_pairs, difficulty: easy}\n",
		},
		{
			name: "unknown difficulty",
			yaml: "memory_cards:\n  - name: A\n    difficulty: brutal\n    config: {exercise_type: memory_cards, difficulty: brutal}\n",
		},
		{
			name: "malformed",
			yaml: "memory_cards: [",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}
