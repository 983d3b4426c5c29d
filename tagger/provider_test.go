package tagger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stoickb/types"
)

type stubGenerator struct {
	text string
	err  error
}

func (s stubGenerator) Complete(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func TestProviderTagParsesResponse(t *testing.T) {
	raw := `{"primary_concepts": ["memento_mori"], "virtues": ["wisdom"],
		"practices": ["evening_review"], "situations": ["grief"],
		"emotions": ["grief"], "difficulty": "intermediate",
		"quotability": 8, "actionability": 4, "comfort": 6}`
	pt := NewProviderTagger(stubGenerator{text: raw})

	p, err := pt.Tag(context.Background(), types.Passage{ID: "x", Text: "some passage"})
	require.NoError(t, err)

	assert.Equal(t, []string{"memento_mori"}, p.Tags.PrimaryConcepts)
	assert.Equal(t, []string{"grief"}, p.Tags.Situations)
	assert.Equal(t, types.Intermediate, p.JourneyContext.Difficulty)
	assert.Equal(t, 8, p.Metadata.Quotability)
	assert.Contains(t, p.HealthContext.TimesOfDay, types.Night)
}

func TestProviderTagStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"primary_concepts\": [\"amor_fati\"], \"situations\": [\"failure\"], \"emotions\": [\"hope\"], \"difficulty\": \"beginner\", \"quotability\": 7, \"actionability\": 5, \"comfort\": 7}\n```"
	pt := NewProviderTagger(stubGenerator{text: raw})

	p, err := pt.Tag(context.Background(), types.Passage{ID: "x", Text: "some passage"})
	require.NoError(t, err)
	assert.Equal(t, []string{"amor_fati"}, p.Tags.PrimaryConcepts)
}

func TestProviderTagRejectsUnknownTags(t *testing.T) {
	raw := `{"primary_concepts": ["made_up_concept", "memento_mori"],
		"virtues": ["patience"], "situations": ["anxiety"],
		"emotions": ["anxiety"], "difficulty": "unknown",
		"quotability": 5, "actionability": 5, "comfort": 5}`
	pt := NewProviderTagger(stubGenerator{text: raw})

	p, err := pt.Tag(context.Background(), types.Passage{ID: "x", Text: "some passage"})
	require.NoError(t, err)

	assert.Equal(t, []string{"memento_mori"}, p.Tags.PrimaryConcepts)
	assert.Empty(t, p.Tags.Virtues)
	assert.Equal(t, types.Beginner, p.JourneyContext.Difficulty)
}

func TestProviderTagDeduplicatesRepeats(t *testing.T) {
	raw := `{"primary_concepts": ["memento_mori", "memento_mori"],
		"situations": ["grief"],
		"emotions": ["grief", "grief", "joy"], "difficulty": "beginner",
		"quotability": 5, "actionability": 5, "comfort": 5}`
	pt := NewProviderTagger(stubGenerator{text: raw})

	p, err := pt.Tag(context.Background(), types.Passage{ID: "x", Text: "some passage"})
	require.NoError(t, err)

	assert.Equal(t, []string{"memento_mori"}, p.Tags.PrimaryConcepts)
	assert.Equal(t, []string{"grief", "joy"}, p.Tags.Emotions)
}

func TestProviderTagToleratesBareString(t *testing.T) {
	raw := `{"primary_concepts": "present_moment", "situations": ["overwhelm"],
		"emotions": ["peace"], "difficulty": "beginner",
		"quotability": 6, "actionability": 6, "comfort": 8}`
	pt := NewProviderTagger(stubGenerator{text: raw})

	p, err := pt.Tag(context.Background(), types.Passage{ID: "x", Text: "some passage"})
	require.NoError(t, err)
	assert.Equal(t, []string{"present_moment"}, p.Tags.PrimaryConcepts)
}

func TestProviderTagFailureKeepsDefaults(t *testing.T) {
	pt := NewProviderTagger(stubGenerator{err: errors.New("provider down")})

	p, err := pt.Tag(context.Background(), types.Passage{ID: "x", Text: "some passage"})
	require.Error(t, err)

	assert.Empty(t, p.Tags.PrimaryConcepts)
	assert.Equal(t, []types.StressLevel{types.StressNormal}, p.HealthContext.StressLevels)
	assert.NotEmpty(t, p.HealthContext.TimesOfDay)
}

func TestProviderTagParseFailureKeepsDefaults(t *testing.T) {
	pt := NewProviderTagger(stubGenerator{text: "not json at all"})

	p, err := pt.Tag(context.Background(), types.Passage{ID: "x", Text: "some passage"})
	require.Error(t, err)
	assert.NotEmpty(t, p.HealthContext.StressLevels)
}
