package profile

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

func answers(texts ...string) []types.OnboardingAnswer {
	out := make([]types.OnboardingAnswer, len(texts))
	for i, text := range texts {
		out[i] = types.OnboardingAnswer{QuestionID: "q", Answer: text}
	}
	return out
}

func TestScoreZeroCriteria(t *testing.T) {
	p := Profile{ID: "empty", Name: "Empty"}

	assert.Zero(t, Score(p, answers("I value duty and justice above all")))
}

func TestScoreClampedToOne(t *testing.T) {
	p := Profile{ID: "p", Name: "P", MatchingCriteria: []string{"duty"}}

	score := Score(p, answers("duty", "duty again", "more duty"))
	assert.Equal(t, 1.0, score)
}

func TestScoreNormalizedByCriteria(t *testing.T) {
	p := Profile{ID: "p", Name: "P", MatchingCriteria: []string{"duty service", "solitude writing"}}

	score := Score(p, answers("I value duty"))
	assert.InDelta(t, 0.5, score, 1e-9)
}

func TestLeadershipAnswersFavorLeadershipProfile(t *testing.T) {
	leader := Profile{ID: "leader", Name: "Leader", MatchingCriteria: []string{"justice duty others", "leadership team command"}}
	hermit := Profile{ID: "hermit", Name: "Hermit", MatchingCriteria: []string{"solitude quiet retreat", "writing reading letters"}}

	ans := answers("I lead a team and value duty to others")

	assert.Greater(t, Score(leader, ans), Score(hermit, ans))
}

func TestMatchTieBreakIsStable(t *testing.T) {
	catalog := &Catalog{Profiles: []Profile{
		{ID: "first", Name: "First", MatchingCriteria: []string{"duty"}},
		{ID: "second", Name: "Second", MatchingCriteria: []string{"duty"}},
	}}
	m := NewMatcher(catalog, nil)
	req := types.MatchRequest{UserID: "u1", Answers: answers("duty calls")}

	for range 10 {
		resp, err := m.Match(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "first", resp.PhilosopherID)
	}
}

func TestMatchEmptyCatalog(t *testing.T) {
	m := NewMatcher(&Catalog{}, nil)

	_, err := m.Match(context.Background(), types.MatchRequest{UserID: "u1", Answers: answers("duty")})
	assert.Error(t, err)
}

func TestMatchConfidenceIsScore(t *testing.T) {
	catalog := &Catalog{Profiles: []Profile{
		{ID: "p", Name: "P", MatchingCriteria: []string{"duty", "honor"}},
	}}
	m := NewMatcher(catalog, nil)

	resp, err := m.Match(context.Background(), types.MatchRequest{UserID: "u1", Answers: answers("duty calls")})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, resp.Confidence, 1e-9)
}

func TestMatchReasonFromGenerator(t *testing.T) {
	catalog := &Catalog{Profiles: []Profile{
		{ID: "seneca", Name: "Seneca", MatchingCriteria: []string{"writing"}},
	}}
	m := NewMatcher(catalog, stubGenerator{text: "You and Seneca both write to think."})

	resp, err := m.Match(context.Background(), types.MatchRequest{UserID: "u1", Answers: answers("I love writing")})
	require.NoError(t, err)
	assert.Equal(t, "You and Seneca both write to think.", resp.MatchReason)
}

func TestMatchReasonFallbackOnProviderError(t *testing.T) {
	catalog := &Catalog{Profiles: []Profile{
		{ID: "marcus_aurelius", Name: "Marcus Aurelius", MatchingCriteria: []string{"duty"}},
	}}
	m := NewMatcher(catalog, stubGenerator{err: errors.New("provider down")})

	resp, err := m.Match(context.Background(), types.MatchRequest{UserID: "u1", Answers: answers("duty")})
	require.NoError(t, err)
	assert.Equal(t, "Based on your experiences and values, Marcus Aurelius's teachings resonate with your journey.", resp.MatchReason)
}

func TestLoadCatalogDefault(t *testing.T) {
	catalog, err := LoadCatalog("")
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(catalog.Profiles), 5)
	assert.Equal(t, "marcus_aurelius", catalog.Profiles[0].ID)

	p, ok := catalog.Find("epictetus")
	require.True(t, ok)
	assert.NotEmpty(t, p.MatchingCriteria)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog("/does/not/exist.json")
	assert.Error(t, err)
}
