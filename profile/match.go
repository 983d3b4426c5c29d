package profile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"stoickb/model"
	"stoickb/types"
)

const reasonPrompt = `Based on this user's answers:
%s

And this philosopher:
- Name: %s
- Biography: %s
- Core themes: %s

Write a brief, personal explanation (2-3 sentences) of why this philosopher
is a good match for this user. Be warm but not cheesy. Focus on shared
experiences or values.`

// Matcher scores catalog profiles against onboarding answers. The generator
// is optional; without one the templated fallback reason is always used.
type Matcher struct {
	catalog *Catalog
	gen     model.Generator
	logger  *slog.Logger
}

func NewMatcher(catalog *Catalog, gen model.Generator) *Matcher {
	return &Matcher{
		catalog: catalog,
		gen:     gen,
		logger:  slog.Default(),
	}
}

// Score computes the profile's fit in [0,1]: each answer that shares a word
// with a criterion phrase adds one point, normalized by the number of
// criterion phrases. A profile with no criteria scores zero.
func Score(p Profile, answers []types.OnboardingAnswer) float64 {
	if len(p.MatchingCriteria) == 0 {
		return 0
	}

	score := 0.0
	for _, criterion := range p.MatchingCriteria {
		words := strings.Fields(strings.ToLower(criterion))
		for _, a := range answers {
			if containsAny(strings.ToLower(a.Answer), words) {
				score++
			}
		}
	}

	score /= float64(len(p.MatchingCriteria))
	return min(score, 1.0)
}

func containsAny(answer string, words []string) bool {
	for _, w := range words {
		if strings.Contains(answer, w) {
			return true
		}
	}
	return false
}

// Match selects the best-scoring profile. Ties resolve to the profile that
// appears first in the catalog, so repeated runs agree.
func (m *Matcher) Match(ctx context.Context, req types.MatchRequest) (types.MatchResponse, error) {
	if m.catalog == nil || len(m.catalog.Profiles) == 0 {
		return types.MatchResponse{}, fmt.Errorf("profile catalog is empty")
	}

	best := m.catalog.Profiles[0]
	bestScore := Score(best, req.Answers)
	for _, p := range m.catalog.Profiles[1:] {
		if s := Score(p, req.Answers); s > bestScore {
			best, bestScore = p, s
		}
	}

	m.logger.Debug("profile matched", "user", req.UserID, "profile", best.ID, "score", bestScore)

	return types.MatchResponse{
		PhilosopherID:   best.ID,
		PhilosopherName: best.Name,
		MatchReason:     m.reason(ctx, best, req.Answers),
		Confidence:      bestScore,
	}, nil
}

// reason asks the text-generation provider for a justification; any provider
// failure degrades to the templated fallback, never to a match error.
func (m *Matcher) reason(ctx context.Context, p Profile, answers []types.OnboardingAnswer) string {
	if m.gen != nil {
		var lines []string
		for _, a := range answers {
			lines = append(lines, fmt.Sprintf("- %s: %s", a.QuestionID, a.Answer))
		}
		prompt := fmt.Sprintf(reasonPrompt,
			strings.Join(lines, "\n"),
			p.Name, p.Biography, strings.Join(p.CoreThemes, ", "),
		)

		text, err := m.gen.Complete(ctx, prompt)
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
		if err != nil {
			m.logger.Warn("match reason generation failed", "profile", p.ID, "error", err)
		}
	}

	return fmt.Sprintf("Based on your experiences and values, %s's teachings resonate with your journey.", types.Title(p.ID))
}
