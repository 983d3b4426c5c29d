// Package tagger derives semantic tags, health/journey context and quality
// scores for passages. Two interchangeable strategies produce the same
// schema: RuleTagger (deterministic keyword rules, offline) and
// ProviderTagger (external text-understanding provider).
package tagger

import (
	"context"
	"regexp"
	"strings"

	"stoickb/types"
)

// Tagger assigns tags, context and scores to a passage. Implementations
// replace the tag fields wholesale, never partially.
type Tagger interface {
	Tag(ctx context.Context, p types.Passage) (types.Passage, error)
}

// RuleTagger tags passages with keyword rules and heuristic scores. It is
// deterministic and makes no external calls.
type RuleTagger struct{}

func NewRuleTagger() *RuleTagger {
	return &RuleTagger{}
}

var advicePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bdo not\b`),
	regexp.MustCompile(`\bnever\b`),
	regexp.MustCompile(`\balways\b`),
	regexp.MustCompile(`\bmust\b`),
	regexp.MustCompile(`\bshould\b`),
	regexp.MustCompile(`\bremember\b`),
	regexp.MustCompile(`\blet\b`),
	regexp.MustCompile(`\bbegin\b`),
}

func (t *RuleTagger) Tag(_ context.Context, p types.Passage) (types.Passage, error) {
	if isBoilerplate(p.Text) {
		return p, nil
	}

	lower := strings.ToLower(p.Text)

	p.Tags = types.PassageTags{
		PrimaryConcepts: matchKeywords(lower, conceptKeywords, 3),
		Virtues:         matchKeywords(lower, virtueKeywords, 2),
		Practices:       matchKeywords(lower, practiceKeywords, 2),
		Situations:      matchKeywords(lower, situationKeywords, 3),
		Emotions:        matchKeywords(lower, emotionKeywords, 3),
	}

	p.Metadata.Quotability = assessQuotability(p.Text)
	p.Metadata.Actionability = assessActionability(lower)
	p.Metadata.Comfort = assessComfort(lower)

	p.JourneyContext = journeyFor(assessDifficulty(lower))
	p.HealthContext = MapHealthContext(p.Tags)

	return p, nil
}

// isBoilerplate recognizes e-text licensing headers and footers that carry
// no philosophical content.
func isBoilerplate(text string) bool {
	return strings.Contains(text, "Project Gutenberg") ||
		strings.Contains(text, "START OF") ||
		strings.Contains(text, "END OF")
}

// matchKeywords returns the categories whose keywords appear in the text,
// at most limit of them, in table order.
func matchKeywords(lower string, rules []keywordRule, limit int) []string {
	var matches []string
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				matches = append(matches, rule.tag)
				break
			}
		}
		if len(matches) == limit {
			break
		}
	}
	return matches
}

// assessQuotability scores how well the passage stands alone as a quote.
// Neutral baseline, adjusted up for short passages, imperative phrasing and
// questions, down for very long passages.
func assessQuotability(text string) int {
	score := 5

	wordCount := len(strings.Fields(text))
	switch {
	case wordCount < 50:
		score += 2
	case wordCount < 100:
		score++
	case wordCount > 200:
		score -= 2
	}

	lower := strings.ToLower(text)
	for _, pattern := range advicePatterns {
		if pattern.MatchString(lower) {
			score++
			break
		}
	}

	if strings.Contains(text, "?") {
		score++
	}

	return clampScore(score)
}

// assessComfort scores soothing (10) versus challenging (1) language.
func assessComfort(lower string) int {
	score := 5
	for _, w := range comfortWords {
		if strings.Contains(lower, w) {
			score++
		}
	}
	for _, w := range challengeWords {
		if strings.Contains(lower, w) {
			score--
		}
	}
	return clampScore(score)
}

// assessActionability scores how practical the advice is, one point per
// matched practical-action phrase.
func assessActionability(lower string) int {
	score := 5
	for _, w := range actionWords {
		if strings.Contains(lower, w) {
			score++
		}
	}
	return clampScore(score)
}

// assessDifficulty classifies the passage by counting advanced versus
// intermediate vocabulary markers.
func assessDifficulty(lower string) types.Difficulty {
	advanced := 0
	for _, term := range advancedTerms {
		if strings.Contains(lower, term) {
			advanced++
		}
	}
	intermediate := 0
	for _, term := range intermediateTerms {
		if strings.Contains(lower, term) {
			intermediate++
		}
	}

	switch {
	case advanced >= 2:
		return types.Advanced
	case intermediate >= 2 || advanced >= 1:
		return types.Intermediate
	default:
		return types.Beginner
	}
}

func journeyFor(d types.Difficulty) types.JourneyContext {
	stage := types.StageBuildingHabits
	if d == types.Beginner {
		stage = types.StageNewcomer
	}
	return types.JourneyContext{
		Stages:     []types.JourneyStage{stage},
		Difficulty: d,
	}
}

func clampScore(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}
