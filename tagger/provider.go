package tagger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"stoickb/model"
	"stoickb/types"
)

// Passage text is truncated to this many tokens before prompting.
const promptTokenBudget = 400

const taggingPrompt = `You are an expert in Stoic philosophy. Analyze this passage and return JSON tags.

Available tags:
- primary_concepts: %s
- virtues: %s
- practices: %s
- situations: %s
- emotions: %s

Passage (%s, %s):
"%s"

Return ONLY valid JSON:
{
  "primary_concepts": ["1-3 concepts"],
  "virtues": ["0-2 virtues"],
  "practices": ["0-2 practices"],
  "situations": ["1-3 situations"],
  "emotions": ["1-3 emotions"],
  "difficulty": "beginner/intermediate/advanced",
  "quotability": 1-10,
  "actionability": 1-10,
  "comfort": 1-10
}`

// ProviderTagger delegates tagging to an external text-understanding
// provider. The response must parse into the same schema the rule-based
// tagger produces; on provider or parse failure the passage keeps default
// tags and the error is recorded, never raised to the batch.
type ProviderTagger struct {
	gen    model.Generator
	logger *slog.Logger
}

func NewProviderTagger(gen model.Generator) *ProviderTagger {
	return &ProviderTagger{
		gen:    gen,
		logger: slog.Default(),
	}
}

// tagResult is the provider's structured response. stringList tolerates a
// bare string where a list is expected.
type tagResult struct {
	PrimaryConcepts stringList `json:"primary_concepts"`
	Virtues         stringList `json:"virtues"`
	Practices       stringList `json:"practices"`
	Situations      stringList `json:"situations"`
	Emotions        stringList `json:"emotions"`
	Difficulty      string     `json:"difficulty"`
	Quotability     int        `json:"quotability"`
	Actionability   int        `json:"actionability"`
	Comfort         int        `json:"comfort"`
}

type stringList []string

func (s *stringList) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*s = []string{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*s = many
	return nil
}

func (t *ProviderTagger) Tag(ctx context.Context, p types.Passage) (types.Passage, error) {
	if isBoilerplate(p.Text) {
		return p, nil
	}

	raw, err := t.gen.Complete(ctx, t.buildPrompt(p))
	if err != nil {
		t.logger.Warn("provider tagging failed", "passage", p.ID, "error", err)
		return withDefaults(p), err
	}

	var result tagResult
	if err := json.Unmarshal([]byte(stripFences(raw)), &result); err != nil {
		t.logger.Warn("provider response did not parse", "passage", p.ID, "error", err)
		return withDefaults(p), err
	}

	p.Tags = types.PassageTags{
		PrimaryConcepts: keepValid(result.PrimaryConcepts, types.IsConcept, 3),
		Virtues:         keepValid(result.Virtues, types.IsVirtue, 2),
		Practices:       keepValid(result.Practices, types.IsPractice, 2),
		Situations:      keepValid(result.Situations, types.IsSituation, 3),
		Emotions:        keepValid(result.Emotions, types.IsEmotion, 3),
	}

	p.Metadata.Quotability = clampScore(orDefault(result.Quotability))
	p.Metadata.Actionability = clampScore(orDefault(result.Actionability))
	p.Metadata.Comfort = clampScore(orDefault(result.Comfort))

	difficulty := types.Difficulty(result.Difficulty)
	if !difficulty.Valid() {
		difficulty = types.Beginner
	}
	p.JourneyContext = journeyFor(difficulty)
	p.HealthContext = MapHealthContext(p.Tags)

	return p, nil
}

func (t *ProviderTagger) buildPrompt(p types.Passage) string {
	source := []string{string(p.Source.Work)}
	if p.Source.Book > 0 {
		source = append(source, fmt.Sprintf("Book %d", p.Source.Book))
	}
	if p.Source.Chapter > 0 {
		source = append(source, fmt.Sprintf("Chapter %d", p.Source.Chapter))
	}
	if p.Source.Letter > 0 {
		source = append(source, fmt.Sprintf("Letter %d", p.Source.Letter))
	}

	return fmt.Sprintf(taggingPrompt,
		strings.Join(types.PrimaryConcepts, ", "),
		strings.Join(types.Virtues, ", "),
		strings.Join(types.Practices, ", "),
		strings.Join(types.Situations, ", "),
		strings.Join(types.Emotions, ", "),
		types.Title(string(p.Source.Philosopher)),
		strings.Join(source, " > "),
		model.TruncateTokens(p.Text, promptTokenBudget),
	)
}

// stripFences removes a markdown code fence wrapper if the provider added
// one around the JSON.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	parts := strings.SplitN(raw, "```", 3)
	if len(parts) < 2 {
		return raw
	}
	body := parts[1]
	body = strings.TrimPrefix(body, "json")
	return strings.TrimSpace(body)
}

// keepValid filters a provider-returned list down to known taxonomy values,
// dropping repeats so a duplicate never eats a cap slot.
func keepValid(values []string, valid func(string) bool, limit int) []string {
	var out []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if !valid(v) {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}

// withDefaults leaves tags empty but still runs the shared context mapping,
// so the stress and time fields get their defaults.
func withDefaults(p types.Passage) types.Passage {
	p.HealthContext = MapHealthContext(p.Tags)
	p.JourneyContext = journeyFor(types.Beginner)
	return p
}

func orDefault(score int) int {
	if score == 0 {
		return 5
	}
	return score
}
