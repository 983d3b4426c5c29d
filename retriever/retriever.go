// Package retriever turns a health snapshot into a ranked passage pick:
// synthesize a context description, embed it, search the store, then narrow
// by philosopher and stress fit.
package retriever

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"stoickb/model"
	"stoickb/store"
	"stoickb/types"
)

// ErrNotFound reports that no passage survived search and filtering.
var ErrNotFound = errors.New("no matching passage found")

const (
	searchK = 10
	topN    = 5
)

var stressPhrases = map[types.StressLevel]string{
	types.StressHigh:     "very anxious and need calming guidance",
	types.StressLow:      "feeling calm and peaceful",
	types.StressNormal:   "normal day, looking for wisdom",
	types.StressElevated: "feeling stressed and need perspective",
}

var timePhrases = map[types.TimeOfDay]string{
	types.Morning: "starting my day",
	types.Midday:  "middle of my day",
	types.Evening: "reflecting on my day",
	types.Night:   "ending my day, preparing to rest",
}

const activePhrase = "during exercise or activity"

type Retriever struct {
	embedder model.Embedder
	searcher store.Searcher
	logger   *slog.Logger
}

func New(embedder model.Embedder, searcher store.Searcher) *Retriever {
	return &Retriever{
		embedder: embedder,
		searcher: searcher,
		logger:   slog.Default(),
	}
}

// BuildContext synthesizes the query text from the snapshot. Phrase order is
// fixed: stress, time, activity.
func BuildContext(snap types.HealthSnapshot) string {
	var parts []string
	if phrase, ok := stressPhrases[snap.StressLevel]; ok {
		parts = append(parts, phrase)
	}
	if phrase, ok := timePhrases[snap.TimeOfDay]; ok {
		parts = append(parts, phrase)
	}
	if snap.IsActive {
		parts = append(parts, activePhrase)
	}
	if len(parts) == 0 {
		return stressPhrases[types.StressNormal]
	}
	return strings.Join(parts, ", ")
}

// Retrieve returns the single best passage for the request, or ErrNotFound.
// An explicit Query bypasses context synthesis.
func (r *Retriever) Retrieve(ctx context.Context, req types.QuoteRequest) (types.QuoteResponse, error) {
	query := req.Query
	if query == "" {
		query = BuildContext(req.Context)
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return types.QuoteResponse{}, fmt.Errorf("embed query: %w", err)
	}

	matches, err := r.searcher.Search(ctx, vector, searchK, nil)
	if err != nil {
		return types.QuoteResponse{}, fmt.Errorf("search passages: %w", err)
	}

	matches = filterPhilosopher(matches, req.Philosopher)
	matches = filterStress(matches, req.Context.StressLevel)

	if len(matches) == 0 {
		r.logger.Debug("retrieval found nothing", "query", query)
		return types.QuoteResponse{}, ErrNotFound
	}

	if len(matches) > topN {
		matches = matches[:topN]
	}
	best := matches[0]

	return types.QuoteResponse{
		ID:          best.Passage.ID,
		Text:        best.Passage.Text,
		Philosopher: types.Title(string(best.Passage.Source.Philosopher)),
		Work:        types.Title(string(best.Passage.Source.Work)),
		Tags:        best.Passage.Tags,
		Similarity:  best.Similarity,
	}, nil
}

// filterPhilosopher is strict: when a philosopher is requested and no match
// survives, the result is empty rather than another philosopher's words.
func filterPhilosopher(matches []store.Match, id types.PhilosopherID) []store.Match {
	if id == "" {
		return matches
	}
	var out []store.Match
	for _, m := range matches {
		if m.Passage.Source.Philosopher == id {
			out = append(out, m)
		}
	}
	return out
}

// filterStress keeps passages tagged for the caller's stress level or for
// "normal". When nothing fits, the pre-filter set stands: similarity order
// already favors relevant passages, and an off-level quote beats none.
func filterStress(matches []store.Match, level types.StressLevel) []store.Match {
	if level == "" || len(matches) == 0 {
		return matches
	}
	var out []store.Match
	for _, m := range matches {
		if suitsStress(m.Passage.HealthContext.StressLevels, level) {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return matches
	}
	return out
}

func suitsStress(levels []types.StressLevel, level types.StressLevel) bool {
	for _, l := range levels {
		if l == level || l == types.StressNormal {
			return true
		}
	}
	return false
}
