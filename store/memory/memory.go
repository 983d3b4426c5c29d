// Package memory is an in-process implementation of the store contract.
// Search is a brute-force cosine scan, fine for test fixtures and small
// local corpora.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"stoickb/store"
	"stoickb/types"
)

type entry struct {
	passage types.Passage
	runID   uuid.UUID
}

type Store struct {
	mu       sync.RWMutex
	works    map[types.WorkID]types.Work
	passages map[string]entry
	order    []string
}

var _ store.Storer = (*Store)(nil)

func New() *Store {
	return &Store{
		works:    make(map[types.WorkID]types.Work),
		passages: make(map[string]entry),
	}
}

func (s *Store) Init(_ context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) SaveWork(_ context.Context, w types.Work) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.works[w.ID] = w
	return nil
}

func (s *Store) SavePassage(_ context.Context, p types.Passage, runID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.passages[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.passages[p.ID] = entry{passage: p, runID: runID}
	return nil
}

func (s *Store) Search(_ context.Context, vector []float32, topK int, filter *store.Filter) ([]store.Match, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("empty query vector")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []store.Match
	for _, id := range s.order {
		e := s.passages[id]
		if len(e.passage.Embedding) != len(vector) {
			continue
		}
		if filter != nil && filter.Philosopher != "" && e.passage.Source.Philosopher != filter.Philosopher {
			continue
		}
		matches = append(matches, store.Match{
			Passage:    e.passage,
			Similarity: cosine(vector, e.passage.Embedding),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
