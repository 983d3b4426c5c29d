package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stoickb/store"
	"stoickb/types"
)

func save(t *testing.T, s *Store, id string, philosopher types.PhilosopherID, vec []float32) {
	t.Helper()
	err := s.SavePassage(context.Background(), types.Passage{
		ID:        id,
		Text:      "text " + id,
		Source:    types.SourceInfo{Philosopher: philosopher, Work: types.Meditations},
		Embedding: vec,
	}, uuid.New())
	require.NoError(t, err)
}

func TestSearchOrdersBySimilarity(t *testing.T) {
	s := New()
	save(t, s, "far", types.MarcusAurelius, []float32{0, 1})
	save(t, s, "near", types.MarcusAurelius, []float32{1, 0})
	save(t, s, "mid", types.MarcusAurelius, []float32{1, 1})

	matches, err := s.Search(context.Background(), []float32{1, 0}, 10, nil)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "near", matches[0].Passage.ID)
	assert.Equal(t, "mid", matches[1].Passage.ID)
	assert.Equal(t, "far", matches[2].Passage.ID)
	assert.InDelta(t, 1.0, matches[0].Similarity, 1e-6)
}

func TestSearchTopK(t *testing.T) {
	s := New()
	save(t, s, "a", types.MarcusAurelius, []float32{1, 0})
	save(t, s, "b", types.MarcusAurelius, []float32{1, 0.1})
	save(t, s, "c", types.MarcusAurelius, []float32{1, 0.2})

	matches, err := s.Search(context.Background(), []float32{1, 0}, 2, nil)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestSearchPhilosopherFilter(t *testing.T) {
	s := New()
	save(t, s, "m", types.MarcusAurelius, []float32{1, 0})
	save(t, s, "s", types.Seneca, []float32{1, 0})

	matches, err := s.Search(context.Background(), []float32{1, 0}, 10, &store.Filter{Philosopher: types.Seneca})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "s", matches[0].Passage.ID)
}

func TestSearchEmptyVector(t *testing.T) {
	s := New()
	_, err := s.Search(context.Background(), nil, 10, nil)
	assert.Error(t, err)
}

func TestSavePassageUpserts(t *testing.T) {
	s := New()
	save(t, s, "a", types.MarcusAurelius, []float32{1, 0})
	save(t, s, "a", types.MarcusAurelius, []float32{0, 1})

	matches, err := s.Search(context.Background(), []float32{0, 1}, 10, nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.InDelta(t, 1.0, matches[0].Similarity, 1e-6)
}
