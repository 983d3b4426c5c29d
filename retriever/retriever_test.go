package retriever

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stoickb/store/memory"
	"stoickb/types"
)

type stubEmbedder struct {
	vec []float32
	err error
}

func (s stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return s.vec, s.err
}

func (s stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = s.vec
	}
	return out, s.err
}

func storedPassage(id string, philosopher types.PhilosopherID, stress []types.StressLevel, vec []float32) types.Passage {
	return types.Passage{
		ID:   id,
		Text: "passage " + id,
		Source: types.SourceInfo{
			Philosopher: philosopher,
			Work:        types.Meditations,
		},
		HealthContext: types.HealthContext{
			StressLevels: stress,
			TimesOfDay:   []types.TimeOfDay{types.Morning},
		},
		Embedding: vec,
	}
}

func seed(t *testing.T, passages ...types.Passage) *memory.Store {
	t.Helper()
	s := memory.New()
	for _, p := range passages {
		require.NoError(t, s.SavePassage(context.Background(), p, uuid.New()))
	}
	return s
}

func TestBuildContextHighNight(t *testing.T) {
	got := BuildContext(types.HealthSnapshot{
		StressLevel: types.StressHigh,
		TimeOfDay:   types.Night,
	})

	assert.Equal(t, "very anxious and need calming guidance, ending my day, preparing to rest", got)
}

func TestBuildContextActive(t *testing.T) {
	got := BuildContext(types.HealthSnapshot{
		StressLevel: types.StressLow,
		TimeOfDay:   types.Morning,
		IsActive:    true,
	})

	assert.Equal(t, "feeling calm and peaceful, starting my day, during exercise or activity", got)
}

func TestBuildContextEmptySnapshot(t *testing.T) {
	assert.Equal(t, "normal day, looking for wisdom", BuildContext(types.HealthSnapshot{}))
}

func TestRetrieveBestMatch(t *testing.T) {
	s := seed(t,
		storedPassage("meditations_aaa", types.MarcusAurelius, []types.StressLevel{types.StressNormal}, []float32{1, 0}),
		storedPassage("meditations_bbb", types.MarcusAurelius, []types.StressLevel{types.StressNormal}, []float32{0, 1}),
	)
	r := New(stubEmbedder{vec: []float32{1, 0}}, s)

	resp, err := r.Retrieve(context.Background(), types.QuoteRequest{})
	require.NoError(t, err)

	assert.Equal(t, "meditations_aaa", resp.ID)
	assert.Equal(t, "Marcus Aurelius", resp.Philosopher)
	assert.Equal(t, "Meditations", resp.Work)
	assert.InDelta(t, 1.0, resp.Similarity, 1e-6)
}

func TestRetrieveEmptyIndexNotFound(t *testing.T) {
	r := New(stubEmbedder{vec: []float32{1, 0}}, memory.New())

	_, err := r.Retrieve(context.Background(), types.QuoteRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRetrievePhilosopherFilterStrict(t *testing.T) {
	s := seed(t,
		storedPassage("meditations_aaa", types.MarcusAurelius, []types.StressLevel{types.StressNormal}, []float32{1, 0}),
	)
	r := New(stubEmbedder{vec: []float32{1, 0}}, s)

	_, err := r.Retrieve(context.Background(), types.QuoteRequest{Philosopher: types.Seneca})
	assert.ErrorIs(t, err, ErrNotFound)

	resp, err := r.Retrieve(context.Background(), types.QuoteRequest{Philosopher: types.MarcusAurelius})
	require.NoError(t, err)
	assert.Equal(t, "meditations_aaa", resp.ID)
}

func TestRetrieveStressFilterKeepsMatches(t *testing.T) {
	s := seed(t,
		storedPassage("meditations_low", types.MarcusAurelius, []types.StressLevel{types.StressLow}, []float32{1, 0}),
		storedPassage("meditations_high", types.MarcusAurelius, []types.StressLevel{types.StressHigh}, []float32{0.9, 0.1}),
	)
	r := New(stubEmbedder{vec: []float32{1, 0}}, s)

	resp, err := r.Retrieve(context.Background(), types.QuoteRequest{
		Context: types.HealthSnapshot{StressLevel: types.StressHigh},
	})
	require.NoError(t, err)

	assert.Equal(t, "meditations_high", resp.ID)
}

func TestRetrieveStressFilterFallback(t *testing.T) {
	// Only low-stress passages stored; a high-stress request must still get
	// an answer from the pre-filter set, never NotFound.
	s := seed(t,
		storedPassage("meditations_low", types.MarcusAurelius, []types.StressLevel{types.StressLow}, []float32{1, 0}),
	)
	r := New(stubEmbedder{vec: []float32{1, 0}}, s)

	resp, err := r.Retrieve(context.Background(), types.QuoteRequest{
		Context: types.HealthSnapshot{StressLevel: types.StressHigh},
	})
	require.NoError(t, err)
	assert.Equal(t, "meditations_low", resp.ID)
}

func TestRetrieveNormalTaggedPassesAnyLevel(t *testing.T) {
	s := seed(t,
		storedPassage("meditations_norm", types.MarcusAurelius, []types.StressLevel{types.StressNormal}, []float32{1, 0}),
	)
	r := New(stubEmbedder{vec: []float32{1, 0}}, s)

	resp, err := r.Retrieve(context.Background(), types.QuoteRequest{
		Context: types.HealthSnapshot{StressLevel: types.StressElevated},
	})
	require.NoError(t, err)
	assert.Equal(t, "meditations_norm", resp.ID)
}

func TestRetrieveEmbedFailure(t *testing.T) {
	r := New(stubEmbedder{err: errors.New("provider down")}, memory.New())

	_, err := r.Retrieve(context.Background(), types.QuoteRequest{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRetrieveExplicitQueryBypassesContext(t *testing.T) {
	s := seed(t,
		storedPassage("meditations_aaa", types.MarcusAurelius, []types.StressLevel{types.StressNormal}, []float32{1, 0}),
	)
	r := New(stubEmbedder{vec: []float32{1, 0}}, s)

	resp, err := r.Retrieve(context.Background(), types.QuoteRequest{Query: "on dealing with anger"})
	require.NoError(t, err)
	assert.Equal(t, "meditations_aaa", resp.ID)
}
