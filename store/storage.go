// Package store persists tagged passages and serves similarity search over
// their embeddings. Ingestion writes and retrieval reads never race: loading
// is an operator-triggered batch step, never concurrent with serving.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"stoickb/types"
)

// Match is one ranked search hit. Passage carries the stored attributes the
// retrieval filter chain needs; the embedding itself is not read back.
type Match struct {
	Passage    types.Passage
	Similarity float64
}

// Filter restricts a similarity search by stored attributes.
type Filter struct {
	Philosopher types.PhilosopherID
}

// Searcher is the read path: ranked-by-similarity top-K search with an
// optional attribute filter.
type Searcher interface {
	Search(ctx context.Context, vector []float32, topK int, filter *Filter) ([]Match, error)
}

// Storer is the full contract the ingest pipeline needs.
type Storer interface {
	Searcher
	SaveWork(ctx context.Context, w types.Work) error
	SavePassage(ctx context.Context, p types.Passage, runID uuid.UUID) error
	Init(ctx context.Context) error
	Close() error
}

type PostgresStore struct {
	pool      *pgxpool.Pool
	dimension int
	logger    *slog.Logger
}

func NewPostgresStore(ctx context.Context, connStr string, dimension int) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{
		pool:      pool,
		dimension: dimension,
		logger:    slog.Default(),
	}, nil
}

func (s *PostgresStore) Init(ctx context.Context) error {
	query := fmt.Sprintf(`
	CREATE EXTENSION IF NOT EXISTS vector;

	CREATE TABLE IF NOT EXISTS works (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		philosopher_id TEXT NOT NULL,
		translator TEXT,
		translation_year INT,
		source_url TEXT,
		license TEXT
	);

	CREATE TABLE IF NOT EXISTS passages (
		id TEXT PRIMARY KEY,
		run_id UUID,
		philosopher_id TEXT NOT NULL,
		work_id TEXT NOT NULL,
		book INT DEFAULT 0,
		chapter INT DEFAULT 0,
		letter INT DEFAULT 0,
		section INT DEFAULT 0,
		text TEXT NOT NULL,
		text_normalized TEXT NOT NULL,
		concepts TEXT[],
		virtues TEXT[],
		practices TEXT[],
		situations TEXT[],
		emotions TEXT[],
		stress_levels TEXT[],
		activity_states TEXT[],
		times_of_day TEXT[],
		stages TEXT[],
		difficulty TEXT,
		quotability INT,
		actionability INT,
		comfort INT,
		word_count INT,
		character_count INT,
		embedding vector(%d)
	);

	CREATE INDEX IF NOT EXISTS idx_passages_embedding ON passages USING ivfflat (embedding vector_cosine_ops)
	WITH (lists = 100);

	CREATE INDEX IF NOT EXISTS idx_passages_philosopher ON passages(philosopher_id);
	CREATE INDEX IF NOT EXISTS idx_passages_work ON passages(work_id);
	`, s.dimension)
	_, err := s.pool.Exec(ctx, query)
	return err
}

func (s *PostgresStore) SaveWork(ctx context.Context, w types.Work) error {
	query := `INSERT INTO works (id, title, philosopher_id, translator, translation_year, source_url, license)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			philosopher_id = EXCLUDED.philosopher_id,
			translator = EXCLUDED.translator,
			translation_year = EXCLUDED.translation_year,
			source_url = EXCLUDED.source_url,
			license = EXCLUDED.license
		`
	_, err := s.pool.Exec(ctx, query,
		w.ID, w.Title, w.Philosopher,
		w.Translation.Translator, w.Translation.Year, w.Translation.SourceURL, w.Translation.License,
	)
	return err
}

// SavePassage upserts the whole passage. Re-tagging the same passage
// replaces the tag and context fields wholesale, never partially.
func (s *PostgresStore) SavePassage(ctx context.Context, p types.Passage, runID uuid.UUID) error {
	query := `
	INSERT INTO passages (
		id, run_id, philosopher_id, work_id, book, chapter, letter, section,
		text, text_normalized,
		concepts, virtues, practices, situations, emotions,
		stress_levels, activity_states, times_of_day, stages, difficulty,
		quotability, actionability, comfort, word_count, character_count,
		embedding
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
	ON CONFLICT (id) DO UPDATE SET
		run_id = EXCLUDED.run_id,
		concepts = EXCLUDED.concepts,
		virtues = EXCLUDED.virtues,
		practices = EXCLUDED.practices,
		situations = EXCLUDED.situations,
		emotions = EXCLUDED.emotions,
		stress_levels = EXCLUDED.stress_levels,
		activity_states = EXCLUDED.activity_states,
		times_of_day = EXCLUDED.times_of_day,
		stages = EXCLUDED.stages,
		difficulty = EXCLUDED.difficulty,
		quotability = EXCLUDED.quotability,
		actionability = EXCLUDED.actionability,
		comfort = EXCLUDED.comfort,
		embedding = EXCLUDED.embedding
	`
	_, err := s.pool.Exec(ctx, query,
		p.ID, runID, p.Source.Philosopher, p.Source.Work,
		p.Source.Book, p.Source.Chapter, p.Source.Letter, p.Source.Section,
		p.Text, p.TextNormalized,
		p.Tags.PrimaryConcepts, p.Tags.Virtues, p.Tags.Practices, p.Tags.Situations, p.Tags.Emotions,
		stressStrings(p.HealthContext.StressLevels),
		activityStrings(p.HealthContext.ActivityStates),
		timeStrings(p.HealthContext.TimesOfDay),
		stageStrings(p.JourneyContext.Stages),
		string(p.JourneyContext.Difficulty),
		p.Metadata.Quotability, p.Metadata.Actionability, p.Metadata.Comfort,
		p.Metadata.WordCount, p.Metadata.CharacterCount,
		pgvector.NewVector(p.Embedding),
	)
	return err
}

func (s *PostgresStore) Search(ctx context.Context, vector []float32, topK int, filter *Filter) ([]Match, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("empty query vector")
	}

	query := `
	SELECT id, philosopher_id, work_id, book, chapter, letter, section, text,
		concepts, virtues, practices, situations, emotions,
		stress_levels, times_of_day, difficulty,
		quotability, actionability, comfort,
		1 - (embedding <=> $1) AS similarity
	FROM passages
	WHERE embedding IS NOT NULL
	`
	args := []any{pgvector.NewVector(vector), topK}
	if filter != nil && filter.Philosopher != "" {
		query += " AND philosopher_id = $3"
		args = append(args, string(filter.Philosopher))
	}
	query += `
	ORDER BY embedding <=> $1
	LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		var stress, times []string
		var difficulty string
		if err := rows.Scan(
			&m.Passage.ID,
			&m.Passage.Source.Philosopher,
			&m.Passage.Source.Work,
			&m.Passage.Source.Book,
			&m.Passage.Source.Chapter,
			&m.Passage.Source.Letter,
			&m.Passage.Source.Section,
			&m.Passage.Text,
			&m.Passage.Tags.PrimaryConcepts,
			&m.Passage.Tags.Virtues,
			&m.Passage.Tags.Practices,
			&m.Passage.Tags.Situations,
			&m.Passage.Tags.Emotions,
			&stress,
			&times,
			&difficulty,
			&m.Passage.Metadata.Quotability,
			&m.Passage.Metadata.Actionability,
			&m.Passage.Metadata.Comfort,
			&m.Similarity,
		); err != nil {
			return nil, err
		}
		m.Passage.HealthContext.StressLevels = stressLevels(stress)
		m.Passage.HealthContext.TimesOfDay = timesOfDay(times)
		m.Passage.JourneyContext.Difficulty = types.Difficulty(difficulty)
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
		s.logger.Info("postgres connection pool closed")
	}
	return nil
}

func stressStrings(in []types.StressLevel) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func activityStrings(in []types.ActivityState) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func timeStrings(in []types.TimeOfDay) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func stageStrings(in []types.JourneyStage) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func stressLevels(in []string) []types.StressLevel {
	out := make([]types.StressLevel, len(in))
	for i, v := range in {
		out[i] = types.StressLevel(v)
	}
	return out
}

func timesOfDay(in []string) []types.TimeOfDay {
	out := make([]types.TimeOfDay, len(in))
	for i, v := range in {
		out[i] = types.TimeOfDay(v)
	}
	return out
}
