// Package service runs the offline ingest pipeline: read source texts,
// segment, tag, embed, store. It is operator-triggered and never runs
// concurrently with serving traffic on the same dataset.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"stoickb/model"
	"stoickb/segmenter"
	"stoickb/store"
	"stoickb/tagger"
	"stoickb/types"
)

const (
	embedBatchSize  = 50
	embedBatchDelay = 500 * time.Millisecond
)

// philosopherFor supplies the author when a work has no meta file.
var philosopherFor = map[types.WorkID]types.PhilosopherID{
	types.Meditations:       types.MarcusAurelius,
	types.Discourses:        types.Epictetus,
	types.Enchiridion:       types.Epictetus,
	types.Letters:           types.Seneca,
	types.OnAnger:           types.Seneca,
	types.OnShortnessOfLife: types.Seneca,
	types.OnTranquility:     types.Seneca,
	types.OnProvidence:      types.Seneca,
	types.OnHappyLife:       types.Seneca,
	types.Lectures:          types.MusoniusRufus,
	types.LifeOfCato:        types.Cato,
}

type Service struct {
	logger   *slog.Logger
	store    store.Storer
	tagger   tagger.Tagger
	embedder model.Embedder

	sourceDir  string
	archiveDir string
}

func New(storer store.Storer, t tagger.Tagger, embedder model.Embedder) *Service {
	return &Service{
		logger:     slog.Default(),
		store:      storer,
		tagger:     t,
		embedder:   embedder,
		sourceDir:  os.Getenv("LOADER_SOURCE_DIR"),
		archiveDir: os.Getenv("LOADER_ARCHIVE_DIR"),
	}
}

// Run ingests every .txt file in the source directory. Each file is one
// work, named <work_id>.txt, with an optional <work_id>_meta.json beside it.
// A file's failure is logged and the run continues with the next file.
func (s *Service) Run(ctx context.Context) error {
	entries, err := os.ReadDir(s.sourceDir)
	if err != nil {
		return fmt.Errorf("read source dir: %w", err)
	}

	runID := uuid.New()
	s.logger.Info("ingest run started", "run_id", runID, "dir", s.sourceDir)

	processed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		if err := s.ingestFile(ctx, entry.Name(), runID); err != nil {
			s.logger.Error("ingest failed", "file", entry.Name(), "error", err)
			continue
		}
		processed++
	}

	s.logger.Info("ingest run finished", "run_id", runID, "works", processed)
	return nil
}

func (s *Service) ingestFile(ctx context.Context, name string, runID uuid.UUID) error {
	workID := types.WorkID(strings.TrimSuffix(name, ".txt"))
	path := filepath.Join(s.sourceDir, name)

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	work := s.loadWork(workID)
	if err := s.store.SaveWork(ctx, work); err != nil {
		return fmt.Errorf("save work: %w", err)
	}

	passages := segmenter.Segment(work, string(raw))
	s.logger.Info("segmented", "work", workID, "passages", len(passages))

	passages = tagger.TagAll(ctx, s.tagger, passages, tagger.BatchConfig{})

	passages, err = s.embedAll(ctx, passages)
	if err != nil {
		return fmt.Errorf("embed passages: %w", err)
	}

	saved := 0
	for _, p := range passages {
		if len(p.Embedding) == 0 {
			continue
		}
		if err := s.store.SavePassage(ctx, p, runID); err != nil {
			s.logger.Error("save failed", "passage", p.ID, "error", err)
			continue
		}
		saved++
	}
	s.logger.Info("stored", "work", workID, "saved", saved, "dropped", len(passages)-saved)

	return s.moveToArchive(name)
}

// loadWork reads <work_id>_meta.json when present, otherwise derives the
// record from the work id alone.
func (s *Service) loadWork(id types.WorkID) types.Work {
	work := types.Work{
		ID:          id,
		Title:       types.Title(string(id)),
		Philosopher: philosopherFor[id],
	}

	metaPath := filepath.Join(s.sourceDir, string(id)+"_meta.json")
	raw, err := os.ReadFile(metaPath)
	if err != nil {
		return work
	}

	var meta types.Work
	if err := json.Unmarshal(raw, &meta); err != nil {
		s.logger.Warn("bad meta file, using defaults", "path", metaPath, "error", err)
		return work
	}
	if meta.Title != "" {
		work.Title = meta.Title
	}
	if meta.Philosopher != "" {
		work.Philosopher = meta.Philosopher
	}
	work.Translation = meta.Translation
	return work
}

// embedAll embeds passages in fixed-size batches with an inter-batch delay.
// A batch's failure leaves its passages without embeddings; they are dropped
// at save time, not here.
func (s *Service) embedAll(ctx context.Context, passages []types.Passage) ([]types.Passage, error) {
	for start := 0; start < len(passages); start += embedBatchSize {
		end := min(start+embedBatchSize, len(passages))

		texts := make([]string, end-start)
		for i := start; i < end; i++ {
			texts[i-start] = passages[i].Text
		}

		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			s.logger.Error("embedding batch failed", "from", start, "to", end, "error", err)
		} else {
			for i := start; i < end; i++ {
				passages[i].Embedding = vectors[i-start]
			}
		}

		if end < len(passages) {
			select {
			case <-ctx.Done():
				return passages, ctx.Err()
			case <-time.After(embedBatchDelay):
			}
		}
	}
	return passages, nil
}

func (s *Service) moveToArchive(name string) error {
	if s.archiveDir == "" {
		return nil
	}
	if err := os.MkdirAll(s.archiveDir, 0o755); err != nil {
		return err
	}
	src := filepath.Join(s.sourceDir, name)
	dst := filepath.Join(s.archiveDir, name)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("archive %s: %w", name, err)
	}
	s.logger.Info("archived", "file", name)
	return nil
}
