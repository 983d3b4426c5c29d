package tagger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"stoickb/types"
)

// BatchConfig controls the batch runner. Batches execute sequentially with
// Delay between them to respect externally imposed rate limits; calls within
// a batch run concurrently.
type BatchConfig struct {
	Size  int
	Delay time.Duration
}

func (c BatchConfig) withDefaults() BatchConfig {
	if c.Size <= 0 {
		c.Size = 20
	}
	if c.Delay <= 0 {
		c.Delay = 500 * time.Millisecond
	}
	return c
}

// TagAll tags every passage with the given strategy. A single passage's
// failure never aborts the batch: the passage keeps its default fields and
// processing continues. Rerunning on the same input overwrites prior tag
// fields deterministically.
func TagAll(ctx context.Context, t Tagger, passages []types.Passage, cfg BatchConfig) []types.Passage {
	cfg = cfg.withDefaults()
	logger := slog.Default()

	tagged := make([]types.Passage, len(passages))
	failed := 0

	for start := 0; start < len(passages); start += cfg.Size {
		end := min(start+cfg.Size, len(passages))

		var wg sync.WaitGroup
		var mu sync.Mutex
		for i := start; i < end; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p, err := t.Tag(ctx, passages[i])
				tagged[i] = p
				if err != nil {
					mu.Lock()
					failed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		if end < len(passages) {
			select {
			case <-ctx.Done():
				logger.Warn("tagging interrupted", "done", end, "total", len(passages))
				copy(tagged[end:], passages[end:])
				return tagged
			case <-time.After(cfg.Delay):
			}
		}
	}

	logger.Info("tagging finished", "passages", len(passages), "failed", failed)
	return tagged
}
