package export

import (
	"context"
	"fmt"
	"time"

	"fintutor/pkg/core/store"
)

// SummarySource produces the summaries to export on each sync tick.
type SummarySource func(ctx context.Context) ([]*store.ProgressSummary, error)

// Syncer periodically rewrites the progress workbook so the file on disk
// stays close to current without an export call per quiz.
type Syncer struct {
	source   SummarySource
	path     string
	interval time.Duration
}

func NewSyncer(source SummarySource, path string, interval time.Duration) *Syncer {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Syncer{source: source, path: path, interval: interval}
}

// Run blocks until ctx is cancelled, exporting once per interval. Export
// failures are logged and the loop keeps going.
func (s *Syncer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SyncOnce(ctx); err != nil {
				fmt.Printf("[WARNING] Progress export failed: %v\n", err)
			}
		}
	}
}

// SyncOnce performs a single export.
func (s *Syncer) SyncOnce(ctx context.Context) error {
	summaries, err := s.source(ctx)
	if err != nil {
		return fmt.Errorf("failed to load summaries: %w", err)
	}
	return WriteProgressWorkbook(s.path, summaries)
}
