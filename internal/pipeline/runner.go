package pipeline

import (
	"context"
	"fmt"

	"github.com/aquanets/aquacrawl/internal/domain"
	"github.com/aquanets/aquacrawl/internal/logger"
)

// Store is the persistence surface the runner needs: listing and loading raw
// documents, and saving processed ones.
type Store interface {
	ListRaw() ([]string, error)
	LoadRaw(name string) (*domain.RawDocument, error)
	SaveProcessed(doc *domain.ProcessedDocument) (string, error)
}

// RunStats summarizes a processing run.
type RunStats struct {
	// Processed is the number of documents processed and saved.
	Processed int
	// Failed is the number of documents that could not be processed.
	Failed int
}

// Runner processes every raw document in a store sequentially. Per-document
// failures are logged and skipped; only listing failures abort the run.
type Runner struct {
	processor *Processor
	store     Store
	log       logger.Interface
}

// NewRunner creates a runner over the given store.
func NewRunner(processor *Processor, store Store, log logger.Interface) *Runner {
	return &Runner{processor: processor, store: store, log: log}
}

// Run processes up to limit raw documents (all of them when limit <= 0) and
// saves the results. Documents are taken in the store's listing order.
func (r *Runner) Run(ctx context.Context, limit int) (*RunStats, error) {
	names, err := r.store.ListRaw()
	if err != nil {
		return nil, fmt.Errorf("list raw documents: %w", err)
	}

	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	r.log.Info("processing run started", "documents", len(names))

	stats := &RunStats{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if err := r.processOne(name); err != nil {
			stats.Failed++
			r.log.Error("document failed", "name", name, "error", err.Error())
			continue
		}
		stats.Processed++
	}

	r.log.Info("processing run finished",
		"processed", stats.Processed,
		"failed", stats.Failed,
	)

	return stats, nil
}

// processOne loads, processes, and saves a single document.
func (r *Runner) processOne(name string) error {
	raw, err := r.store.LoadRaw(name)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	processed, err := r.processor.Process(raw)
	if err != nil {
		return fmt.Errorf("process: %w", err)
	}

	if _, err := r.store.SaveProcessed(processed); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	return nil
}
