package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"MismatchScanner/internal/domain"
	"MismatchScanner/internal/logging"
	"MismatchScanner/internal/ports"
)

// DefaultBatchSize is the number of scored pairs written per bulk update.
const DefaultBatchSize = 20

// FlushObserver is told about every successful flush.
type FlushObserver interface {
	ObserveFlush(modified int)
}

// Committer buffers scored pairs and writes them in fixed-size batches.
// It is not safe for concurrent use; the pipeline feeds it from one goroutine.
type Committer struct {
	store     ports.ArticleStore
	batchSize int
	logger    *slog.Logger
	observer  FlushObserver

	pending  []domain.ScoredPair
	flushes  int
	modified int
}

// NewCommitter creates a committer. batchSize <= 0 selects DefaultBatchSize.
func NewCommitter(store ports.ArticleStore, batchSize int, logger *slog.Logger, observer FlushObserver) *Committer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Committer{
		store:     store,
		batchSize: batchSize,
		logger:    logger,
		observer:  observer,
		pending:   make([]domain.ScoredPair, 0, batchSize),
	}
}

// Add buffers pair and flushes once a full batch has accumulated.
func (c *Committer) Add(ctx context.Context, pair domain.ScoredPair) error {
	c.pending = append(c.pending, pair)
	if len(c.pending) < c.batchSize {
		return nil
	}
	return c.flush(ctx)
}

// Drain flushes whatever is still buffered.
func (c *Committer) Drain(ctx context.Context) error {
	if len(c.pending) == 0 {
		return nil
	}
	return c.flush(ctx)
}

// Pending reports how many pairs wait for the next flush.
func (c *Committer) Pending() int { return len(c.pending) }

// Flushes reports how many bulk updates succeeded.
func (c *Committer) Flushes() int { return c.flushes }

// Modified reports the documents changed across all flushes.
func (c *Committer) Modified() int { return c.modified }

// flush writes the buffer. The buffer is released whether or not the write
// succeeds; unflushed pairs are picked up again by the next run.
func (c *Committer) flush(ctx context.Context) error {
	batch := c.pending
	c.pending = make([]domain.ScoredPair, 0, c.batchSize)

	modified, err := c.store.BulkSetProbability(ctx, batch)
	if err != nil {
		return fmt.Errorf("flush %d scored articles: %w", len(batch), err)
	}

	c.flushes++
	c.modified += modified
	if c.observer != nil {
		c.observer.ObserveFlush(modified)
	}

	c.logger.InfoContext(ctx, "batch committed",
		"batch_size", len(batch),
		"modified", modified,
		"flushes", c.flushes)
	return nil
}
