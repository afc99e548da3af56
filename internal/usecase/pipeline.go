package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"MismatchScanner/internal/domain"
	"MismatchScanner/internal/infrastructure/parser"
	"MismatchScanner/internal/logging"
	"MismatchScanner/internal/metrics"
	"MismatchScanner/internal/ports"
)

// BodyReducer bounds a body to the classifier input budget.
type BodyReducer interface {
	Reduce(ctx context.Context, body string) string
}

// MismatchScorer maps a title and reduced body to a probability in [0,1].
type MismatchScorer interface {
	Score(ctx context.Context, title, body string) float64
}

// PipelineDeps wires all driven adapters into the scoring pipeline.
type PipelineDeps struct {
	Store     ports.ArticleStore
	Reducer   BodyReducer
	Scorer    MismatchScorer
	Notifier  ports.Notifier
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
	BatchSize int
	Workers   int
}

// RunOptions tunes a single run.
type RunOptions struct {
	// Limit caps the number of selected articles; <= 0 means all.
	Limit int
}

// Pipeline implements the select, reduce, score and commit workflow.
type Pipeline struct {
	store     ports.ArticleStore
	reducer   BodyReducer
	scorer    MismatchScorer
	notifier  ports.Notifier
	metrics   *metrics.Metrics
	logger    *slog.Logger
	batchSize int
	workers   int
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) (*Pipeline, error) {
	if deps.Store == nil {
		return nil, errors.New("pipeline requires an article store")
	}
	if deps.Reducer == nil || deps.Scorer == nil {
		return nil, errors.New("pipeline requires a reducer and a scorer")
	}

	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	batchSize := deps.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	workers := deps.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Pipeline{
		store:     deps.Store,
		reducer:   deps.Reducer,
		scorer:    deps.Scorer,
		notifier:  deps.Notifier,
		metrics:   deps.Metrics,
		logger:    logger,
		batchSize: batchSize,
		workers:   workers,
	}, nil
}

// Stats reads scoring progress from the store.
func (p *Pipeline) Stats(ctx context.Context) (domain.CorpusStats, error) {
	total, err := p.store.Total(ctx)
	if err != nil {
		return domain.CorpusStats{}, fmt.Errorf("count articles: %w", err)
	}
	scored, err := p.store.CountWithProbability(ctx)
	if err != nil {
		return domain.CorpusStats{}, fmt.Errorf("count scored articles: %w", err)
	}
	return domain.NewCorpusStats(total, scored), nil
}

// Run scores every unscored article once. Per-article faults skip only that
// article; a failed flush aborts the run and is returned. Pairs committed
// before the failure stay committed, the rest are selected again next run.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (domain.RunReport, error) {
	started := time.Now()
	report := domain.RunReport{RunID: uuid.NewString()}
	logger := p.logger.With("run_id", report.RunID)

	report.Before = p.logStats(ctx, logger, "before")

	articles, err := p.store.ListUnscored(ctx, opts.Limit)
	if err != nil {
		logger.ErrorContext(ctx, "selecting unscored articles failed, nothing to do", "error", err)
		articles = nil
	}
	report.Selected = len(articles)
	logger.InfoContext(ctx, "scoring run started",
		"selected", report.Selected,
		"batch_size", p.batchSize,
		"workers", p.workers)

	committer := NewCommitter(p.store, p.batchSize, logger, p.metrics)
	runErr := p.scoreAll(ctx, logger, articles, committer, &report)
	if runErr == nil {
		if err := committer.Drain(ctx); err != nil {
			runErr = fmt.Errorf("drain: %w", err)
		}
	}

	report.Flushes = committer.Flushes()
	report.Modified = committer.Modified()
	report.Duration = time.Since(started)

	if runErr != nil {
		report.After = p.logStats(context.WithoutCancel(ctx), logger, "after")
		p.metrics.ObserveRun(metrics.StatusFailure, report.Duration.Seconds())
		logger.ErrorContext(ctx, "scoring run aborted",
			"error", runErr,
			"flushes", report.Flushes,
			"modified", report.Modified)
		return report, runErr
	}

	report.After = p.logStats(ctx, logger, "after")
	p.metrics.ObserveRun(metrics.StatusSuccess, report.Duration.Seconds())
	logger.InfoContext(ctx, "scoring run finished",
		"scored", report.Scored,
		"skipped", report.Skipped,
		"flushes", report.Flushes,
		"modified", report.Modified,
		"duration", report.Duration)

	p.notify(ctx, logger, report)
	return report, nil
}

// ScoreOne scores a single article and commits it immediately.
func (p *Pipeline) ScoreOne(ctx context.Context, id string) (float64, error) {
	article, err := p.store.FindByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("load article %s: %w", id, err)
	}

	logger := p.logger.With("article_id", id)
	prob, ok := p.process(ctx, logger, article)
	if !ok {
		return 0, fmt.Errorf("score article %s: processing failed", id)
	}

	modified, err := p.store.BulkSetProbability(ctx, []domain.ScoredPair{{ID: article.ID, Probability: prob}})
	if err != nil {
		return 0, fmt.Errorf("commit article %s: %w", id, err)
	}
	if modified == 0 {
		return 0, fmt.Errorf("commit article %s: %w", id, domain.ErrNotFound)
	}
	p.metrics.ObserveFlush(modified)
	p.metrics.IncScored()

	logger.InfoContext(ctx, "article scored", "probability", prob)
	return prob, nil
}

type outcome struct {
	prob float64
	ok   bool
}

// scoreAll works through articles one batch-sized chunk at a time. Inside a
// chunk up to p.workers articles are processed concurrently; results are
// enqueued in store order from this goroutine only.
func (p *Pipeline) scoreAll(ctx context.Context, logger *slog.Logger, articles []domain.Article, committer *Committer, report *domain.RunReport) error {
	for start := 0; start < len(articles); start += p.batchSize {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run interrupted: %w", err)
		}

		chunk := articles[start:min(start+p.batchSize, len(articles))]
		results := make([]outcome, len(chunk))

		var g errgroup.Group
		g.SetLimit(p.workers)
		for i, article := range chunk {
			g.Go(func() error {
				prob, ok := p.process(ctx, logger.With("article_id", article.ID), article)
				results[i] = outcome{prob: prob, ok: ok}
				return nil
			})
		}
		_ = g.Wait()

		for i, res := range results {
			if !res.ok {
				report.Skipped++
				p.metrics.IncSkipped()
				continue
			}
			report.Scored++
			p.metrics.IncScored()
			if err := committer.Add(ctx, domain.ScoredPair{ID: chunk[i].ID, Probability: res.prob}); err != nil {
				return err
			}
		}

		logger.DebugContext(ctx, "chunk processed",
			"done", start+len(chunk),
			"selected", len(articles))
	}
	return nil
}

// process reduces and scores one article. A panic in either step is
// contained here and reported as ok=false so the article is skipped.
func (p *Pipeline) process(ctx context.Context, logger *slog.Logger, article domain.Article) (prob float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "article processing failed, skipping", "panic", r)
			prob, ok = 0, false
		}
	}()

	body := article.Body
	if parser.LooksLikeHTML(body) {
		body = parser.PlainText(body)
	}
	reduced := p.reducer.Reduce(ctx, body)
	prob = p.scorer.Score(ctx, article.Title, reduced)

	logger.DebugContext(ctx, "article scored",
		"probability", prob,
		"body_chars", len(article.Body),
		"reduced_chars", len(reduced))
	return prob, true
}

func (p *Pipeline) logStats(ctx context.Context, logger *slog.Logger, phase string) domain.CorpusStats {
	stats, err := p.Stats(ctx)
	if err != nil {
		logger.WarnContext(ctx, "corpus stats unavailable", "phase", phase, "error", err)
		return domain.CorpusStats{}
	}
	p.metrics.SetCompletion(stats.CompletionRate)
	logger.InfoContext(ctx, "corpus stats",
		"phase", phase,
		"total", stats.Total,
		"with_probability", stats.WithProbability,
		"without_probability", stats.WithoutProbability,
		"completion_rate", fmt.Sprintf("%.1f%%", stats.CompletionRate))
	return stats
}

func (p *Pipeline) notify(ctx context.Context, logger *slog.Logger, report domain.RunReport) {
	if p.notifier == nil || report.Selected == 0 {
		return
	}
	if err := p.notifier.PublishReport(ctx, FormatReport(report)); err != nil {
		logger.WarnContext(ctx, "run report not delivered", "error", err)
	}
}

// FormatReport renders a run report as a short Markdown message.
func FormatReport(r domain.RunReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Mismatch scoring run* `%s`\n", r.RunID)
	fmt.Fprintf(&b, "Selected: %d, scored: %d, skipped: %d\n", r.Selected, r.Scored, r.Skipped)
	fmt.Fprintf(&b, "Flushes: %d, documents updated: %d\n", r.Flushes, r.Modified)
	fmt.Fprintf(&b, "Completion: %.1f%% -> %.1f%% (%d/%d)\n",
		r.Before.CompletionRate, r.After.CompletionRate, r.After.WithProbability, r.After.Total)
	fmt.Fprintf(&b, "Duration: %s", r.Duration.Round(time.Second))
	return b.String()
}
