package ports

//go:generate mockgen -source=ports.go -destination=../mocks/ports_mocks.go -package=mocks

import (
	"context"
	"time"

	"MismatchScanner/internal/domain"
)

// ArticleStore is the single logical gateway over persisted articles.
// Physical partitioning, if any, is hidden behind it.
type ArticleStore interface {
	ListUnscored(ctx context.Context, limit int) ([]domain.Article, error)
	ListAll(ctx context.Context) ([]domain.Article, error)
	FindByID(ctx context.Context, id string) (domain.Article, error)
	BulkSetProbability(ctx context.Context, pairs []domain.ScoredPair) (int, error)
	Total(ctx context.Context) (int, error)
	CountWithProbability(ctx context.Context) (int, error)
}

// Classifier estimates the probability that a title disagrees with its body.
type Classifier interface {
	Score(ctx context.Context, title, body string) (float64, error)
}

// Summarizer compresses a text window into a short, bounded summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Tokenizer measures text in the scorer's input units.
type Tokenizer interface {
	TokenLength(ctx context.Context, text string) (int, error)
}

// Notifier publishes run reports to an outbound channel.
type Notifier interface {
	PublishReport(ctx context.Context, report string) error
}

// Scheduler controls when scoring runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
