package domain

import (
	"errors"
	"time"
)

// PublishedLayout is the timestamp layout written by the ingestion process.
const PublishedLayout = "2006-01-02 15:04:05"

var (
	// ErrNotFound is returned when an article does not exist in the store.
	ErrNotFound = errors.New("article not found")
	// ErrInvalidID is returned for identifiers the store cannot address.
	ErrInvalidID = errors.New("invalid article id")
)

// Article is a news item produced by ingestion and enriched by scoring.
type Article struct {
	ID           string
	Title        string
	Body         string
	Media        string
	PublishedAt  string
	LikeCount    int
	CommentCount int
	URL          string
	// MismatchProbability stays nil until the article has been scored.
	MismatchProbability *float64
}

// Scored reports whether a mismatch probability has been recorded.
func (a Article) Scored() bool {
	return a.MismatchProbability != nil
}

// Probability returns the recorded probability, or 0 for unscored articles.
func (a Article) Probability() float64 {
	if a.MismatchProbability == nil {
		return 0
	}
	return *a.MismatchProbability
}

// Published parses PublishedAt. ok is false for missing or malformed dates.
func (a Article) Published() (t time.Time, ok bool) {
	if a.PublishedAt == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(PublishedLayout, a.PublishedAt)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// ScoredPair is a buffered (id, probability) result waiting to be committed.
type ScoredPair struct {
	ID          string
	Probability float64
}

// CorpusStats describes scoring progress across the whole store.
type CorpusStats struct {
	Total              int     `json:"total_news"`
	WithProbability    int     `json:"with_probability"`
	WithoutProbability int     `json:"without_probability"`
	CompletionRate     float64 `json:"completion_rate"`
}

// NewCorpusStats derives the remaining fields from the two store counters.
func NewCorpusStats(total, withProbability int) CorpusStats {
	stats := CorpusStats{
		Total:              total,
		WithProbability:    withProbability,
		WithoutProbability: total - withProbability,
	}
	if total > 0 {
		stats.CompletionRate = float64(withProbability) / float64(total) * 100
	}
	return stats
}

// RunReport summarises a single scoring run.
type RunReport struct {
	RunID    string
	Selected int
	Scored   int
	Skipped  int
	Flushes  int
	Modified int
	Before   CorpusStats
	After    CorpusStats
	Duration time.Duration
}
