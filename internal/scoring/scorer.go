// Package scoring turns a (title, reduced body) pair into a mismatch probability.
package scoring

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"MismatchScanner/internal/logging"
	"MismatchScanner/internal/ports"
)

// FailureObserver is notified whenever the classifier errors out.
type FailureObserver interface {
	IncOracleFailure(oracle string)
}

// Scorer wraps a Classifier so one bad document only degrades its own score.
type Scorer struct {
	classifier ports.Classifier
	logger     *slog.Logger
	observer   FailureObserver
}

// NewScorer wires the classifier oracle. observer may be nil.
func NewScorer(classifier ports.Classifier, logger *slog.Logger, observer FailureObserver) *Scorer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Scorer{classifier: classifier, logger: logger, observer: observer}
}

// Score returns a probability in [0,1]. Empty inputs, a missing classifier
// and classifier failures all yield 0.
func (s *Scorer) Score(ctx context.Context, title, body string) float64 {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(body) == "" {
		s.logger.DebugContext(ctx, "empty title or body, scoring as 0")
		return 0
	}
	if s.classifier == nil {
		return 0
	}

	prob, err := s.classifier.Score(ctx, title, body)
	if err != nil {
		s.logger.ErrorContext(ctx, "classifier failed, scoring as 0", "error", err)
		if s.observer != nil {
			s.observer.IncOracleFailure("classifier")
		}
		return 0
	}

	return clamp(prob)
}

func clamp(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return 0
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}
