package usecase

import (
	"context"
	"log/slog"
	"time"

	"MismatchScanner/internal/logging"
	"MismatchScanner/internal/ports"
)

// Scheduler wires the cron driver with the scoring pipeline.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	opts     RunOptions
	logger   *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring scoring runs.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, opts RunOptions, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Scheduler{driver: driver, pipeline: pipeline, opts: opts, logger: logger}
}

// Start registers the pipeline with the provided scheduler. A failed run is
// logged and left for the next trigger to resume.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}

	job := func(trigger time.Time) {
		s.logger.InfoContext(ctx, "scheduled run triggered", "trigger", trigger)
		if _, err := s.pipeline.Run(ctx, s.opts); err != nil {
			s.logger.ErrorContext(ctx, "scheduled run failed", "error", err)
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
