package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"MismatchScanner/internal/config"
	"MismatchScanner/internal/dashboard"
	"MismatchScanner/internal/domain"
	"MismatchScanner/internal/infrastructure/llm"
	"MismatchScanner/internal/infrastructure/ml"
	"MismatchScanner/internal/infrastructure/scheduler"
	"MismatchScanner/internal/infrastructure/storage"
	"MismatchScanner/internal/infrastructure/telegram"
	"MismatchScanner/internal/logging"
	"MismatchScanner/internal/metrics"
	"MismatchScanner/internal/ports"
	"MismatchScanner/internal/reducer"
	"MismatchScanner/internal/scoring"
	"MismatchScanner/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	db       *sql.DB
	store    *storage.SQLStore
	pipeline *usecase.Pipeline
	registry *prometheus.Registry
}

// New opens the store and builds every collaborator from cfg.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	runMetrics := metrics.New()
	if err := runMetrics.Register(registry); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	db, err := storage.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	store, err := storage.NewSQLStore(db, cfg.Database.Driver, cfg.Database.Tables, baseLogger.With("component", "store"))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	mlClient := ml.NewClient(ml.Options{
		Endpoint:          cfg.ML.InferenceURL,
		APIKey:            cfg.ML.APIKey,
		Timeout:           cfg.ML.Timeout,
		RequestsPerSecond: cfg.ML.RequestsPerSecond,
	})

	bodyReducer, err := reducer.New(reducer.Options{
		TokenBudget:         cfg.Reducer.TokenBudget,
		WindowSize:          cfg.Reducer.WindowSize,
		Stride:              cfg.Reducer.Stride,
		FallbackChars:       cfg.Reducer.FallbackChars,
		WindowFallbackChars: cfg.Reducer.WindowFallbackChars,
	}, mlClient, selectSummarizer(cfg, mlClient), baseLogger.With("component", "reducer"))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("build reducer: %w", err)
	}

	var notifier ports.Notifier
	if tg := cfg.Notifications.Telegram; tg.BotToken != "" && tg.ChatID != "" {
		notifier = telegram.NewNotifier(tg.BotToken, tg.ChatID)
	}

	pipeline, err := usecase.NewPipeline(usecase.PipelineDeps{
		Store:     store,
		Reducer:   bodyReducer,
		Scorer:    scoring.NewScorer(mlClient, baseLogger.With("component", "scorer"), runMetrics),
		Notifier:  notifier,
		Metrics:   runMetrics,
		Logger:    baseLogger.With("component", "pipeline"),
		BatchSize: cfg.Scoring.BatchSize,
		Workers:   cfg.Scoring.Workers,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		db:       db,
		store:    store,
		pipeline: pipeline,
		registry: registry,
	}, nil
}

func selectSummarizer(cfg config.Config, mlClient *ml.Client) ports.Summarizer {
	switch cfg.Summarizer.Backend {
	case config.SummarizerML:
		return mlClient
	case config.SummarizerChatGPT:
		return llm.NewChatGPTClient(cfg.ChatGPT)
	default:
		return nil
	}
}

// Run performs a single scoring run.
func (a *Application) Run(ctx context.Context, limit int) (domain.RunReport, error) {
	if limit <= 0 {
		limit = a.cfg.Scoring.MaxArticles
	}
	return a.pipeline.Run(ctx, usecase.RunOptions{Limit: limit})
}

// ScoreOne scores a single article by id.
func (a *Application) ScoreOne(ctx context.Context, id string) (float64, error) {
	return a.pipeline.ScoreOne(ctx, id)
}

// Stats reports corpus scoring progress.
func (a *Application) Stats(ctx context.Context) (domain.CorpusStats, error) {
	return a.pipeline.Stats(ctx)
}

// Schedule runs the pipeline on the configured cron expression until ctx ends.
func (a *Application) Schedule(ctx context.Context) error {
	driver, err := scheduler.NewCronScheduler(a.cfg.Scheduler.CronExpression, a.cfg.Scheduler.Location())
	if err != nil {
		return err
	}

	jobs := usecase.NewScheduler(driver, a.pipeline,
		usecase.RunOptions{Limit: a.cfg.Scoring.MaxArticles},
		a.logger.With("component", "scheduler"))
	if err := jobs.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.InfoContext(ctx, "scheduler started",
		"cron", a.cfg.Scheduler.CronExpression,
		"next_run", driver.Next(time.Now()))

	<-ctx.Done()
	return jobs.Stop(context.Background())
}

// Serve exposes the dashboard and /metrics until ctx ends.
func (a *Application) Serve(ctx context.Context) error {
	handler := dashboard.NewHandler(a.store, a.cfg.Dashboard.PageSize, a.cfg.Dashboard.LoadMoreLimit,
		a.logger.With("component", "dashboard"))
	server := dashboard.NewServer(handler, a.registry, a.logger.With("component", "http"))
	return dashboard.Serve(ctx, server, a.cfg.Dashboard.Addr, a.logger)
}

// Close releases the database handle.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
