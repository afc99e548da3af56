package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"MismatchScanner/internal/app"
	"MismatchScanner/internal/config"
	"MismatchScanner/internal/domain"
	"MismatchScanner/internal/logging"
)

type cli struct {
	cfgFile string
	cfg     config.Config
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "mismatchscanner",
		Short: "Score news articles for title/body mismatch",
		Long: `mismatchscanner reduces article bodies, asks the classifier how far each
title drifts from its body and stores the probability next to the article.

Example usage:
  mismatchscanner score --limit 200   # one run over at most 200 unscored articles
  mismatchscanner score --id <uuid>   # rescore a single article
  mismatchscanner schedule            # run on the configured cron expression
  mismatchscanner serve               # dashboard endpoints and /metrics
  mismatchscanner stats               # corpus scoring progress`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init()
		},
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default $MISMATCH_SCANNER_CONFIG)")

	root.AddCommand(c.scoreCmd(), c.scheduleCmd(), c.serveCmd(), c.statsCmd())
	return root
}

func (c *cli) init() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	c.cfg = config.Load(c.cfgFile)
	if err := c.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	c.logger = logging.New(c.cfg.Logging.Level, c.cfg.Logging.Format)
	return nil
}

func (c *cli) scoreCmd() *cobra.Command {
	var (
		limit int
		id    string
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Run one scoring pass over unscored articles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			application, err := app.New(ctx, c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer application.Close()

			if id != "" {
				prob, err := application.ScoreOne(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.4f\n", id, prob)
				return nil
			}

			report, err := application.Run(ctx, limit)
			if err != nil {
				return err
			}
			return renderReport(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum articles to select (default scoring.maxArticles)")
	cmd.Flags().StringVar(&id, "id", "", "score only this article id")
	return cmd
}

func (c *cli) scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run scoring on the configured cron expression",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := app.New(cmd.Context(), c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer application.Close()
			return application.Schedule(cmd.Context())
		},
	}
}

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard listing endpoints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := app.New(cmd.Context(), c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer application.Close()
			return application.Serve(cmd.Context())
		},
	}
}

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show how much of the corpus carries a probability",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := app.New(cmd.Context(), c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer application.Close()

			stats, err := application.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return renderStats(cmd.OutOrStdout(), stats)
		},
	}
}

func renderStats(w io.Writer, s domain.CorpusStats) error {
	table := tablewriter.NewTable(w)
	table.Header("Metric", "Value")
	rows := [][]string{
		{"total articles", strconv.Itoa(s.Total)},
		{"with probability", strconv.Itoa(s.WithProbability)},
		{"without probability", strconv.Itoa(s.WithoutProbability)},
		{"completion", fmt.Sprintf("%.1f%%", s.CompletionRate)},
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func renderReport(w io.Writer, r domain.RunReport) error {
	table := tablewriter.NewTable(w)
	table.Header("Field", "Value")
	rows := [][]string{
		{"run id", r.RunID},
		{"selected", strconv.Itoa(r.Selected)},
		{"scored", strconv.Itoa(r.Scored)},
		{"skipped", strconv.Itoa(r.Skipped)},
		{"flushes", strconv.Itoa(r.Flushes)},
		{"documents updated", strconv.Itoa(r.Modified)},
		{"completion before", fmt.Sprintf("%.1f%%", r.Before.CompletionRate)},
		{"completion after", fmt.Sprintf("%.1f%%", r.After.CompletionRate)},
		{"duration", r.Duration.String()},
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
