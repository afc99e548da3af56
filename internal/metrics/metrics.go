// Package metrics exposes Prometheus collectors for scoring runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric names.
const (
	MetricArticlesScored  = "mismatch_articles_scored_total"
	MetricArticlesSkipped = "mismatch_articles_skipped_total"
	MetricFlushes         = "mismatch_flushes_total"
	MetricModified        = "mismatch_documents_modified_total"
	MetricOracleFailures  = "mismatch_oracle_failures_total"
	MetricRuns            = "mismatch_runs_total"
	MetricRunDuration     = "mismatch_run_duration_seconds"
	MetricCompletionRate  = "mismatch_corpus_completion_ratio"
)

// Run status labels.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics groups the collectors. A nil *Metrics is a valid no-op recorder.
type Metrics struct {
	scored         prometheus.Counter
	skipped        prometheus.Counter
	flushes        prometheus.Counter
	modified       prometheus.Counter
	oracleFailures *prometheus.CounterVec
	runs           *prometheus.CounterVec
	runDuration    prometheus.Histogram
	completion     prometheus.Gauge
}

// New creates unregistered collectors; call Register to expose them.
func New() *Metrics {
	return &Metrics{
		scored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricArticlesScored,
			Help: "Articles that received a mismatch probability",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricArticlesSkipped,
			Help: "Articles skipped for the current run after a processing fault",
		}),
		flushes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricFlushes,
			Help: "Bulk probability updates issued to the store",
		}),
		modified: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricModified,
			Help: "Documents modified by bulk probability updates",
		}),
		oracleFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricOracleFailures,
			Help: "Failed oracle invocations by oracle",
		}, []string{"oracle"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricRuns,
			Help: "Scoring runs by completion status",
		}, []string{"status"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricRunDuration,
			Help:    "Scoring run duration in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800, 3600},
		}),
		completion: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricCompletionRate,
			Help: "Share of stored articles that carry a probability (0-1)",
		}),
	}
}

// Register registers all collectors with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.scored, m.skipped, m.flushes, m.modified,
		m.oracleFailures, m.runs, m.runDuration, m.completion,
	}
}

// IncScored counts one scored article.
func (m *Metrics) IncScored() {
	if m != nil {
		m.scored.Inc()
	}
}

// IncSkipped counts one skipped article.
func (m *Metrics) IncSkipped() {
	if m != nil {
		m.skipped.Inc()
	}
}

// ObserveFlush records one flush and the documents it modified.
func (m *Metrics) ObserveFlush(modified int) {
	if m == nil {
		return
	}
	m.flushes.Inc()
	m.modified.Add(float64(modified))
}

// IncOracleFailure counts a failed classifier or summarizer call.
func (m *Metrics) IncOracleFailure(oracle string) {
	if m != nil {
		m.oracleFailures.WithLabelValues(oracle).Inc()
	}
}

// ObserveRun records run completion.
func (m *Metrics) ObserveRun(status string, seconds float64) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(status).Inc()
	m.runDuration.Observe(seconds)
}

// SetCompletion publishes the corpus completion percentage as a ratio.
func (m *Metrics) SetCompletion(percent float64) {
	if m != nil {
		m.completion.Set(percent / 100)
	}
}
