package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MismatchScanner/internal/config"
	"MismatchScanner/internal/domain"
	"MismatchScanner/internal/logging"
)

// inferenceStub answers the three inference routes the application uses.
func inferenceStub(t *testing.T, scoreCalls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		_ = json.NewDecoder(r.Body).Decode(&payload)

		switch r.URL.Path {
		case "/tokens":
			text, _ := payload["text"].(string)
			_ = json.NewEncoder(w).Encode(map[string]int{"length": len(strings.Fields(text))})
		case "/summarize":
			_ = json.NewEncoder(w).Encode(map[string]string{"summary": "short summary"})
		case "/score":
			scoreCalls.Add(1)
			if payload["title"] == "broken" {
				http.Error(w, "model crashed", http.StatusInternalServerError)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]float64{"mismatch_probability": 0.75})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, inferenceURL string) config.Config {
	t.Helper()
	t.Setenv("MISMATCH_SCANNER_CONFIG", "")
	cfg := config.Load("")
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = filepath.Join(t.TempDir(), "news.db")
	cfg.Database.Tables = []string{"2025.06.09"}
	cfg.ML.InferenceURL = inferenceURL
	cfg.Scoring.BatchSize = 2
	cfg.Notifications.Telegram = config.TelegramConfig{}
	return cfg
}

func TestApplicationScoresCorpusEndToEnd(t *testing.T) {
	var scoreCalls atomic.Int32
	srv := inferenceStub(t, &scoreCalls)
	ctx := context.Background()

	application, err := New(ctx, testConfig(t, srv.URL), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	long := strings.Repeat("word ", 700)
	require.NoError(t, application.store.InsertArticles(ctx, "2025.06.09", []domain.Article{
		{ID: "00000000-0000-0000-0000-000000000001", Title: "Short one", Body: "a short body"},
		{ID: "00000000-0000-0000-0000-000000000002", Title: "Long one", Body: long},
		{ID: "00000000-0000-0000-0000-000000000003", Title: "broken", Body: "classifier fails here"},
		{ID: "00000000-0000-0000-0000-000000000004", Title: "", Body: "no title"},
	}))

	report, err := application.Run(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Selected)
	assert.Equal(t, 4, report.Scored)
	assert.Equal(t, 2, report.Flushes)
	assert.Equal(t, 4, report.Modified)
	assert.Equal(t, int32(3), scoreCalls.Load(), "empty title never reaches the classifier")

	stats, err := application.Stats(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, stats.CompletionRate, 1e-9)

	failed, err := application.store.FindByID(ctx, "00000000-0000-0000-0000-000000000003")
	require.NoError(t, err)
	require.NotNil(t, failed.MismatchProbability)
	assert.Zero(t, *failed.MismatchProbability)

	again, err := application.Run(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, again.Selected)
}

func TestApplicationScoreOne(t *testing.T) {
	var scoreCalls atomic.Int32
	srv := inferenceStub(t, &scoreCalls)
	ctx := context.Background()

	application, err := New(ctx, testConfig(t, srv.URL), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	id := "00000000-0000-0000-0000-0000000000aa"
	require.NoError(t, application.store.InsertArticles(ctx, "2025.06.09", []domain.Article{
		{ID: id, Title: "Title", Body: "Body text"},
	}))

	prob, err := application.ScoreOne(ctx, id)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, prob, 1e-9)

	_, err = application.ScoreOne(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.Reducer.Stride = cfg.Reducer.WindowSize

	_, err := New(context.Background(), cfg, logging.Discard())
	assert.Error(t, err)
}
