package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"MismatchScanner/internal/domain"
	"MismatchScanner/internal/mocks"
	"MismatchScanner/internal/ranking"
)

func prob(p float64) *float64 { return &p }

func corpus(n int) []domain.Article {
	out := make([]domain.Article, n)
	for i := range out {
		out[i] = domain.Article{
			ID:                  fmt.Sprintf("id-%02d", i),
			Title:               fmt.Sprintf("headline %d", i),
			Media:               "Daily",
			MismatchProbability: prob(float64(i) / float64(n)),
			LikeCount:           i,
			CommentCount:        2 * i,
		}
	}
	return out
}

func serve(t *testing.T, store *mocks.MockArticleStore, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := NewServer(NewHandler(store, 3, 2, nil), prometheus.NewRegistry(), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) PageResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code)
	var page PageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.NotNil(t, page.Articles, "articles must encode as [] not null")
	return page
}

func TestIndexDefaultsToRiskOrder(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockArticleStore(ctrl)
	store.EXPECT().ListAll(gomock.Any()).Return(corpus(5), nil)

	rec := serve(t, store, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp IndexResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ranking.OrderRisk, resp.Sort)
	assert.Equal(t, 5, resp.Total)
	assert.Equal(t, 5, resp.Summary.TotalArticles)
	require.Len(t, resp.Articles, 3, "first page is pageSize long")
	assert.Equal(t, "id-04", resp.Articles[0].ID)
	require.Len(t, resp.MediaStats, 1)
	assert.Equal(t, "Daily", resp.MediaStats[0].Media)
}

func TestIndexStoreFailureRendersEmpty(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockArticleStore(ctrl)
	store.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("too many connections"))

	rec := serve(t, store, "/?sort=latest")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp IndexResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ranking.OrderLatest, resp.Sort)
	assert.Zero(t, resp.Total)
	assert.Empty(t, resp.Articles)
}

func TestLoadMorePaginates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockArticleStore(ctrl)
	store.EXPECT().ListAll(gomock.Any()).Return(corpus(5), nil).Times(3)

	page := decodePage(t, serve(t, store, "/load_more?offset=3&limit=10&sort=safe"))
	assert.Len(t, page.Articles, 2)
	assert.Equal(t, "id-03", page.Articles[0].ID)

	page = decodePage(t, serve(t, store, "/load_more?offset=1&sort=engagement"))
	require.Len(t, page.Articles, 2, "limit defaults to the configured load-more size")
	assert.Equal(t, "id-03", page.Articles[0].ID)

	page = decodePage(t, serve(t, store, "/load_more?offset=5&limit=2"))
	assert.Empty(t, page.Articles, "offset at the end signals no more results")
}

func TestLoadMoreMalformedParamsYieldEmptyPage(t *testing.T) {
	t.Parallel()

	for _, target := range []string{
		"/load_more?offset=abc",
		"/load_more?limit=ten",
		"/load_more?offset=-1&limit=5",
		"/load_more?offset=0&limit=0",
		"/load_more?offset=1.5",
	} {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockArticleStore(ctrl)

		page := decodePage(t, serve(t, store, target))
		assert.Empty(t, page.Articles, target)
	}
}

func TestLoadMoreStoreFailureYieldsEmptyPage(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockArticleStore(ctrl)
	store.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("i/o timeout"))

	page := decodePage(t, serve(t, store, "/load_more?offset=0&limit=5"))
	assert.Empty(t, page.Articles)
}

func TestLoadMoreSanitizesScrapedText(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockArticleStore(ctrl)
	store.EXPECT().ListAll(gomock.Any()).Return([]domain.Article{{
		ID:    "x",
		Title: `Breaking <img src=x onerror="alert(1)">news`,
		Media: "<b>Herald</b>",
	}}, nil)

	page := decodePage(t, serve(t, store, "/load_more"))
	require.Len(t, page.Articles, 1)
	assert.Equal(t, "Breaking news", page.Articles[0].Title)
	assert.Equal(t, "Herald", page.Articles[0].Media)
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockArticleStore(ctrl)

	assert.Equal(t, http.StatusOK, serve(t, store, "/healthz").Code)
	assert.Equal(t, http.StatusOK, serve(t, store, "/metrics").Code)
}
