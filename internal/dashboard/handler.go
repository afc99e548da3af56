// Package dashboard serves the read path: metric-augmented, sorted and
// paginated article listings for the dashboard client.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"

	"MismatchScanner/internal/domain"
	"MismatchScanner/internal/logging"
	"MismatchScanner/internal/ports"
	"MismatchScanner/internal/ranking"
)

// Defaults mirror the dashboard client: 40 cards on first render.
const (
	DefaultPageSize      = 40
	DefaultLoadMoreLimit = 40
)

// IndexResponse is the first page plus header figures.
type IndexResponse struct {
	Sort       ranking.Order            `json:"sort"`
	Summary    ranking.Summary          `json:"summary"`
	MediaStats []ranking.MediaTrustStat `json:"media_stats"`
	Articles   []ranking.ArticleView    `json:"articles"`
	Total      int                      `json:"total"`
}

// PageResponse is one incremental page.
type PageResponse struct {
	Articles []ranking.ArticleView `json:"articles"`
}

// Handler renders listings from a fresh store snapshot on every request.
type Handler struct {
	store         ports.ArticleStore
	pageSize      int
	loadMoreLimit int
	policy        *bluemonday.Policy
	logger        *slog.Logger
}

// NewHandler wires the store. Non-positive sizes select the defaults.
func NewHandler(store ports.ArticleStore, pageSize, loadMoreLimit int, logger *slog.Logger) *Handler {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if loadMoreLimit <= 0 {
		loadMoreLimit = DefaultLoadMoreLimit
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Handler{
		store:         store,
		pageSize:      pageSize,
		loadMoreLimit: loadMoreLimit,
		policy:        bluemonday.StrictPolicy(),
		logger:        logger,
	}
}

// Index handles GET /?sort=.
func (h *Handler) Index(c echo.Context) error {
	ctx := c.Request().Context()
	order := ranking.ParseOrder(c.QueryParam("sort"))

	articles := h.snapshot(ctx)
	views := h.sanitize(ranking.Sort(articles, order))
	stats := ranking.MediaTrustStats(articles)
	for i := range stats {
		stats[i].Media = h.policy.Sanitize(stats[i].Media)
	}

	return c.JSON(http.StatusOK, IndexResponse{
		Sort:       order,
		Summary:    ranking.Summarize(views),
		MediaStats: stats,
		Articles:   ranking.Paginate(views, 0, h.pageSize),
		Total:      len(views),
	})
}

// LoadMore handles GET /load_more?offset&limit&sort. It never reports an
// error: malformed parameters and store failures produce an empty page,
// which the client reads as the end of the listing.
func (h *Handler) LoadMore(c echo.Context) error {
	ctx := c.Request().Context()

	offset, ok := intParam(c, "offset", 0)
	if !ok {
		return c.JSON(http.StatusOK, PageResponse{Articles: []ranking.ArticleView{}})
	}
	limit, ok := intParam(c, "limit", h.loadMoreLimit)
	if !ok {
		return c.JSON(http.StatusOK, PageResponse{Articles: []ranking.ArticleView{}})
	}
	order := ranking.ParseOrder(c.QueryParam("sort"))

	if offset < 0 || limit <= 0 {
		return c.JSON(http.StatusOK, PageResponse{Articles: []ranking.ArticleView{}})
	}

	views := ranking.Sort(h.snapshot(ctx), order)
	page := h.sanitize(ranking.Paginate(views, offset, limit))
	return c.JSON(http.StatusOK, PageResponse{Articles: page})
}

// Health handles GET /healthz.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) snapshot(ctx context.Context) []domain.Article {
	articles, err := h.store.ListAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "loading article snapshot failed", "error", err)
		return nil
	}
	return articles
}

// sanitize strips markup from scraped text fields; the client inserts them
// into the page as HTML.
func (h *Handler) sanitize(views []ranking.ArticleView) []ranking.ArticleView {
	for i := range views {
		views[i].Title = h.policy.Sanitize(views[i].Title)
		views[i].Media = h.policy.Sanitize(views[i].Media)
	}
	return views
}

func intParam(c echo.Context, name string, fallback int) (int, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
