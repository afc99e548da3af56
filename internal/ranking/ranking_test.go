package ranking

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MismatchScanner/internal/domain"
)

func prob(p float64) *float64 { return &p }

func viewIDs(views []ArticleView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.ID
	}
	return out
}

func TestEngagementScore(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 10.0, EngagementScore(10, 10), 1e-9)
	assert.InDelta(t, 0.3, EngagementScore(1, 0), 1e-9)
	assert.InDelta(t, 0.7, EngagementScore(0, 1), 1e-9)
	assert.Zero(t, EngagementScore(0, 0))
}

func TestControversialRatio(t *testing.T) {
	t.Parallel()

	assert.Zero(t, ControversialRatio(0, 0))
	assert.Equal(t, 5.0, ControversialRatio(0, 5))

	ratio := ControversialRatio(10, 20)
	assert.Equal(t, 2.0, ratio)
	assert.True(t, IsControversial(ratio), "boundary is inclusive")
	assert.False(t, IsControversial(ControversialRatio(10, 19)))
}

func TestRiskTierOf(t *testing.T) {
	t.Parallel()

	cases := map[float64]RiskTier{
		0:     RiskLow,
		0.399: RiskLow,
		0.4:   RiskMedium,
		0.699: RiskMedium,
		0.7:   RiskHigh,
		1:     RiskHigh,
	}
	for p, want := range cases {
		assert.Equal(t, want, RiskTierOf(p), "p=%v", p)
	}
}

func TestEngagementLevelOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, EngagementLow, EngagementLevelOf(9.9))
	assert.Equal(t, EngagementMedium, EngagementLevelOf(10))
	assert.Equal(t, EngagementHigh, EngagementLevelOf(20))
}

func TestNewViewDefaults(t *testing.T) {
	t.Parallel()

	v := NewView(domain.Article{ID: "a", LikeCount: 4, CommentCount: 10})
	assert.Equal(t, UnknownMedia, v.Media)
	assert.False(t, v.Scored)
	assert.Zero(t, v.MismatchProb)
	assert.Equal(t, RiskLow, v.RiskTier)
	assert.InDelta(t, 8.2, v.EngagementScore, 1e-9)
	assert.Equal(t, 2.5, v.ControversialRatio)
	assert.True(t, v.Controversial)
}

func TestMediaTrustStatsScenario(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		{ID: "1", Media: "A", MismatchProbability: prob(0.9)},
		{ID: "2", Media: "A", MismatchProbability: prob(0.7)},
		{ID: "3", Media: "A", MismatchProbability: prob(0.1)},
		{ID: "4", Media: "B", MismatchProbability: prob(0.95)},
		{ID: "5", Media: "B", MismatchProbability: prob(0.8)},
	}

	stats := MediaTrustStats(articles)

	require.Len(t, stats, 1)
	assert.Equal(t, "A", stats[0].Media)
	assert.Equal(t, 3, stats[0].TotalArticles)
	assert.Equal(t, 2, stats[0].HighRiskArticles)
	assert.InDelta(t, 0.667, stats[0].HighRiskRatio, 0.001)
}

func TestMediaTrustStatsNeverReportsSmallOutlets(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	outlets := []string{"A", "B", "C", "D", ""}

	for round := 0; round < 50; round++ {
		n := rng.Intn(20)
		articles := make([]domain.Article, n)
		for i := range articles {
			articles[i] = domain.Article{
				ID:                  fmt.Sprintf("%d-%d", round, i),
				Media:               outlets[rng.Intn(len(outlets))],
				MismatchProbability: prob(rng.Float64()),
			}
		}

		stats := MediaTrustStats(articles)
		for i, s := range stats {
			assert.GreaterOrEqual(t, s.TotalArticles, MinOutletArticles)
			if i > 0 {
				assert.GreaterOrEqual(t, stats[i-1].HighRiskRatio, s.HighRiskRatio)
			}
		}
	}
}

func TestMediaTrustStatsTieBreak(t *testing.T) {
	t.Parallel()

	var articles []domain.Article
	add := func(media string, n int) {
		for i := 0; i < n; i++ {
			articles = append(articles, domain.Article{ID: fmt.Sprintf("%s%d", media, i), Media: media})
		}
	}
	add("Zeta", 3)
	add("Alpha", 3)
	add("Beta", 4)

	stats := MediaTrustStats(articles)

	require.Len(t, stats, 3)
	assert.Equal(t, []string{"Beta", "Alpha", "Zeta"}, []string{stats[0].Media, stats[1].Media, stats[2].Media})
}

func TestSortOrders(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		{ID: "low", MismatchProbability: prob(0.1), LikeCount: 100, PublishedAt: "2025-06-08 09:00:00"},
		{ID: "high", MismatchProbability: prob(0.9), CommentCount: 1, PublishedAt: "2025-06-09 18:00:00"},
		{ID: "unscored", LikeCount: 1, CommentCount: 50, PublishedAt: "not a date"},
		{ID: "mid", MismatchProbability: prob(0.5), PublishedAt: "2025-06-09 08:00:00"},
	}
	snapshot := append([]domain.Article(nil), articles...)

	assert.Equal(t, []string{"high", "mid", "low", "unscored"}, viewIDs(Sort(articles, OrderRisk)))
	assert.Equal(t, []string{"unscored", "low", "mid", "high"}, viewIDs(Sort(articles, OrderSafe)))
	assert.Equal(t, []string{"unscored", "low", "high", "mid"}, viewIDs(Sort(articles, OrderEngagement)))
	assert.Equal(t, []string{"high", "mid", "low", "unscored"}, viewIDs(Sort(articles, OrderLatest)))
	assert.Equal(t, snapshot, articles, "input must not be reordered")
}

func TestSortLatestPutsBadDatesLast(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(11))
	base := []domain.Article{
		{ID: "bad1", PublishedAt: "garbage"},
		{ID: "bad2"},
		{ID: "ok1", PublishedAt: "2024-01-01 00:00:00"},
		{ID: "ok2", PublishedAt: "2025-06-09 10:00:00"},
		{ID: "ok3", PublishedAt: "1999-12-31 23:59:59"},
		{ID: "bad3", PublishedAt: "2025-06-09"},
	}

	for round := 0; round < 20; round++ {
		articles := append([]domain.Article(nil), base...)
		rng.Shuffle(len(articles), func(i, j int) { articles[i], articles[j] = articles[j], articles[i] })

		got := viewIDs(Sort(articles, OrderLatest))
		assert.Equal(t, []string{"ok2", "ok1", "ok3"}, got[:3])
		assert.ElementsMatch(t, []string{"bad1", "bad2", "bad3"}, got[3:])
	}
}

func TestSortLatestBadDatesFollowYearZero(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		{ID: "bad", PublishedAt: "soon"},
		{ID: "year0", PublishedAt: "0000-01-01 00:00:00"},
		{ID: "year1", PublishedAt: "0001-01-01 00:00:00"},
	}

	assert.Equal(t, []string{"year1", "year0", "bad"}, viewIDs(Sort(articles, OrderLatest)))
}

func TestSortIsStableForTies(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		{ID: "a", MismatchProbability: prob(0.5)},
		{ID: "b", MismatchProbability: prob(0.5)},
		{ID: "c", MismatchProbability: prob(0.5)},
	}
	assert.Equal(t, []string{"a", "b", "c"}, viewIDs(Sort(articles, OrderRisk)))
	assert.Equal(t, []string{"a", "b", "c"}, viewIDs(Sort(articles, OrderSafe)))
}

func TestParseOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, OrderSafe, ParseOrder("safe"))
	assert.Equal(t, OrderLatest, ParseOrder(" LATEST "))
	assert.Equal(t, OrderEngagement, ParseOrder("engagement"))
	assert.Equal(t, OrderRisk, ParseOrder(""))
	assert.Equal(t, OrderRisk, ParseOrder("popular"))
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	items := []int{0, 1, 2, 3, 4, 5, 6}
	total := len(items)

	for offset := -1; offset <= total+2; offset++ {
		for limit := -1; limit <= total+2; limit++ {
			page := Paginate(items, offset, limit)
			require.NotNil(t, page)

			switch {
			case offset < 0 || limit <= 0 || offset >= total:
				assert.Empty(t, page, "offset=%d limit=%d", offset, limit)
			default:
				assert.Len(t, page, min(limit, total-offset), "offset=%d limit=%d", offset, limit)
				assert.Equal(t, offset, page[0])
			}
		}
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	views := Sort([]domain.Article{
		{ID: "1", MismatchProbability: prob(0.8), LikeCount: 10, CommentCount: 30},
		{ID: "2", MismatchProbability: prob(0.2), LikeCount: 5, CommentCount: 5},
	}, OrderRisk)

	s := Summarize(views)
	assert.Equal(t, 2, s.TotalArticles)
	assert.Equal(t, 1, s.HighMismatchCount)
	assert.InDelta(t, 50.0, s.AvgMismatchPercent, 1e-9)
	assert.Equal(t, 15, s.TotalLikes)
	assert.Equal(t, 35, s.TotalComments)
	assert.InDelta(t, (24.0+5.0)/2, s.AvgEngagement, 1e-9)
	assert.Equal(t, 1, s.HighEngagementCount)
	assert.Equal(t, 1, s.ControversialCount)

	assert.Equal(t, Summary{}, Summarize(nil))
}
