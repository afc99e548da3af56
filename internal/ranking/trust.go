package ranking

import (
	"cmp"
	"slices"

	"MismatchScanner/internal/domain"
)

// MinOutletArticles is the smallest sample an outlet needs to be reported.
const MinOutletArticles = 3

// MediaTrustStat summarises how often one outlet publishes high-risk articles.
type MediaTrustStat struct {
	Media            string  `json:"media"`
	TotalArticles    int     `json:"total_articles"`
	HighRiskArticles int     `json:"high_risk_articles"`
	HighRiskRatio    float64 `json:"high_risk_ratio"`
}

// MediaTrustStats groups articles by outlet, drops outlets with fewer than
// MinOutletArticles articles and sorts by high-risk ratio, highest first.
// Ties go to the outlet with more articles, then by name.
func MediaTrustStats(articles []domain.Article) []MediaTrustStat {
	byMedia := make(map[string]*MediaTrustStat)
	for _, a := range articles {
		media := mediaOf(a)
		stat, ok := byMedia[media]
		if !ok {
			stat = &MediaTrustStat{Media: media}
			byMedia[media] = stat
		}
		stat.TotalArticles++
		if a.Probability() >= HighRiskThreshold {
			stat.HighRiskArticles++
		}
	}

	out := make([]MediaTrustStat, 0, len(byMedia))
	for _, stat := range byMedia {
		if stat.TotalArticles < MinOutletArticles {
			continue
		}
		stat.HighRiskRatio = float64(stat.HighRiskArticles) / float64(stat.TotalArticles)
		out = append(out, *stat)
	}

	slices.SortFunc(out, func(a, b MediaTrustStat) int {
		if c := cmp.Compare(b.HighRiskRatio, a.HighRiskRatio); c != 0 {
			return c
		}
		if c := cmp.Compare(b.TotalArticles, a.TotalArticles); c != 0 {
			return c
		}
		return cmp.Compare(a.Media, b.Media)
	})
	return out
}
