// Package ranking derives engagement and risk metrics from stored articles
// and orders them for the dashboard. Everything here is pure: callers load a
// snapshot and every request computes its own view.
package ranking

import "MismatchScanner/internal/domain"

// Thresholds used by the dashboard.
const (
	HighRiskThreshold         = 0.7
	MediumRiskThreshold       = 0.4
	ControversialThreshold    = 2.0
	HighEngagementThreshold   = 20.0
	MediumEngagementThreshold = 10.0

	likeWeight    = 0.3
	commentWeight = 0.7
)

// UnknownMedia labels articles whose outlet was not recorded.
const UnknownMedia = "unknown"

// RiskTier buckets a mismatch probability.
type RiskTier string

// Risk tiers.
const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

// EngagementLevel buckets an engagement score.
type EngagementLevel string

// Engagement levels.
const (
	EngagementLow    EngagementLevel = "low"
	EngagementMedium EngagementLevel = "medium"
	EngagementHigh   EngagementLevel = "high"
)

// EngagementScore weights comments above reactions.
func EngagementScore(likes, comments int) float64 {
	return float64(likes)*likeWeight + float64(comments)*commentWeight
}

// ControversialRatio is comments per reaction. With no reactions the comment
// count itself is returned.
func ControversialRatio(likes, comments int) float64 {
	if likes == 0 {
		return float64(comments)
	}
	return float64(comments) / float64(likes)
}

// IsControversial reports whether ratio reaches ControversialThreshold.
func IsControversial(ratio float64) bool {
	return ratio >= ControversialThreshold
}

// RiskTierOf maps a probability to its tier.
func RiskTierOf(p float64) RiskTier {
	switch {
	case p >= HighRiskThreshold:
		return RiskHigh
	case p >= MediumRiskThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// EngagementLevelOf maps an engagement score to its level.
func EngagementLevelOf(score float64) EngagementLevel {
	switch {
	case score >= HighEngagementThreshold:
		return EngagementHigh
	case score >= MediumEngagementThreshold:
		return EngagementMedium
	default:
		return EngagementLow
	}
}

// ArticleView is an article augmented with its derived metrics.
type ArticleView struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	URL                string          `json:"url"`
	Date               string          `json:"date"`
	Media              string          `json:"media"`
	MismatchProb       float64         `json:"mismatch_prob"`
	Scored             bool            `json:"scored"`
	LikeCount          int             `json:"like_count"`
	CommentCount       int             `json:"comment_count"`
	EngagementScore    float64         `json:"engagement_score"`
	ControversialRatio float64         `json:"controversial_ratio"`
	Controversial      bool            `json:"controversial"`
	RiskTier           RiskTier        `json:"risk_tier"`
	EngagementLevel    EngagementLevel `json:"engagement_level"`
}

// NewView computes the metrics for one article. Unscored articles read as
// probability 0.
func NewView(a domain.Article) ArticleView {
	prob := a.Probability()
	engagement := EngagementScore(a.LikeCount, a.CommentCount)
	ratio := ControversialRatio(a.LikeCount, a.CommentCount)

	return ArticleView{
		ID:                 a.ID,
		Title:              a.Title,
		URL:                a.URL,
		Date:               a.PublishedAt,
		Media:              mediaOf(a),
		MismatchProb:       prob,
		Scored:             a.Scored(),
		LikeCount:          a.LikeCount,
		CommentCount:       a.CommentCount,
		EngagementScore:    engagement,
		ControversialRatio: ratio,
		Controversial:      IsControversial(ratio),
		RiskTier:           RiskTierOf(prob),
		EngagementLevel:    EngagementLevelOf(engagement),
	}
}

func mediaOf(a domain.Article) string {
	if a.Media == "" {
		return UnknownMedia
	}
	return a.Media
}
