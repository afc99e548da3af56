package ranking

// Summary holds the dashboard header figures.
type Summary struct {
	TotalArticles       int     `json:"total_articles"`
	HighMismatchCount   int     `json:"high_mismatch_count"`
	AvgMismatchPercent  float64 `json:"avg_mismatch"`
	TotalLikes          int     `json:"total_likes"`
	TotalComments       int     `json:"total_comments"`
	AvgEngagement       float64 `json:"avg_engagement"`
	HighEngagementCount int     `json:"high_engagement_count"`
	ControversialCount  int     `json:"controversial_count"`
}

// Summarize aggregates header figures over the full set of views.
func Summarize(views []ArticleView) Summary {
	s := Summary{TotalArticles: len(views)}
	if len(views) == 0 {
		return s
	}

	var probSum, engagementSum float64
	for _, v := range views {
		probSum += v.MismatchProb
		engagementSum += v.EngagementScore
		s.TotalLikes += v.LikeCount
		s.TotalComments += v.CommentCount
		if v.RiskTier == RiskHigh {
			s.HighMismatchCount++
		}
		if v.EngagementScore >= HighEngagementThreshold {
			s.HighEngagementCount++
		}
		if v.Controversial {
			s.ControversialCount++
		}
	}

	n := float64(len(views))
	s.AvgMismatchPercent = probSum / n * 100
	s.AvgEngagement = engagementSum / n
	return s
}
