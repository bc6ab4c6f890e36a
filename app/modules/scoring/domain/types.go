// Package scoringdomain holds the pure score calculators. Every function in
// this package is deterministic over its inputs so the daily job and the
// tests exercise identical arithmetic.
package scoringdomain

// StreamingResult is the per-platform outcome for the streaming platform.
type StreamingResult struct {
	Score        int
	Bonus        int
	IsNewRelease bool
	Total        int
}

// VideoResult is the per-platform outcome for the video platform.
type VideoResult struct {
	Score          int
	Bonus          int
	EngagementRate float64
	Total          int

	TotalViews    int64
	TotalLikes    int64
	TotalComments int64
}

// AnalyticsResult is the outcome derived from the aggregated-analytics
// snapshot, including the short-video contribution.
type AnalyticsResult struct {
	BuzzScore          int
	CrossPlatformBonus int
	CrossPlatformSpike bool
	ShortVideoScore    int
	Total              int
}

// Breakdown keys persisted with each daily score record.
const (
	BreakdownStreaming  = "streaming"
	BreakdownVideo      = "video"
	BreakdownAnalytics  = "analytics"
	BreakdownShortVideo = "short_video"
	BreakdownBonus      = "bonus"
)

// CombinedTotal sums the per-platform totals into the value persisted as the
// day's score. Analytics bonus components are already folded into the
// analytics result.
func CombinedTotal(streaming StreamingResult, video VideoResult, analytics AnalyticsResult) int {
	return streaming.Total + video.Total + analytics.Total
}
