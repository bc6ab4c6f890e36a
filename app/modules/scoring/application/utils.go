package scoringservice

import (
	"time"

	"github.com/Chart-Clash-Club/chartclash-backend/app/modules/gateway"
	scoringdomain "github.com/Chart-Clash-Club/chartclash-backend/app/modules/scoring/domain"
	scoringdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/scoring/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// buildDailyScore assembles the persisted record from the per-platform
// results and the raw snapshot. The breakdown components always sum to
// TotalScore.
func buildDailyScore(
	artistID sharedtypes.ArtistID,
	day time.Time,
	streaming scoringdomain.StreamingResult,
	video scoringdomain.VideoResult,
	analytics scoringdomain.AnalyticsResult,
	snap *gateway.AnalyticsSnapshot,
) *scoringdb.DailyScore {
	record := &scoringdb.DailyScore{
		ArtistID:           artistID,
		ScoreDate:          day,
		VideoViews:         video.TotalViews,
		EngagementRate:     video.EngagementRate,
		CrossPlatformSpike: analytics.CrossPlatformSpike,
		NewRelease:         streaming.IsNewRelease,
		Breakdown: map[string]int{
			scoringdomain.BreakdownStreaming:  streaming.Score,
			scoringdomain.BreakdownVideo:      video.Score,
			scoringdomain.BreakdownAnalytics:  analytics.BuzzScore + analytics.CrossPlatformBonus,
			scoringdomain.BreakdownShortVideo: analytics.ShortVideoScore,
			scoringdomain.BreakdownBonus:      streaming.Bonus + video.Bonus,
		},
		TotalScore: scoringdomain.CombinedTotal(streaming, video, analytics),
	}

	if snap != nil {
		record.StreamingStreams = snap.MonthlyListeners
		record.AnalyticsBuzz = snap.MonthlyListeners
		record.ShortVideoFollowers = snap.ShortVideoFollowers
		record.ShortVideoLikes = snap.ShortVideoLikes
		record.ShortVideoViews = snap.ShortVideoTopVideoViews
	}

	return record
}
