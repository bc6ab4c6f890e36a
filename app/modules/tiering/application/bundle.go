package tieringservice

import (
	"context"
	"time"

	"github.com/Chart-Clash-Club/chartclash-backend/app/modules/gateway"
	tieringdomain "github.com/Chart-Clash-Club/chartclash-backend/app/modules/tiering/domain"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

const trailingWindowDays = 30

// Artists with no known first release are treated as long-established so
// they can never satisfy the emerging bracket by accident.
const unknownReleaseMonths = 999

// deriveMetrics builds the classifier bundle from the analytics snapshot
// plus two rolling aggregates over local score history: the average daily
// streaming value and the net combined-score change across the trailing
// 30 days.
func (s *TieringService) deriveMetrics(ctx context.Context, artistID sharedtypes.ArtistID, snap *gateway.AnalyticsSnapshot) (tieringdomain.ArtistMetrics, error) {
	now := s.now()

	metrics := tieringdomain.ArtistMetrics{
		MonthlyListeners:        snap.MonthlyListeners,
		FollowerTotal:           snap.SocialFollowers + snap.VideoSubscribers,
		MomentumScore:           snap.MomentumScore,
		WeeklyStreamGrowth:      snap.WeeklyListenerGrowth,
		ShortVideoGrowthRate:    snap.ShortVideoGrowthRate,
		SocialSpikeRatio:        snap.SocialSpikeRatio,
		ChartPositionJump:       snap.ChartPositionJump,
		PlaylistAddsPerDay:      float64(snap.PlaylistReach) / trailingWindowDays,
		SocialGrowthPct:         snap.SocialGrowthPct,
		MonthsSinceFirstRelease: unknownReleaseMonths,
	}

	if snap.EarliestReleaseDate != nil {
		metrics.MonthsSinceFirstRelease = monthsSince(*snap.EarliestReleaseDate, now)
	}

	history, err := s.scores.HistoryInWindow(ctx, artistID, now.AddDate(0, 0, -trailingWindowDays), now.AddDate(0, 0, 1))
	if err != nil {
		return tieringdomain.ArtistMetrics{}, err
	}
	if len(history) > 0 {
		var streamSum int64
		for _, rec := range history {
			streamSum += rec.StreamingStreams
		}
		metrics.AvgDailyStreams30d = float64(streamSum) / float64(len(history))
		metrics.ListenerGrowth30d = int64(history[len(history)-1].TotalScore - history[0].TotalScore)
	}

	return metrics, nil
}

func monthsSince(then, now time.Time) int {
	months := (now.Year()-then.Year())*12 + int(now.Month()) - int(then.Month())
	if months < 0 {
		return 0
	}
	return months
}
