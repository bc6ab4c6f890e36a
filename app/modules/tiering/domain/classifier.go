// Package tieringdomain classifies artists into competitive tiers from a
// derived metrics bundle. Classification is a pure function evaluated
// top-down with first-match-wins ordering.
package tieringdomain

import "github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"

// ArtistMetrics is the derived bundle the classifier evaluates. It mixes
// collaborator-supplied signals with two rolling aggregates computed from
// local score history.
type ArtistMetrics struct {
	MonthlyListeners int64
	FollowerTotal    int64
	MomentumScore    float64

	// Absolute weekly change in monthly listeners.
	WeeklyStreamGrowth int64

	ShortVideoGrowthRate float64
	SocialSpikeRatio     float64
	ChartPositionJump    float64

	// Net change in combined score over the trailing 30 days.
	ListenerGrowth30d int64

	MonthsSinceFirstRelease int
	PlaylistAddsPerDay      float64
	SocialGrowthPct         float64

	// Average daily streaming value over the trailing 30 days. Carried for
	// reporting; not a classification input in the current brackets.
	AvgDailyStreams30d float64
}

const (
	topTierListeners = 5_000_000
	topTierFollowers = 5_000_000
	momentumCutoff   = 70.0

	risingStreamGrowth     = 500_000
	risingShortVideoGrowth = 0.02
	risingSocialSpike      = 0.25
	risingChartJump        = 5.0

	emergingListenerCeiling = 1_000_000
	emergingGrowth30d       = 1_000_000
	emergingReleaseMonths   = 6
	emergingPlaylistAdds    = 1000.0
	emergingSocialGrowth    = 0.10
)

// Classify maps a metrics bundle to a tier. Brackets are checked in order;
// an artist satisfying the top-tier criteria is never evaluated against the
// later brackets.
func Classify(m ArtistMetrics) sharedtypes.Tier {
	if m.MonthlyListeners > topTierListeners &&
		m.FollowerTotal > topTierFollowers &&
		m.MomentumScore > momentumCutoff {
		return sharedtypes.TierTopTier
	}

	if m.WeeklyStreamGrowth >= risingStreamGrowth ||
		m.ShortVideoGrowthRate >= risingShortVideoGrowth ||
		m.MomentumScore > momentumCutoff ||
		m.SocialSpikeRatio >= risingSocialSpike ||
		m.ChartPositionJump >= risingChartJump {
		return sharedtypes.TierRising
	}

	if m.MonthlyListeners < emergingListenerCeiling &&
		m.ListenerGrowth30d >= emergingGrowth30d &&
		m.MonthsSinceFirstRelease <= emergingReleaseMonths &&
		m.PlaylistAddsPerDay >= emergingPlaylistAdds &&
		m.SocialGrowthPct >= emergingSocialGrowth {
		return sharedtypes.TierEmerging
	}

	return sharedtypes.TierBaseline
}
