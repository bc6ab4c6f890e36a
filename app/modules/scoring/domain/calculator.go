package scoringdomain

import (
	"math"
	"time"

	"github.com/Chart-Clash-Club/chartclash-backend/app/modules/gateway"
)

const (
	newReleaseWindow = 7 * 24 * time.Hour
	newReleaseBonus  = 15

	videoViewsPerPoint  = 100_000
	videoPointsPerBlock = 10
	engagementThreshold = 10.0
	engagementBonus     = 5

	buzzHighThreshold = 1_000_000
	buzzLowThreshold  = 100_000
	buzzHighScore     = 10
	buzzLowScore      = 5

	spikeRankCeiling   = 20.0
	crossPlatformBonus = 30

	shortVideoFollowerBlock = 100_000
	shortVideoLikeBlock     = 1_000_000
	shortVideoViewThreshold = 100_000
)

// ComputeStreamingScore scores an artist's current top tracks: one point per
// ten popularity points per track, plus a single flat bonus when any track
// was released within the last seven days (inclusive). Empty input yields a
// zero result.
func ComputeStreamingScore(tracks []gateway.TopTrack, now time.Time) StreamingResult {
	var result StreamingResult
	for _, track := range tracks {
		if track.Popularity > 0 {
			result.Score += track.Popularity / 10
		}
		if !track.ReleaseDate.IsZero() && now.Sub(track.ReleaseDate) <= newReleaseWindow {
			result.IsNewRelease = true
		}
	}
	if result.IsNewRelease {
		result.Bonus = newReleaseBonus
	}
	result.Total = result.Score + result.Bonus
	return result
}

// ComputeVideoScore scores recent video stats. The engagement rate is
// (likes+comments)/views*100 rounded to two decimals, or zero when there are
// no views at all.
func ComputeVideoScore(stats []gateway.VideoStats) VideoResult {
	var result VideoResult
	for _, stat := range stats {
		result.TotalViews += stat.Views
		result.TotalLikes += stat.Likes
		result.TotalComments += stat.Comments
	}

	if result.TotalViews > 0 {
		rate := float64(result.TotalLikes+result.TotalComments) / float64(result.TotalViews) * 100
		result.EngagementRate = math.Round(rate*100) / 100
	}

	result.Score = int(result.TotalViews/videoViewsPerPoint) * videoPointsPerBlock
	if result.EngagementRate > engagementThreshold {
		result.Bonus = engagementBonus
	}
	result.Total = result.Score + result.Bonus
	return result
}

// ComputeAnalyticsScore derives the buzz, cross-platform-spike, and
// short-video contributions from an analytics snapshot. A nil snapshot
// yields a zero result.
func ComputeAnalyticsScore(snap *gateway.AnalyticsSnapshot) AnalyticsResult {
	var result AnalyticsResult
	if snap == nil {
		return result
	}

	switch {
	case snap.MonthlyListeners > buzzHighThreshold:
		result.BuzzScore = buzzHighScore
	case snap.MonthlyListeners > buzzLowThreshold:
		result.BuzzScore = buzzLowScore
	}

	// Lower rank percentile means faster growth; both platforms surging at
	// once is the cross-platform spike.
	if snap.ListenerGrowthRank < spikeRankCeiling && snap.SubscriberGrowthRank < spikeRankCeiling {
		result.CrossPlatformSpike = true
		result.CrossPlatformBonus = crossPlatformBonus
	}

	result.ShortVideoScore = int(snap.ShortVideoFollowers/shortVideoFollowerBlock)*10 +
		int(snap.ShortVideoLikes/shortVideoLikeBlock)*5
	if snap.ShortVideoTopVideoViews > shortVideoViewThreshold {
		result.ShortVideoScore += 10
	}

	result.Total = result.BuzzScore + result.CrossPlatformBonus + result.ShortVideoScore
	return result
}
