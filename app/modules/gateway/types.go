// Package gateway defines the collaborator boundary the scoring and tiering
// pipeline consumes. Concrete platform clients live outside this repository;
// the core only depends on the shapes declared here.
package gateway

import "time"

// TopTrack is one entry of an artist's current top tracks on the streaming
// platform.
type TopTrack struct {
	// Popularity is the platform's 0-100 popularity score.
	Popularity  int
	ReleaseDate time.Time
}

// VideoStats is the view/engagement snapshot for one recent video.
type VideoStats struct {
	Views    int64
	Likes    int64
	Comments int64
}

// AnalyticsSnapshot is the aggregated cross-platform statistics bundle for
// an artist. Zero values mean the provider reported nothing for that signal.
type AnalyticsSnapshot struct {
	MonthlyListeners int64

	// Growth rank percentiles; lower is better. Both below 20 marks a
	// cross-platform spike.
	ListenerGrowthRank   float64
	SubscriberGrowthRank float64

	// Follower counts summed into the classifier's follower total.
	SocialFollowers  int64
	VideoSubscribers int64

	MomentumScore float64

	// Weekly absolute change in monthly listeners.
	WeeklyListenerGrowth int64

	ShortVideoFollowers     int64
	ShortVideoLikes         int64
	ShortVideoTopVideoViews int64
	ShortVideoGrowthRate    float64

	SocialSpikeRatio  float64
	SocialGrowthPct   float64
	ChartPositionJump float64

	// PlaylistReach feeds the playlist-adds-per-day estimate.
	PlaylistReach int64

	EarliestReleaseDate *time.Time
}
