package scoringdb

import (
	"time"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// DailyScore is one scored calendar day for one artist. The unique index on
// (artist_id, score_date) is what makes the job's upsert idempotent.
type DailyScore struct {
	bun.BaseModel `bun:"table:daily_scores,alias:ds"`

	ID        int64                `bun:"id,pk,autoincrement"`
	ArtistID  sharedtypes.ArtistID `bun:"artist_id,notnull"`
	ScoreDate time.Time            `bun:"score_date,notnull,type:date"`

	// Raw per-platform signal snapshot.
	StreamingStreams    int64   `bun:"streaming_streams"`
	VideoViews          int64   `bun:"video_views"`
	EngagementRate      float64 `bun:"engagement_rate"`
	AnalyticsBuzz       int64   `bun:"analytics_buzz"`
	CrossPlatformSpike  bool    `bun:"cross_platform_spike"`
	NewRelease          bool    `bun:"new_release"`
	ShortVideoFollowers int64   `bun:"short_video_followers"`
	ShortVideoLikes     int64   `bun:"short_video_likes"`
	ShortVideoViews     int64   `bun:"short_video_views"`

	// Per-platform point contributions plus the bonus component.
	Breakdown map[string]int `bun:"breakdown,type:jsonb"`

	TotalScore int `bun:"total_score,notnull"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// BreakdownSum returns the sum of all breakdown components; it must equal
// TotalScore for a valid record.
func (s *DailyScore) BreakdownSum() int {
	var sum int
	for _, v := range s.Breakdown {
		sum += v
	}
	return sum
}
