package artistdb

import (
	"time"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// Artist is a catalog entry. External platform ids other than the streaming
// id are optional; a nil pointer means the artist has no presence registered
// on that platform and the matching fetch step is skipped entirely.
type Artist struct {
	bun.BaseModel `bun:"table:artists,alias:a"`

	ID   sharedtypes.ArtistID `bun:"id,pk"`
	Name string               `bun:"name,notnull"`

	StreamingID      string  `bun:"streaming_id,notnull"`
	VideoChannelID   *string `bun:"video_channel_id"`
	ShortVideoHandle *string `bun:"short_video_handle"`
	AnalyticsID      *string `bun:"analytics_id"`

	Genres []string `bun:"genres,array"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// HasVideoChannel reports whether a video channel id is registered.
func (a *Artist) HasVideoChannel() bool {
	return a.VideoChannelID != nil && *a.VideoChannelID != ""
}

// HasAnalyticsID reports whether an analytics provider id is registered.
func (a *Artist) HasAnalyticsID() bool {
	return a.AnalyticsID != nil && *a.AnalyticsID != ""
}
