package gateway

import (
	"context"
	"errors"
)

// ErrUnavailable marks a collaborator that could not serve the request.
// Jobs treat it as a recoverable skip, never a hard failure.
var ErrUnavailable = errors.New("metrics collaborator unavailable")

// MetricsGateway supplies raw per-artist platform metrics. Any method may
// return (nil, nil) when the platform simply has nothing for the artist;
// that is not an error.
type MetricsGateway interface {
	FetchTopTracks(ctx context.Context, streamingID string) ([]TopTrack, error)
	FetchRecentVideoStats(ctx context.Context, channelID string) ([]VideoStats, error)
	FetchAnalyticsSnapshot(ctx context.Context, analyticsID string) (*AnalyticsSnapshot, error)
}
