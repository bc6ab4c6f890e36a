package gateway

import (
	"context"
	"errors"
	"time"
)

// WithTimeout decorates a MetricsGateway with a per-call deadline so one
// stalled collaborator can never hold up a whole job cycle. Deadline
// expiry surfaces as ErrUnavailable.
func WithTimeout(inner MetricsGateway, timeout time.Duration) MetricsGateway {
	return &timeoutGateway{inner: inner, timeout: timeout}
}

type timeoutGateway struct {
	inner   MetricsGateway
	timeout time.Duration
}

func (g *timeoutGateway) FetchTopTracks(ctx context.Context, streamingID string) ([]TopTrack, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	tracks, err := g.inner.FetchTopTracks(ctx, streamingID)
	return tracks, mapDeadline(err)
}

func (g *timeoutGateway) FetchRecentVideoStats(ctx context.Context, channelID string) ([]VideoStats, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	stats, err := g.inner.FetchRecentVideoStats(ctx, channelID)
	return stats, mapDeadline(err)
}

func (g *timeoutGateway) FetchAnalyticsSnapshot(ctx context.Context, analyticsID string) (*AnalyticsSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	snap, err := g.inner.FetchAnalyticsSnapshot(ctx, analyticsID)
	return snap, mapDeadline(err)
}

func mapDeadline(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrUnavailable
	}
	return err
}

// Unconfigured is the gateway used when no collaborator credentials are
// wired; every fetch reports the platform as unavailable.
type Unconfigured struct{}

func (Unconfigured) FetchTopTracks(context.Context, string) ([]TopTrack, error) {
	return nil, ErrUnavailable
}

func (Unconfigured) FetchRecentVideoStats(context.Context, string) ([]VideoStats, error) {
	return nil, ErrUnavailable
}

func (Unconfigured) FetchAnalyticsSnapshot(context.Context, string) (*AnalyticsSnapshot, error) {
	return nil, ErrUnavailable
}
