package tieringservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	artistdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/artist/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/modules/gateway"
	scoringdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/scoring/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/observability"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

var tieringNow = time.Date(2026, 8, 30, 6, 0, 0, 0, time.UTC)

func strptr(s string) *string { return &s }

func newTieringTestService(artists *FakeArtistRepository, scores *FakeScoreHistory, tiers *FakeTierRepository, gw *FakeGateway) *TieringService {
	tracer := noop.NewTracerProvider().Tracer("test")
	svc := NewTieringService(artists, scores, tiers, gw,
		observability.NoOpLogger, observability.NoOpMetrics{}, tracer, time.Nanosecond)
	svc.now = func() time.Time { return tieringNow }
	return svc
}

func TestRunWeeklyTiering(t *testing.T) {
	topTierArtist := artistdb.Artist{
		ID:          sharedtypes.ArtistID("artist-legend"),
		Name:        "Legend",
		StreamingID: "sp-1",
		AnalyticsID: strptr("cm-1"),
	}
	quietArtist := artistdb.Artist{
		ID:          sharedtypes.ArtistID("artist-quiet"),
		Name:        "Quiet",
		StreamingID: "sp-2",
		AnalyticsID: strptr("cm-2"),
	}
	unregisteredArtist := artistdb.Artist{
		ID:          sharedtypes.ArtistID("artist-unregistered"),
		Name:        "Unregistered",
		StreamingID: "sp-3",
	}

	snapshots := map[string]*gateway.AnalyticsSnapshot{
		"cm-1": {
			MonthlyListeners: 6_000_000,
			SocialFollowers:  4_000_000,
			VideoSubscribers: 2_000_000,
			MomentumScore:    90,
		},
		"cm-2": {
			MonthlyListeners: 50_000,
			MomentumScore:    10,
		},
	}

	t.Run("classifies artists and skips unusable ones", func(t *testing.T) {
		artists := &FakeArtistRepository{Artists: []artistdb.Artist{topTierArtist, quietArtist, unregisteredArtist}}
		tiers := &FakeTierRepository{}
		gw := &FakeGateway{
			AnalyticsFunc: func(_ context.Context, id string) (*gateway.AnalyticsSnapshot, error) {
				return snapshots[id], nil
			},
		}
		svc := newTieringTestService(artists, &FakeScoreHistory{}, tiers, gw)

		result, err := svc.RunWeeklyTiering(context.Background())
		require.NoError(t, err)
		require.True(t, result.IsSuccess())
		require.Equal(t, 2, result.Success.Classified)
		require.Equal(t, 1, result.Success.Skipped)

		legend, err := tiers.CurrentTier(context.Background(), topTierArtist.ID)
		require.NoError(t, err)
		require.Equal(t, sharedtypes.TierTopTier, legend.Tier)
		require.Equal(t, tieringNow, legend.EvaluatedAt)

		quiet, err := tiers.CurrentTier(context.Background(), quietArtist.ID)
		require.NoError(t, err)
		require.Equal(t, sharedtypes.TierBaseline, quiet.Tier)

		// No analytics id means no collaborator call at all.
		require.NotContains(t, gw.Calls, "")
		require.Len(t, gw.Calls, 2)
	})

	t.Run("nil snapshot skips artist without defaulting a tier", func(t *testing.T) {
		artists := &FakeArtistRepository{Artists: []artistdb.Artist{quietArtist}}
		tiers := &FakeTierRepository{}
		gw := &FakeGateway{
			AnalyticsFunc: func(_ context.Context, id string) (*gateway.AnalyticsSnapshot, error) {
				return nil, nil
			},
		}
		svc := newTieringTestService(artists, &FakeScoreHistory{}, tiers, gw)

		result, err := svc.RunWeeklyTiering(context.Background())
		require.NoError(t, err)
		require.Equal(t, 0, result.Success.Classified)
		require.Equal(t, 1, result.Success.Skipped)
		require.Empty(t, tiers.Assignments)
	})

	t.Run("collaborator error skips artist and continues", func(t *testing.T) {
		artists := &FakeArtistRepository{Artists: []artistdb.Artist{quietArtist, topTierArtist}}
		tiers := &FakeTierRepository{}
		gw := &FakeGateway{
			AnalyticsFunc: func(_ context.Context, id string) (*gateway.AnalyticsSnapshot, error) {
				if id == "cm-2" {
					return nil, gateway.ErrUnavailable
				}
				return snapshots[id], nil
			},
		}
		svc := newTieringTestService(artists, &FakeScoreHistory{}, tiers, gw)

		result, err := svc.RunWeeklyTiering(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1, result.Success.Classified)
		require.Equal(t, 1, result.Success.Skipped)
	})

	t.Run("catalog failure is fatal", func(t *testing.T) {
		artists := &FakeArtistRepository{
			ListAllFunc: func(ctx context.Context) ([]artistdb.Artist, error) {
				return nil, errors.New("catalog unreadable")
			},
		}
		svc := newTieringTestService(artists, &FakeScoreHistory{}, &FakeTierRepository{}, &FakeGateway{})

		_, err := svc.RunWeeklyTiering(context.Background())
		require.Error(t, err)
	})
}

func TestDeriveMetrics(t *testing.T) {
	day := func(offset int) time.Time {
		return time.Date(2026, 8, 30-offset, 0, 0, 0, 0, time.UTC)
	}

	history := &FakeScoreHistory{
		History: map[sharedtypes.ArtistID][]scoringdb.DailyScore{
			"artist-x": {
				{ScoreDate: day(20), StreamingStreams: 100_000, TotalScore: 40},
				{ScoreDate: day(10), StreamingStreams: 200_000, TotalScore: 55},
				{ScoreDate: day(1), StreamingStreams: 300_000, TotalScore: 90},
			},
		},
	}

	release := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	snap := &gateway.AnalyticsSnapshot{
		MonthlyListeners:    800_000,
		SocialFollowers:     100_000,
		VideoSubscribers:    50_000,
		MomentumScore:       42,
		PlaylistReach:       60_000,
		EarliestReleaseDate: &release,
	}

	svc := newTieringTestService(&FakeArtistRepository{}, history, &FakeTierRepository{}, &FakeGateway{})

	metrics, err := svc.deriveMetrics(context.Background(), "artist-x", snap)
	require.NoError(t, err)
	require.Equal(t, int64(800_000), metrics.MonthlyListeners)
	require.Equal(t, int64(150_000), metrics.FollowerTotal)
	require.InDelta(t, 200_000, metrics.AvgDailyStreams30d, 0.001)
	// Net change: latest day total minus earliest day total in the window.
	require.Equal(t, int64(50), metrics.ListenerGrowth30d)
	require.InDelta(t, 2000, metrics.PlaylistAddsPerDay, 0.001)
	require.Equal(t, 4, metrics.MonthsSinceFirstRelease)
}

func TestDeriveMetricsNoHistory(t *testing.T) {
	snap := &gateway.AnalyticsSnapshot{MonthlyListeners: 10}
	svc := newTieringTestService(&FakeArtistRepository{}, &FakeScoreHistory{}, &FakeTierRepository{}, &FakeGateway{})

	metrics, err := svc.deriveMetrics(context.Background(), "artist-y", snap)
	require.NoError(t, err)
	require.Zero(t, metrics.AvgDailyStreams30d)
	require.Zero(t, metrics.ListenerGrowth30d)
	require.Equal(t, unknownReleaseMonths, metrics.MonthsSinceFirstRelease)
}
