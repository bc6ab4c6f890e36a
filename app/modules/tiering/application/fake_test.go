package tieringservice

import (
	"context"
	"time"

	artistdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/artist/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/modules/gateway"
	scoringdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/scoring/infrastructure/repositories"
	tieringdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/tiering/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

type FakeArtistRepository struct {
	Artists     []artistdb.Artist
	ListAllFunc func(ctx context.Context) ([]artistdb.Artist, error)
}

func (f *FakeArtistRepository) ListAll(ctx context.Context) ([]artistdb.Artist, error) {
	if f.ListAllFunc != nil {
		return f.ListAllFunc(ctx)
	}
	return f.Artists, nil
}

func (f *FakeArtistRepository) GetByID(ctx context.Context, id sharedtypes.ArtistID) (*artistdb.Artist, error) {
	return nil, artistdb.ErrArtistNotFound
}

func (f *FakeArtistRepository) Create(ctx context.Context, artist *artistdb.Artist) error { return nil }

func (f *FakeArtistRepository) UpdateExternalIDs(ctx context.Context, artist *artistdb.Artist) error {
	return nil
}

// FakeScoreHistory serves only the history queries the tiering job needs.
type FakeScoreHistory struct {
	History map[sharedtypes.ArtistID][]scoringdb.DailyScore
}

func (f *FakeScoreHistory) UpsertDailyScore(ctx context.Context, score *scoringdb.DailyScore) error {
	return nil
}

func (f *FakeScoreHistory) TotalsOnDate(ctx context.Context, day time.Time) ([]scoringdb.ArtistDayTotal, error) {
	return nil, nil
}

func (f *FakeScoreHistory) LatestDayWithData(ctx context.Context, before time.Time, lookbackDays int) (time.Time, bool, error) {
	return time.Time{}, false, nil
}

func (f *FakeScoreHistory) LatestScore(ctx context.Context, artistID sharedtypes.ArtistID) (*scoringdb.DailyScore, error) {
	return nil, nil
}

func (f *FakeScoreHistory) TotalAllTime(ctx context.Context, artistIDs []sharedtypes.ArtistID) (int, error) {
	return 0, nil
}

func (f *FakeScoreHistory) TotalInWindow(ctx context.Context, artistIDs []sharedtypes.ArtistID, from, to time.Time) (int, error) {
	return 0, nil
}

func (f *FakeScoreHistory) HistoryInWindow(ctx context.Context, artistID sharedtypes.ArtistID, from, to time.Time) ([]scoringdb.DailyScore, error) {
	return f.History[artistID], nil
}

type FakeTierRepository struct {
	Assignments []tieringdb.TierAssignment
	UpsertFunc  func(ctx context.Context, assignment *tieringdb.TierAssignment) error
}

func (f *FakeTierRepository) UpsertAssignment(ctx context.Context, assignment *tieringdb.TierAssignment) error {
	if f.UpsertFunc != nil {
		if err := f.UpsertFunc(ctx, assignment); err != nil {
			return err
		}
	}
	f.Assignments = append(f.Assignments, *assignment)
	return nil
}

func (f *FakeTierRepository) CurrentTier(ctx context.Context, artistID sharedtypes.ArtistID) (*tieringdb.TierAssignment, error) {
	var latest *tieringdb.TierAssignment
	for i := range f.Assignments {
		a := &f.Assignments[i]
		if a.ArtistID != artistID {
			continue
		}
		if latest == nil || a.EvaluatedAt.After(latest.EvaluatedAt) {
			latest = a
		}
	}
	return latest, nil
}

func (f *FakeTierRepository) CurrentTiers(ctx context.Context) (map[sharedtypes.ArtistID]sharedtypes.Tier, error) {
	out := make(map[sharedtypes.ArtistID]sharedtypes.Tier)
	seen := make(map[sharedtypes.ArtistID]time.Time)
	for _, a := range f.Assignments {
		if t, ok := seen[a.ArtistID]; !ok || a.EvaluatedAt.After(t) {
			out[a.ArtistID] = a.Tier
			seen[a.ArtistID] = a.EvaluatedAt
		}
	}
	return out, nil
}

type FakeGateway struct {
	AnalyticsFunc func(ctx context.Context, analyticsID string) (*gateway.AnalyticsSnapshot, error)
	Calls         []string
}

func (f *FakeGateway) FetchTopTracks(ctx context.Context, streamingID string) ([]gateway.TopTrack, error) {
	return nil, nil
}

func (f *FakeGateway) FetchRecentVideoStats(ctx context.Context, channelID string) ([]gateway.VideoStats, error) {
	return nil, nil
}

func (f *FakeGateway) FetchAnalyticsSnapshot(ctx context.Context, analyticsID string) (*gateway.AnalyticsSnapshot, error) {
	f.Calls = append(f.Calls, analyticsID)
	if f.AnalyticsFunc != nil {
		return f.AnalyticsFunc(ctx, analyticsID)
	}
	return nil, nil
}
