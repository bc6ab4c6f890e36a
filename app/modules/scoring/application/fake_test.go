package scoringservice

import (
	"context"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	artistdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/artist/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/modules/gateway"
	scoringdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/scoring/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// ------------------------
// Fake Artist Repo
// ------------------------

// FakeArtistRepository provides a programmable stub for the artistdb
// Repository interface.
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
	for i := range f.Artists {
		if f.Artists[i].ID == id {
			return &f.Artists[i], nil
		}
	}
	return nil, artistdb.ErrArtistNotFound
}

func (f *FakeArtistRepository) Create(ctx context.Context, artist *artistdb.Artist) error {
	f.Artists = append(f.Artists, *artist)
	return nil
}

func (f *FakeArtistRepository) UpdateExternalIDs(ctx context.Context, artist *artistdb.Artist) error {
	return nil
}

// ------------------------
// Fake Scoring Repo
// ------------------------

type scoreKey struct {
	artistID sharedtypes.ArtistID
	day      time.Time
}

// FakeScoringRepository stores records keyed by (artist, day) so tests can
// assert upsert idempotence directly.
type FakeScoringRepository struct {
	mu      sync.Mutex
	Records map[scoreKey]*scoringdb.DailyScore
	Upserts int

	UpsertFunc func(ctx context.Context, score *scoringdb.DailyScore) error
}

func NewFakeScoringRepository() *FakeScoringRepository {
	return &FakeScoringRepository{Records: make(map[scoreKey]*scoringdb.DailyScore)}
}

func (f *FakeScoringRepository) UpsertDailyScore(ctx context.Context, score *scoringdb.DailyScore) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Upserts++
	if f.UpsertFunc != nil {
		if err := f.UpsertFunc(ctx, score); err != nil {
			return err
		}
	}
	clone := *score
	clone.ScoreDate = scoringdb.Day(score.ScoreDate)
	f.Records[scoreKey{score.ArtistID, clone.ScoreDate}] = &clone
	return nil
}

func (f *FakeScoringRepository) Record(artistID sharedtypes.ArtistID, day time.Time) *scoringdb.DailyScore {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Records[scoreKey{artistID, scoringdb.Day(day)}]
}

func (f *FakeScoringRepository) TotalsOnDate(ctx context.Context, day time.Time) ([]scoringdb.ArtistDayTotal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	day = scoringdb.Day(day)
	var totals []scoringdb.ArtistDayTotal
	for key, rec := range f.Records {
		if key.day.Equal(day) {
			totals = append(totals, scoringdb.ArtistDayTotal{ArtistID: rec.ArtistID, Total: rec.TotalScore})
		}
	}
	return totals, nil
}

func (f *FakeScoringRepository) LatestDayWithData(ctx context.Context, before time.Time, lookbackDays int) (time.Time, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	day := scoringdb.Day(before)
	floor := day.AddDate(0, 0, -lookbackDays)
	var latest time.Time
	for key := range f.Records {
		if key.day.Before(day) && !key.day.Before(floor) && key.day.After(latest) {
			latest = key.day
		}
	}
	return latest, !latest.IsZero(), nil
}

func (f *FakeScoringRepository) LatestScore(ctx context.Context, artistID sharedtypes.ArtistID) (*scoringdb.DailyScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *scoringdb.DailyScore
	for key, rec := range f.Records {
		if key.artistID != artistID {
			continue
		}
		if latest == nil || rec.ScoreDate.After(latest.ScoreDate) {
			latest = rec
		}
	}
	return latest, nil
}

func (f *FakeScoringRepository) TotalAllTime(ctx context.Context, artistIDs []sharedtypes.ArtistID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total int
	for _, id := range artistIDs {
		for key, rec := range f.Records {
			if key.artistID == id {
				total += rec.TotalScore
			}
		}
	}
	return total, nil
}

func (f *FakeScoringRepository) TotalInWindow(ctx context.Context, artistIDs []sharedtypes.ArtistID, from, to time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	from, to = scoringdb.Day(from), scoringdb.Day(to)
	var total int
	for _, id := range artistIDs {
		for key, rec := range f.Records {
			if key.artistID == id && !key.day.Before(from) && key.day.Before(to) {
				total += rec.TotalScore
			}
		}
	}
	return total, nil
}

func (f *FakeScoringRepository) HistoryInWindow(ctx context.Context, artistID sharedtypes.ArtistID, from, to time.Time) ([]scoringdb.DailyScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	from, to = scoringdb.Day(from), scoringdb.Day(to)
	var out []scoringdb.DailyScore
	for key, rec := range f.Records {
		if key.artistID == artistID && !key.day.Before(from) && key.day.Before(to) {
			out = append(out, *rec)
		}
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].ScoreDate.Before(out[i].ScoreDate) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

// ------------------------
// Fake Gateway
// ------------------------

// FakeGateway programs per-platform responses per external id.
type FakeGateway struct {
	TopTracksFunc  func(ctx context.Context, streamingID string) ([]gateway.TopTrack, error)
	VideoStatsFunc func(ctx context.Context, channelID string) ([]gateway.VideoStats, error)
	AnalyticsFunc  func(ctx context.Context, analyticsID string) (*gateway.AnalyticsSnapshot, error)
}

func (f *FakeGateway) FetchTopTracks(ctx context.Context, streamingID string) ([]gateway.TopTrack, error) {
	if f.TopTracksFunc != nil {
		return f.TopTracksFunc(ctx, streamingID)
	}
	return nil, nil
}

func (f *FakeGateway) FetchRecentVideoStats(ctx context.Context, channelID string) ([]gateway.VideoStats, error) {
	if f.VideoStatsFunc != nil {
		return f.VideoStatsFunc(ctx, channelID)
	}
	return nil, nil
}

func (f *FakeGateway) FetchAnalyticsSnapshot(ctx context.Context, analyticsID string) (*gateway.AnalyticsSnapshot, error) {
	if f.AnalyticsFunc != nil {
		return f.AnalyticsFunc(ctx, analyticsID)
	}
	return nil, nil
}

// ------------------------
// Fake Event Bus
// ------------------------

type publishedEvent struct {
	Subject string
	Payload any
}

type FakeEventBus struct {
	mu        sync.Mutex
	Published []publishedEvent
	PublishFn func(ctx context.Context, subject string, payload any) error
}

func (f *FakeEventBus) Publish(ctx context.Context, subject string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Published = append(f.Published, publishedEvent{subject, payload})
	if f.PublishFn != nil {
		return f.PublishFn(ctx, subject, payload)
	}
	return nil
}

func (f *FakeEventBus) Subscribe(ctx context.Context, subject string, handler func(ctx context.Context, msg *message.Message) error) error {
	return nil
}

func (f *FakeEventBus) Close() error { return nil }
