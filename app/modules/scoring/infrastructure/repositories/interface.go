package scoringdb

import (
	"context"
	"time"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// ArtistDayTotal is the summed score for one artist on one day, the unit the
// rank engine consumes.
type ArtistDayTotal struct {
	ArtistID sharedtypes.ArtistID
	Total    int
}

// Repository is the daily score access contract. ScoreDate arguments are
// truncated to the UTC calendar day before querying.
type Repository interface {
	// UpsertDailyScore writes the record for (artist, day), overwriting any
	// prior record for the same key. Re-running a job for the same day must
	// leave exactly one row with the latest values.
	UpsertDailyScore(ctx context.Context, score *DailyScore) error

	// TotalsOnDate sums records per artist within the given UTC calendar
	// day. Multiple partial rows for one artist merge by summation.
	TotalsOnDate(ctx context.Context, day time.Time) ([]ArtistDayTotal, error)

	// LatestDayWithData returns the most recent calendar day strictly before
	// `before` that has at least one record globally, bounded by the
	// lookback. The bool result is false when no such day exists.
	LatestDayWithData(ctx context.Context, before time.Time, lookbackDays int) (time.Time, bool, error)

	// LatestScore returns the most recent record for an artist, or nil when
	// the artist has no history.
	LatestScore(ctx context.Context, artistID sharedtypes.ArtistID) (*DailyScore, error)

	// TotalAllTime sums total_score over all history for the given artists.
	TotalAllTime(ctx context.Context, artistIDs []sharedtypes.ArtistID) (int, error)

	// TotalInWindow sums total_score for the given artists for days in
	// [from, to).
	TotalInWindow(ctx context.Context, artistIDs []sharedtypes.ArtistID, from, to time.Time) (int, error)

	// HistoryInWindow returns an artist's records with score_date in
	// [from, to), ordered by day ascending.
	HistoryInWindow(ctx context.Context, artistID sharedtypes.ArtistID, from, to time.Time) ([]DailyScore, error)
}
