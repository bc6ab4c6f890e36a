package standingsservice

import (
	"context"
	"time"

	standingsdomain "github.com/Chart-Clash-Club/chartclash-backend/app/modules/standings/domain"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/attr"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// GetRankOnDate returns the artist's rank among all artists scored on the
// given day, plus the rank from the most recent earlier day that has any
// data. Nil is returned when the artist has no record on the requested day.
func (s *StandingsService) GetRankOnDate(ctx context.Context, artistID sharedtypes.ArtistID, date time.Time) (*ArtistRank, error) {
	totals, err := s.scores.TotalsOnDate(ctx, date)
	if err != nil {
		return nil, err
	}

	ranked := standingsdomain.Rank(totals)
	rank, ok := standingsdomain.RankOf(ranked, artistID)
	if !ok {
		return nil, nil
	}

	result := &ArtistRank{
		ArtistID: artistID,
		Date:     date,
		Rank:     rank,
		OutOf:    len(ranked),
	}

	previous, err := s.previousAvailableRank(ctx, artistID, date)
	if err != nil {
		// The current rank is still valid; the delta just degrades to null.
		s.logger.WarnContext(ctx, "Failed to resolve previous rank",
			attr.ExtractCorrelationID(ctx),
			attr.ArtistID("artist_id", artistID),
			attr.Error(err),
		)
	} else {
		result.PreviousRank = previous
		result.RankChange = standingsdomain.RankChange(&rank, previous)
	}

	return result, nil
}

// previousAvailableRank finds the artist's rank on the most recent day
// strictly before `date` that has any records at all, skipping gap days.
// Nil means no prior data exists within the lookback.
func (s *StandingsService) previousAvailableRank(ctx context.Context, artistID sharedtypes.ArtistID, date time.Time) (*int, error) {
	previousDay, found, err := s.scores.LatestDayWithData(ctx, date, s.lookbackDays)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	totals, err := s.scores.TotalsOnDate(ctx, previousDay)
	if err != nil {
		return nil, err
	}

	rank, ok := standingsdomain.RankOf(standingsdomain.Rank(totals), artistID)
	if !ok {
		return nil, nil
	}
	return &rank, nil
}
