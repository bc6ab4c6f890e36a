package standingsservice

import (
	"context"
	"sort"

	standingsdomain "github.com/Chart-Clash-Club/chartclash-backend/app/modules/standings/domain"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// TrendingMovers compares the latest scored day to the scored day before it
// and returns the biggest score climbers, ties broken by ascending artist
// id. Artists absent on the earlier day count from zero. An empty slice is
// returned when fewer than one scored day exists.
func (s *StandingsService) TrendingMovers(ctx context.Context, limit int) ([]TrendingMover, error) {
	if limit <= 0 {
		limit = 10
	}

	now := s.now()

	latestDay, found, err := s.scores.LatestDayWithData(ctx, now.AddDate(0, 0, 1), s.lookbackDays)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	latest, err := s.scores.TotalsOnDate(ctx, latestDay)
	if err != nil {
		return nil, err
	}

	previous := make(map[sharedtypes.ArtistID]int)
	previousDay, found, err := s.scores.LatestDayWithData(ctx, latestDay, s.lookbackDays)
	if err != nil {
		return nil, err
	}
	if found {
		previousTotals, err := s.scores.TotalsOnDate(ctx, previousDay)
		if err != nil {
			return nil, err
		}
		for _, t := range previousTotals {
			previous[t.ArtistID] = t.Total
		}
	}

	movers := make([]TrendingMover, 0, len(latest))
	for _, t := range latest {
		prior := previous[t.ArtistID]
		movers = append(movers, TrendingMover{
			ArtistID: t.ArtistID,
			Today:    t.Total,
			Previous: prior,
			Delta:    t.Total - prior,
		})
	}

	sort.Slice(movers, func(i, j int) bool {
		if movers[i].Delta != movers[j].Delta {
			return movers[i].Delta > movers[j].Delta
		}
		return movers[i].ArtistID < movers[j].ArtistID
	})

	if len(movers) > limit {
		movers = movers[:limit]
	}
	return movers, nil
}

// RankMovers returns the artists that climbed the most positions between
// the two most recent scored days. Artists missing a rank on either day are
// excluded rather than treated as rank zero.
func (s *StandingsService) RankMovers(ctx context.Context, limit int) ([]RankMover, error) {
	if limit <= 0 {
		limit = 10
	}

	now := s.now()

	latestDay, found, err := s.scores.LatestDayWithData(ctx, now.AddDate(0, 0, 1), s.lookbackDays)
	if err != nil || !found {
		return nil, err
	}
	previousDay, found, err := s.scores.LatestDayWithData(ctx, latestDay, s.lookbackDays)
	if err != nil || !found {
		return nil, err
	}

	latestTotals, err := s.scores.TotalsOnDate(ctx, latestDay)
	if err != nil {
		return nil, err
	}
	previousTotals, err := s.scores.TotalsOnDate(ctx, previousDay)
	if err != nil {
		return nil, err
	}

	previousRanked := standingsdomain.Rank(previousTotals)

	var movers []RankMover
	for _, current := range standingsdomain.Rank(latestTotals) {
		previous, ok := standingsdomain.RankOf(previousRanked, current.ArtistID)
		if !ok {
			continue
		}
		movers = append(movers, RankMover{
			ArtistID:     current.ArtistID,
			CurrentRank:  current.Rank,
			PreviousRank: previous,
			Movement:     previous - current.Rank,
		})
	}

	sort.Slice(movers, func(i, j int) bool {
		if movers[i].Movement != movers[j].Movement {
			return movers[i].Movement > movers[j].Movement
		}
		return movers[i].ArtistID < movers[j].ArtistID
	})

	if len(movers) > limit {
		movers = movers[:limit]
	}
	return movers, nil
}
