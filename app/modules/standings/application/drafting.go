package standingsservice

import (
	"context"
	"math"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// GetDraftingPercentage returns what share of teams drafting in the given
// category picked the artist, rounded to a whole percent. Categories nobody
// has drafted in yet yield 0 for every artist.
func (s *StandingsService) GetDraftingPercentage(ctx context.Context, artistID sharedtypes.ArtistID, category sharedtypes.Tier) (int, error) {
	teams, err := s.teams.CountDistinctTeams(ctx, category)
	if err != nil {
		return 0, err
	}
	if teams == 0 {
		return 0, nil
	}

	picks, err := s.teams.CountPicks(ctx, artistID, category)
	if err != nil {
		return 0, err
	}

	return int(math.Round(float64(picks) / float64(teams) * 100)), nil
}
