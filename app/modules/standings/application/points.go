package standingsservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	teamdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/team/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

const (
	weeklyWindowDays  = 7
	monthlyWindowDays = 30
)

// GetUserPointsBreakdown returns the user's point total for the timeframe
// with per-artist contributions. Daily means each artist's single most
// recent scored day; weekly and monthly sum records inside the trailing
// window; all sums the entire history. A user without a team gets a valid
// zero breakdown, never an error.
func (s *StandingsService) GetUserPointsBreakdown(ctx context.Context, userID sharedtypes.UserID, timeframe sharedtypes.Timeframe) (*PointsBreakdown, error) {
	if !timeframe.Valid() {
		return nil, fmt.Errorf("unknown timeframe %q", timeframe)
	}

	breakdown := &PointsBreakdown{UserID: userID, Timeframe: timeframe}

	team, err := s.teams.GetTeamByUser(ctx, userID)
	if errors.Is(err, teamdb.ErrTeamNotFound) {
		return breakdown, nil
	}
	if err != nil {
		return nil, err
	}

	members, err := s.teams.ListMembers(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for _, member := range members {
		points, err := s.artistPoints(ctx, member.ArtistID, timeframe, now)
		if err != nil {
			return nil, err
		}
		breakdown.Artists = append(breakdown.Artists, ArtistPoints{ArtistID: member.ArtistID, Points: points})
		breakdown.Total += points
	}

	return breakdown, nil
}

func (s *StandingsService) artistPoints(ctx context.Context, artistID sharedtypes.ArtistID, timeframe sharedtypes.Timeframe, now time.Time) (int, error) {
	ids := []sharedtypes.ArtistID{artistID}

	switch timeframe {
	case sharedtypes.TimeframeDaily:
		latest, err := s.scores.LatestScore(ctx, artistID)
		if err != nil {
			return 0, err
		}
		if latest == nil {
			return 0, nil
		}
		return latest.TotalScore, nil
	case sharedtypes.TimeframeWeekly:
		return s.scores.TotalInWindow(ctx, ids, now.AddDate(0, 0, -weeklyWindowDays), now.AddDate(0, 0, 1))
	case sharedtypes.TimeframeMonthly:
		return s.scores.TotalInWindow(ctx, ids, now.AddDate(0, 0, -monthlyWindowDays), now.AddDate(0, 0, 1))
	default:
		return s.scores.TotalAllTime(ctx, ids)
	}
}
