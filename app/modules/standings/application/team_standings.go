package standingsservice

import (
	"context"
	"sort"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// TeamStandings ranks every team by trailing-week points, descending, ties
// broken by ascending team id, and reports each team's movement against
// the week before.
func (s *StandingsService) TeamStandings(ctx context.Context) ([]TeamStanding, error) {
	teams, err := s.teams.ListAllTeams(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	weekStart := now.AddDate(0, 0, -weeklyWindowDays)
	priorStart := now.AddDate(0, 0, -2*weeklyWindowDays)

	standings := make([]TeamStanding, 0, len(teams))
	for _, team := range teams {
		members, err := s.teams.ListMembers(ctx, team.ID)
		if err != nil {
			return nil, err
		}

		standing := TeamStanding{TeamID: team.ID, UserID: team.UserID, Name: team.Name}

		if len(members) > 0 {
			ids := make([]sharedtypes.ArtistID, len(members))
			for i, m := range members {
				ids[i] = m.ArtistID
			}

			standing.WeekPoints, err = s.scores.TotalInWindow(ctx, ids, weekStart, now.AddDate(0, 0, 1))
			if err != nil {
				return nil, err
			}
			standing.PriorWeek, err = s.scores.TotalInWindow(ctx, ids, priorStart, weekStart)
			if err != nil {
				return nil, err
			}
			standing.WeeklyChange = standing.WeekPoints - standing.PriorWeek
		}

		standings = append(standings, standing)
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].WeekPoints != standings[j].WeekPoints {
			return standings[i].WeekPoints > standings[j].WeekPoints
		}
		return standings[i].TeamID < standings[j].TeamID
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}

	return standings, nil
}
