package standingsservice

import (
	"context"
	"errors"

	standingsdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/standings/infrastructure/repositories"
	teamdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/team/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/attr"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// RecomputeUserPoints refreshes one user's cached standing total by summing
// the all-time score history of every artist on their current roster. Users
// without a team cache a valid zero.
func (s *StandingsService) RecomputeUserPoints(ctx context.Context, userID sharedtypes.UserID) error {
	total := 0

	team, err := s.teams.GetTeamByUser(ctx, userID)
	switch {
	case errors.Is(err, teamdb.ErrTeamNotFound):
		// zero total stands
	case err != nil:
		return err
	default:
		members, err := s.teams.ListMembers(ctx, team.ID)
		if err != nil {
			return err
		}
		if len(members) > 0 {
			ids := make([]sharedtypes.ArtistID, len(members))
			for i, m := range members {
				ids[i] = m.ArtistID
			}
			total, err = s.scores.TotalAllTime(ctx, ids)
			if err != nil {
				return err
			}
		}
	}

	return s.points.UpsertUserPoints(ctx, &standingsdb.UserPoints{
		UserID:      userID,
		TotalPoints: total,
		UpdatedAt:   s.now(),
	})
}

// GetLeaderboard returns the all-time user standings from the cached
// totals, ranked descending with ties broken by ascending user id.
func (s *StandingsService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.points.Leaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = LeaderboardEntry{
			UserID:      row.UserID,
			TotalPoints: row.TotalPoints,
			Rank:        i + 1,
		}
	}
	return entries, nil
}

// RecomputeAllUserPoints refreshes every team owner's cached total. One
// user's failure does not abort the rest; their stale total stands until
// the next pass.
func (s *StandingsService) RecomputeAllUserPoints(ctx context.Context) (RecomputeResult, error) {
	return withTelemetry(s, ctx, "RecomputeAllUserPoints", func(ctx context.Context) (RecomputeResult, error) {
		teams, err := s.teams.ListAllTeams(ctx)
		if err != nil {
			return RecomputeResult{}, err
		}

		recomputed := 0
		for _, team := range teams {
			if err := s.RecomputeUserPoints(ctx, team.UserID); err != nil {
				s.logger.ErrorContext(ctx, "Failed to recompute user points",
					attr.ExtractCorrelationID(ctx),
					attr.UserID("user_id", team.UserID),
					attr.Error(err),
				)
				continue
			}
			recomputed++
		}

		s.logger.InfoContext(ctx, "Standings recompute completed",
			attr.ExtractCorrelationID(ctx),
			attr.Int("users_recomputed", recomputed),
			attr.Int("team_count", len(teams)),
		)

		return RecomputeResult{Success: &RecomputeCompletedPayload{UsersRecomputed: recomputed}}, nil
	})
}
