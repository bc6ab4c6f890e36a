package teamservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Chart-Clash-Club/chartclash-backend/app/eventbus"
	teamdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/team/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/attr"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// MaxRosterSize caps how many artists a team can draft.
const MaxRosterSize = 10

// SubmitRoster creates the user's team on first submission, then fully
// replaces its membership. Each member's category is pinned from the
// artist's current tier at submission time; artists never classified fall
// into the baseline category. Teams with a prior roster must pass the
// deployment's lock policy.
func (s *TeamService) SubmitRoster(ctx context.Context, userID sharedtypes.UserID, teamName string, artistIDs []sharedtypes.ArtistID) (SubmitRosterResult, error) {
	return withTelemetry(s, ctx, "SubmitRoster", func(ctx context.Context) (SubmitRosterResult, error) {
		if reason := validateRoster(artistIDs); reason != "" {
			return SubmitRosterResult{Failure: &RosterRejectedPayload{Reason: reason}}, nil
		}

		now := s.now()

		team, err := s.teams.GetTeamByUser(ctx, userID)
		switch {
		case errors.Is(err, teamdb.ErrTeamNotFound):
			team = &teamdb.UserTeam{
				ID:        sharedtypes.TeamID(uuid.NewString()),
				UserID:    userID,
				Name:      teamName,
				CreatedAt: now,
			}
			if err := s.teams.CreateTeam(ctx, team); err != nil {
				return SubmitRosterResult{}, err
			}
		case err != nil:
			return SubmitRosterResult{}, err
		default:
			if err := s.lockPolicy(now, team.CreatedAt, team.RosterUpdatedAt); err != nil {
				s.logger.InfoContext(ctx, "Roster submission rejected by lock policy",
					attr.ExtractCorrelationID(ctx),
					attr.UserID("user_id", userID),
					attr.Error(err),
				)
				return SubmitRosterResult{Failure: &RosterRejectedPayload{Reason: err.Error()}}, nil
			}
		}

		currentTiers, err := s.tiers.CurrentTiers(ctx)
		if err != nil {
			return SubmitRosterResult{}, err
		}

		members := make([]teamdb.TeamMember, 0, len(artistIDs))
		for _, artistID := range artistIDs {
			category, ok := currentTiers[artistID]
			if !ok {
				category = sharedtypes.TierBaseline
			}
			members = append(members, teamdb.TeamMember{
				ID:        uuid.NewString(),
				TeamID:    team.ID,
				ArtistID:  artistID,
				Category:  category,
				DraftedAt: now,
			})
		}

		if err := s.teams.ReplaceRoster(ctx, team.ID, members, now); err != nil {
			return SubmitRosterResult{}, err
		}

		if err := s.eventBus.Publish(ctx, eventbus.SubjectRosterUpdated, eventbus.RosterUpdatedPayload{
			UserID: userID,
			TeamID: team.ID,
		}); err != nil {
			// The roster is committed; the standings recompute catches up on
			// the next scoring day event.
			s.logger.ErrorContext(ctx, "Failed to publish roster updated event",
				attr.ExtractCorrelationID(ctx),
				attr.TeamID("team_id", team.ID),
				attr.Error(err),
			)
		}

		s.logger.InfoContext(ctx, "Roster submitted",
			attr.ExtractCorrelationID(ctx),
			attr.UserID("user_id", userID),
			attr.TeamID("team_id", team.ID),
			attr.Int("member_count", len(members)),
		)

		return SubmitRosterResult{Success: &RosterSubmittedPayload{
			TeamID:      team.ID,
			MemberCount: len(members),
			SubmittedAt: now,
		}}, nil
	})
}

// GetRoster returns the user's team and its members.
func (s *TeamService) GetRoster(ctx context.Context, userID sharedtypes.UserID) (*teamdb.UserTeam, []teamdb.TeamMember, error) {
	team, err := s.teams.GetTeamByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	members, err := s.teams.ListMembers(ctx, team.ID)
	if err != nil {
		return nil, nil, err
	}
	return team, members, nil
}

func validateRoster(artistIDs []sharedtypes.ArtistID) string {
	if len(artistIDs) == 0 {
		return "roster must contain at least one artist"
	}
	if len(artistIDs) > MaxRosterSize {
		return fmt.Sprintf("roster exceeds the %d artist limit", MaxRosterSize)
	}
	seen := make(map[sharedtypes.ArtistID]struct{}, len(artistIDs))
	for _, id := range artistIDs {
		if _, dup := seen[id]; dup {
			return fmt.Sprintf("artist %s listed more than once", id)
		}
		seen[id] = struct{}{}
	}
	return ""
}
