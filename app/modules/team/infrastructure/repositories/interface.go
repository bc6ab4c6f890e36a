package teamdb

import (
	"context"
	"time"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// Repository handles team and roster persistence.
type Repository interface {
	GetTeamByUser(ctx context.Context, userID sharedtypes.UserID) (*UserTeam, error)
	CreateTeam(ctx context.Context, team *UserTeam) error
	ListAllTeams(ctx context.Context) ([]UserTeam, error)

	// ReplaceRoster swaps the team's full membership in one transaction
	// and stamps the team's roster change time.
	ReplaceRoster(ctx context.Context, teamID sharedtypes.TeamID, members []TeamMember, updatedAt time.Time) error
	ListMembers(ctx context.Context, teamID sharedtypes.TeamID) ([]TeamMember, error)

	CountPicks(ctx context.Context, artistID sharedtypes.ArtistID, category sharedtypes.Tier) (int, error)
	CountDistinctTeams(ctx context.Context, category sharedtypes.Tier) (int, error)
}
