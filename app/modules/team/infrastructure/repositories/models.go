package teamdb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// UserTeam is a user's single active team. RosterUpdatedAt is nil until the
// roster is resubmitted for the first time; lock policies key off it.
type UserTeam struct {
	bun.BaseModel `bun:"table:user_teams,alias:ut"`

	ID              sharedtypes.TeamID `bun:"id,pk"`
	UserID          sharedtypes.UserID `bun:"user_id,notnull,unique"`
	Name            string             `bun:"name"`
	CreatedAt       time.Time          `bun:"created_at,notnull"`
	RosterUpdatedAt *time.Time         `bun:"roster_updated_at"`
}

// TeamMember is one drafted artist on a team. Category is pinned from the
// artist's tier at draft time so percentage denominators stay stable even
// when the artist is later re-tiered.
type TeamMember struct {
	bun.BaseModel `bun:"table:team_members,alias:tm"`

	ID        string               `bun:"id,pk"`
	TeamID    sharedtypes.TeamID   `bun:"team_id,notnull"`
	ArtistID  sharedtypes.ArtistID `bun:"artist_id,notnull"`
	Category  sharedtypes.Tier     `bun:"category,notnull"`
	DraftedAt time.Time            `bun:"drafted_at,notnull"`
}
