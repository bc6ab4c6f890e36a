package standingsdb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// UserPoints is the cached all-time standing total for one user, recomputed
// after every scoring day and on roster changes. A user with no team keeps
// a zero row rather than no row once recomputed.
type UserPoints struct {
	bun.BaseModel `bun:"table:user_points,alias:up"`

	UserID      sharedtypes.UserID `bun:"user_id,pk"`
	TotalPoints int                `bun:"total_points,notnull"`
	UpdatedAt   time.Time          `bun:"updated_at,notnull"`
}

// BonusType distinguishes the two weekly artist awards.
type BonusType string

const (
	BonusTopScorer    BonusType = "top_scorer"
	BonusMostImproved BonusType = "most_improved"
)

// WeeklyBonus is one artist award for one week. (artist, type, week_start)
// is unique; re-awarding the same week overwrites rather than duplicates.
type WeeklyBonus struct {
	bun.BaseModel `bun:"table:weekly_bonuses,alias:wb"`

	ID          string               `bun:"id,pk"`
	ArtistID    sharedtypes.ArtistID `bun:"artist_id,notnull"`
	BonusType   BonusType            `bun:"bonus_type,notnull"`
	WeekStart   time.Time            `bun:"week_start,notnull"`
	BonusPoints int                  `bun:"bonus_points,notnull"`
	CreatedAt   time.Time            `bun:"created_at,notnull"`
}
