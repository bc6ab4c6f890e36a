package standingsdb

import (
	"context"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// Repository persists cached user standing totals.
type Repository interface {
	// UpsertUserPoints overwrites the cached total for a user.
	UpsertUserPoints(ctx context.Context, points *UserPoints) error

	// GetUserPoints returns the cached total, or nil when the user has
	// never been recomputed.
	GetUserPoints(ctx context.Context, userID sharedtypes.UserID) (*UserPoints, error)

	// Leaderboard returns cached totals ordered descending, ties broken by
	// user id ascending, limited to the given count.
	Leaderboard(ctx context.Context, limit int) ([]UserPoints, error)

	// UpsertWeeklyBonus writes an award, overwriting any prior award with
	// the same (artist, type, week_start) key.
	UpsertWeeklyBonus(ctx context.Context, bonus *WeeklyBonus) error

	// ListWeeklyBonuses returns all stored awards, most recent week first.
	ListWeeklyBonuses(ctx context.Context) ([]WeeklyBonus, error)
}
