package standingsservice

import (
	"context"
	"time"

	standingsdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/standings/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/results"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// ArtistRank is an artist's leaderboard position on one day. PreviousRank
// is nil when no earlier day within the lookback has any data, which is
// distinct from holding last place.
type ArtistRank struct {
	ArtistID     sharedtypes.ArtistID `json:"artist_id"`
	Date         time.Time            `json:"date"`
	Rank         int                  `json:"rank"`
	OutOf        int                  `json:"out_of"`
	PreviousRank *int                 `json:"previous_rank"`
	RankChange   *int                 `json:"rank_change"`
}

// ArtistPoints is one roster artist's contribution to a points breakdown.
type ArtistPoints struct {
	ArtistID sharedtypes.ArtistID `json:"artist_id"`
	Points   int                  `json:"points"`
}

// PointsBreakdown is a user's point total for one timeframe plus the
// per-artist contributions. A user without a team gets a zero breakdown.
type PointsBreakdown struct {
	UserID    sharedtypes.UserID    `json:"user_id"`
	Timeframe sharedtypes.Timeframe `json:"timeframe"`
	Total     int                   `json:"total"`
	Artists   []ArtistPoints        `json:"artists"`
}

// TrendingMover is one artist's day-over-day score movement.
type TrendingMover struct {
	ArtistID sharedtypes.ArtistID `json:"artist_id"`
	Today    int                  `json:"today"`
	Previous int                  `json:"previous"`
	Delta    int                  `json:"delta"`
}

// RankMover is one artist's leaderboard position movement between the two
// most recent scored days. Only artists ranked on both days qualify.
type RankMover struct {
	ArtistID     sharedtypes.ArtistID `json:"artist_id"`
	CurrentRank  int                  `json:"current_rank"`
	PreviousRank int                  `json:"previous_rank"`
	Movement     int                  `json:"movement"`
}

// LeaderboardEntry is one row of the all-time user standings.
type LeaderboardEntry struct {
	UserID      sharedtypes.UserID `json:"user_id"`
	TotalPoints int                `json:"total_points"`
	Rank        int                `json:"rank"`
}

// TeamStanding compares a team's trailing week against the week before.
type TeamStanding struct {
	TeamID       sharedtypes.TeamID `json:"team_id"`
	UserID       sharedtypes.UserID `json:"user_id"`
	Name         string             `json:"name"`
	Rank         int                `json:"rank"`
	WeekPoints   int                `json:"week_points"`
	PriorWeek    int                `json:"prior_week"`
	WeeklyChange int                `json:"weekly_change"`
}

// TopScorerAward is the weekly bonus for the highest weekly total.
type TopScorerAward struct {
	ArtistID    sharedtypes.ArtistID `json:"artist_id"`
	WeeklyTotal int                  `json:"weekly_total"`
	Points      int                  `json:"points"`
}

// MostImprovedAward is the weekly bonus for the largest first-to-last-day
// score gain within the week.
type MostImprovedAward struct {
	ArtistID sharedtypes.ArtistID `json:"artist_id"`
	Gain     int                  `json:"gain"`
	Points   int                  `json:"points"`
}

// WeeklyBonusAwards is one week's pair of artist bonuses.
type WeeklyBonusAwards struct {
	WeekStart    time.Time         `json:"week_start"`
	TopScorer    TopScorerAward    `json:"top_scorer"`
	MostImproved MostImprovedAward `json:"most_improved"`
}

// RecomputeCompletedPayload reports a finished standings recompute.
type RecomputeCompletedPayload struct {
	UsersRecomputed int `json:"users_recomputed"`
}

// RecomputeFailedPayload reports a recompute that could not run.
type RecomputeFailedPayload struct {
	Reason string `json:"reason"`
}

// RecomputeResult is the operation result for a standings recompute.
type RecomputeResult = results.OperationResult[RecomputeCompletedPayload, RecomputeFailedPayload]

// Service is the read-and-aggregate surface consumed by the HTTP handlers
// and the event subscribers.
type Service interface {
	GetRankOnDate(ctx context.Context, artistID sharedtypes.ArtistID, date time.Time) (*ArtistRank, error)
	GetDraftingPercentage(ctx context.Context, artistID sharedtypes.ArtistID, category sharedtypes.Tier) (int, error)
	GetUserPointsBreakdown(ctx context.Context, userID sharedtypes.UserID, timeframe sharedtypes.Timeframe) (*PointsBreakdown, error)
	TrendingMovers(ctx context.Context, limit int) ([]TrendingMover, error)
	RankMovers(ctx context.Context, limit int) ([]RankMover, error)
	GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	TeamStandings(ctx context.Context) ([]TeamStanding, error)

	AwardWeeklyBonuses(ctx context.Context) (*WeeklyBonusAwards, error)
	ListWeeklyBonuses(ctx context.Context) ([]standingsdb.WeeklyBonus, error)

	RecomputeUserPoints(ctx context.Context, userID sharedtypes.UserID) error
	RecomputeAllUserPoints(ctx context.Context) (RecomputeResult, error)
}
