package teamdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// TeamDBImpl implements Repository on bun.
type TeamDBImpl struct {
	DB *bun.DB
}

func (db *TeamDBImpl) GetTeamByUser(ctx context.Context, userID sharedtypes.UserID) (*UserTeam, error) {
	var team UserTeam
	err := db.DB.NewSelect().
		Model(&team).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to fetch team for user %s: %w", userID, err)
	}
	return &team, nil
}

func (db *TeamDBImpl) CreateTeam(ctx context.Context, team *UserTeam) error {
	if _, err := db.DB.NewInsert().Model(team).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create team for user %s: %w", team.UserID, err)
	}
	return nil
}

func (db *TeamDBImpl) ListAllTeams(ctx context.Context) ([]UserTeam, error) {
	var teams []UserTeam
	if err := db.DB.NewSelect().Model(&teams).Order("created_at ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// ReplaceRoster deletes the team's current members and inserts the new set
// in a single transaction. Partial rosters never become visible.
func (db *TeamDBImpl) ReplaceRoster(ctx context.Context, teamID sharedtypes.TeamID, members []TeamMember, updatedAt time.Time) error {
	err := db.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*TeamMember)(nil)).
			Where("team_id = ?", teamID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to clear roster: %w", err)
		}

		if len(members) > 0 {
			if _, err := tx.NewInsert().Model(&members).Exec(ctx); err != nil {
				return fmt.Errorf("failed to insert roster: %w", err)
			}
		}

		if _, err := tx.NewUpdate().
			Model((*UserTeam)(nil)).
			Set("roster_updated_at = ?", updatedAt).
			Where("id = ?", teamID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to stamp roster update: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace roster for team %s: %w", teamID, err)
	}
	return nil
}

func (db *TeamDBImpl) ListMembers(ctx context.Context, teamID sharedtypes.TeamID) ([]TeamMember, error) {
	var members []TeamMember
	err := db.DB.NewSelect().
		Model(&members).
		Where("team_id = ?", teamID).
		Order("drafted_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members for team %s: %w", teamID, err)
	}
	return members, nil
}

func (db *TeamDBImpl) CountPicks(ctx context.Context, artistID sharedtypes.ArtistID, category sharedtypes.Tier) (int, error) {
	count, err := db.DB.NewSelect().
		Model((*TeamMember)(nil)).
		Where("artist_id = ?", artistID).
		Where("category = ?", category).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count picks for artist %s: %w", artistID, err)
	}
	return count, nil
}

// CountDistinctTeams counts teams, not member rows: a team drafting several
// artists in the category still counts once.
func (db *TeamDBImpl) CountDistinctTeams(ctx context.Context, category sharedtypes.Tier) (int, error) {
	var count int
	err := db.DB.NewSelect().
		Model((*TeamMember)(nil)).
		ColumnExpr("count(DISTINCT team_id)").
		Where("category = ?", category).
		Scan(ctx, &count)
	if err != nil {
		return 0, fmt.Errorf("failed to count teams drafted in category %s: %w", category, err)
	}
	return count, nil
}
