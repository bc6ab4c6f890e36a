package standingsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// StandingsDBImpl implements Repository on bun.
type StandingsDBImpl struct {
	DB *bun.DB
}

func (db *StandingsDBImpl) UpsertUserPoints(ctx context.Context, points *UserPoints) error {
	_, err := db.DB.NewInsert().
		Model(points).
		On("CONFLICT (user_id) DO UPDATE").
		Set("total_points = EXCLUDED.total_points").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert points for user %s: %w", points.UserID, err)
	}
	return nil
}

func (db *StandingsDBImpl) GetUserPoints(ctx context.Context, userID sharedtypes.UserID) (*UserPoints, error) {
	var points UserPoints
	err := db.DB.NewSelect().
		Model(&points).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch points for user %s: %w", userID, err)
	}
	return &points, nil
}

func (db *StandingsDBImpl) Leaderboard(ctx context.Context, limit int) ([]UserPoints, error) {
	var rows []UserPoints
	err := db.DB.NewSelect().
		Model(&rows).
		Order("total_points DESC").
		Order("user_id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	return rows, nil
}

func (db *StandingsDBImpl) UpsertWeeklyBonus(ctx context.Context, bonus *WeeklyBonus) error {
	_, err := db.DB.NewInsert().
		Model(bonus).
		On("CONFLICT (artist_id, bonus_type, week_start) DO UPDATE").
		Set("bonus_points = EXCLUDED.bonus_points").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert %s bonus for artist %s: %w", bonus.BonusType, bonus.ArtistID, err)
	}
	return nil
}

func (db *StandingsDBImpl) ListWeeklyBonuses(ctx context.Context) ([]WeeklyBonus, error) {
	var rows []WeeklyBonus
	err := db.DB.NewSelect().
		Model(&rows).
		Order("week_start DESC").
		Order("bonus_type ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weekly bonuses: %w", err)
	}
	return rows, nil
}
