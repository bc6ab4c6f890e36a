package tieringdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// TieringDBImpl implements Repository on bun.
type TieringDBImpl struct {
	DB *bun.DB
}

func (db *TieringDBImpl) UpsertAssignment(ctx context.Context, assignment *TierAssignment) error {
	if _, err := db.DB.NewInsert().Model(assignment).Exec(ctx); err != nil {
		return fmt.Errorf("failed to record tier assignment for artist %s: %w", assignment.ArtistID, err)
	}
	return nil
}

func (db *TieringDBImpl) CurrentTier(ctx context.Context, artistID sharedtypes.ArtistID) (*TierAssignment, error) {
	var assignment TierAssignment
	err := db.DB.NewSelect().
		Model(&assignment).
		Where("artist_id = ?", artistID).
		Order("evaluated_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch current tier for artist %s: %w", artistID, err)
	}
	return &assignment, nil
}

func (db *TieringDBImpl) CurrentTiers(ctx context.Context) (map[sharedtypes.ArtistID]sharedtypes.Tier, error) {
	var assignments []TierAssignment
	err := db.DB.NewSelect().
		Model(&assignments).
		DistinctOn("artist_id").
		Order("artist_id").
		Order("evaluated_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current tiers: %w", err)
	}

	tiers := make(map[sharedtypes.ArtistID]sharedtypes.Tier, len(assignments))
	for _, a := range assignments {
		tiers[a.ArtistID] = a.Tier
	}
	return tiers, nil
}
