package artistdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// ArtistDBImpl implements Repository on bun.
type ArtistDBImpl struct {
	DB *bun.DB
}

func (db *ArtistDBImpl) ListAll(ctx context.Context) ([]Artist, error) {
	var artists []Artist
	err := db.DB.NewSelect().
		Model(&artists).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	return artists, nil
}

func (db *ArtistDBImpl) GetByID(ctx context.Context, id sharedtypes.ArtistID) (*Artist, error) {
	var artist Artist
	err := db.DB.NewSelect().
		Model(&artist).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, fmt.Errorf("failed to fetch artist %s: %w", id, err)
	}
	return &artist, nil
}

func (db *ArtistDBImpl) Create(ctx context.Context, artist *Artist) error {
	if _, err := db.DB.NewInsert().Model(artist).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create artist %s: %w", artist.ID, err)
	}
	return nil
}

// UpdateExternalIDs corrects platform identifiers; everything else on the
// artist row is immutable after catalog import.
func (db *ArtistDBImpl) UpdateExternalIDs(ctx context.Context, artist *Artist) error {
	res, err := db.DB.NewUpdate().
		Model(artist).
		Column("streaming_id", "video_channel_id", "short_video_handle", "analytics_id").
		Where("id = ?", artist.ID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update external ids for artist %s: %w", artist.ID, err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrArtistNotFound
	}
	return nil
}
