package artistdb

import (
	"context"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// Repository is the artist catalog access contract.
type Repository interface {
	ListAll(ctx context.Context) ([]Artist, error)
	GetByID(ctx context.Context, id sharedtypes.ArtistID) (*Artist, error)
	Create(ctx context.Context, artist *Artist) error
	UpdateExternalIDs(ctx context.Context, artist *Artist) error
}
