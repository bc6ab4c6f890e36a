package tieringdb

import (
	"context"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// Repository is the tier assignment access contract. Reads always resolve
// the most recent evaluation per artist.
type Repository interface {
	// UpsertAssignment records a new evaluation for the artist.
	UpsertAssignment(ctx context.Context, assignment *TierAssignment) error

	// CurrentTier returns the artist's latest evaluation, or nil when the
	// artist has never been evaluated.
	CurrentTier(ctx context.Context, artistID sharedtypes.ArtistID) (*TierAssignment, error)

	// CurrentTiers returns the latest evaluation per artist for the whole
	// catalog.
	CurrentTiers(ctx context.Context) (map[sharedtypes.ArtistID]sharedtypes.Tier, error)
}
