package tieringdb

import (
	"time"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// TierAssignment is one tier evaluation for an artist. Rows are append-only;
// the current classification is the most recent evaluation per artist.
type TierAssignment struct {
	bun.BaseModel `bun:"table:tier_assignments,alias:ta"`

	ID          int64                `bun:"id,pk,autoincrement"`
	ArtistID    sharedtypes.ArtistID `bun:"artist_id,notnull"`
	Tier        sharedtypes.Tier     `bun:"tier,notnull"`
	EvaluatedAt time.Time            `bun:"evaluated_at,notnull"`
}
