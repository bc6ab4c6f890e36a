package tieringmigrations

import (
	"context"
	"fmt"

	tieringdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/tiering/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating tier_assignments table...")

		if _, err := db.NewCreateTable().Model((*tieringdb.TierAssignment)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		// Latest-wins reads scan per artist by evaluation time.
		if _, err := db.ExecContext(ctx,
			`CREATE INDEX IF NOT EXISTS tier_assignments_artist_eval_idx ON tier_assignments (artist_id, evaluated_at DESC)`); err != nil {
			return err
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping tier_assignments table...")

		if _, err := db.NewDropTable().Model((*tieringdb.TierAssignment)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		return nil
	})
}
