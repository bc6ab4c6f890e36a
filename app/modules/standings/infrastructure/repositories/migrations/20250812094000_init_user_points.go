package standingsmigrations

import (
	"context"
	"fmt"

	standingsdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/standings/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating user_points table...")

		if _, err := db.NewCreateTable().Model((*standingsdb.UserPoints)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.ExecContext(ctx,
			`CREATE INDEX IF NOT EXISTS user_points_total_idx ON user_points (total_points DESC)`); err != nil {
			return err
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping user_points table...")

		if _, err := db.NewDropTable().Model((*standingsdb.UserPoints)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		return nil
	})
}
