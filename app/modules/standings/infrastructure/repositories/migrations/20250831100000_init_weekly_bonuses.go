package standingsmigrations

import (
	"context"
	"fmt"

	standingsdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/standings/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating weekly_bonuses table...")

		if _, err := db.NewCreateTable().Model((*standingsdb.WeeklyBonus)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.ExecContext(ctx,
			`CREATE UNIQUE INDEX IF NOT EXISTS weekly_bonuses_award_key ON weekly_bonuses (artist_id, bonus_type, week_start)`); err != nil {
			return err
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping weekly_bonuses table...")

		if _, err := db.NewDropTable().Model((*standingsdb.WeeklyBonus)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		return nil
	})
}
