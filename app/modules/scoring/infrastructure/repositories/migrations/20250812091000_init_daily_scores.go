package scoringmigrations

import (
	"context"
	"fmt"

	scoringdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/scoring/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating daily_scores table...")

		if _, err := db.NewCreateTable().Model((*scoringdb.DailyScore)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		// The natural key; upserts depend on it.
		if _, err := db.ExecContext(ctx,
			`CREATE UNIQUE INDEX IF NOT EXISTS daily_scores_artist_day_idx ON daily_scores (artist_id, score_date)`); err != nil {
			return err
		}

		// Rank and trend queries scan by day.
		if _, err := db.ExecContext(ctx,
			`CREATE INDEX IF NOT EXISTS daily_scores_day_idx ON daily_scores (score_date)`); err != nil {
			return err
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping daily_scores table...")

		if _, err := db.NewDropTable().Model((*scoringdb.DailyScore)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		return nil
	})
}
