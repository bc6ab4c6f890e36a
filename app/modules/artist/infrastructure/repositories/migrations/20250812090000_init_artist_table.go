package artistmigrations

import (
	"context"
	"fmt"

	artistdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/artist/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating artists table...")

		if _, err := db.NewCreateTable().Model((*artistdb.Artist)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping artists table...")

		if _, err := db.NewDropTable().Model((*artistdb.Artist)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		return nil
	})
}
