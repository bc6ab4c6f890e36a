package teammigrations

import (
	"context"
	"fmt"

	teamdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/team/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating user_teams and team_members tables...")

		if _, err := db.NewCreateTable().Model((*teamdb.UserTeam)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewCreateTable().Model((*teamdb.TeamMember)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.ExecContext(ctx,
			`CREATE INDEX IF NOT EXISTS team_members_team_idx ON team_members (team_id)`); err != nil {
			return err
		}

		// Drafting-percentage counts filter on artist within a category.
		if _, err := db.ExecContext(ctx,
			`CREATE INDEX IF NOT EXISTS team_members_category_artist_idx ON team_members (category, artist_id)`); err != nil {
			return err
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping user_teams and team_members tables...")

		if _, err := db.NewDropTable().Model((*teamdb.TeamMember)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewDropTable().Model((*teamdb.UserTeam)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		return nil
	})
}
