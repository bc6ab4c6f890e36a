package bundb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	artistdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/artist/infrastructure/repositories"
	scoringdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/scoring/infrastructure/repositories"
	standingsdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/standings/infrastructure/repositories"
	teamdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/team/infrastructure/repositories"
	tieringdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/tiering/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/config"
)

// DBService bundles the per-module repositories over one bun connection.
type DBService struct {
	ArtistDB    *artistdb.ArtistDBImpl
	ScoringDB   *scoringdb.ScoringDBImpl
	TieringDB   *tieringdb.TieringDBImpl
	TeamDB      *teamdb.TeamDBImpl
	StandingsDB *standingsdb.StandingsDBImpl

	db *bun.DB
}

// GetDB returns the underlying database connection pool.
func (dbService *DBService) GetDB() *bun.DB {
	return dbService.db
}

// Close closes the underlying connection pool.
func (dbService *DBService) Close() error {
	return dbService.db.Close()
}

// NewBunDBService initializes a new DBService with the provided Postgres
// configuration.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig) (*DBService, error) {
	sqldb, err := pgConn(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	db.RegisterModel(
		(*artistdb.Artist)(nil),
		(*scoringdb.DailyScore)(nil),
		(*tieringdb.TierAssignment)(nil),
		(*teamdb.UserTeam)(nil),
		(*teamdb.TeamMember)(nil),
		(*standingsdb.UserPoints)(nil),
		(*standingsdb.WeeklyBonus)(nil),
	)

	return &DBService{
		ArtistDB:    &artistdb.ArtistDBImpl{DB: db},
		ScoringDB:   &scoringdb.ScoringDBImpl{DB: db},
		TieringDB:   &tieringdb.TieringDBImpl{DB: db},
		TeamDB:      &teamdb.TeamDBImpl{DB: db},
		StandingsDB: &standingsdb.StandingsDBImpl{DB: db},
		db:          db,
	}, nil
}

func pgConn(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqldb, nil
}
