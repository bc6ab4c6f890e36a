package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/Chart-Clash-Club/chartclash-backend/app/eventbus"
	"github.com/Chart-Clash-Club/chartclash-backend/app/handlers"
	"github.com/Chart-Clash-Club/chartclash-backend/app/modules/gateway"
	scoringservice "github.com/Chart-Clash-Club/chartclash-backend/app/modules/scoring/application"
	pipelinequeue "github.com/Chart-Clash-Club/chartclash-backend/app/modules/scoring/infrastructure/queue"
	standingsservice "github.com/Chart-Clash-Club/chartclash-backend/app/modules/standings/application"
	teamservice "github.com/Chart-Clash-Club/chartclash-backend/app/modules/team/application"
	teamdomain "github.com/Chart-Clash-Club/chartclash-backend/app/modules/team/domain"
	tieringservice "github.com/Chart-Clash-Club/chartclash-backend/app/modules/tiering/application"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/observability"
	"github.com/Chart-Clash-Club/chartclash-backend/config"
	"github.com/Chart-Clash-Club/chartclash-backend/db/bundb"
)

// App wires the pipeline modules together and owns their lifecycle.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	DB       *bundb.DBService
	EventBus eventbus.EventBus

	ScoringService   *scoringservice.ScoringService
	TieringService   *tieringservice.TieringService
	TeamService      *teamservice.TeamService
	StandingsService *standingsservice.StandingsService
	Queue            *pipelinequeue.Service

	httpServer    *http.Server
	metricsServer *http.Server
}

// NewApp initializes every module against shared infrastructure. The
// metrics gateway defaults to the unconfigured stub; deployments with
// collaborator credentials swap it in before calling NewApp via opts.
func NewApp(ctx context.Context, cfg *config.Config, gw gateway.MetricsGateway) (*App, error) {
	logger := observability.NewLogger(cfg.Observability.Environment)

	db, err := bundb.NewBunDBService(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	if gw == nil {
		gw = gateway.Unconfigured{}
	}
	gw = gateway.WithTimeout(gw, cfg.Jobs.FetchTimeout)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := observability.NewPrometheusMetrics(registry, "scoring")
	tracer := otel.Tracer("chartclash-backend")

	scoring := scoringservice.NewScoringService(
		db.ArtistDB, db.ScoringDB, gw, bus,
		logger, metrics, tracer, cfg.Jobs.ScoringFanOut,
	)
	tiering := tieringservice.NewTieringService(
		db.ArtistDB, db.ScoringDB, db.TieringDB, gw,
		logger, metrics.Scoped("tiering"), tracer, cfg.Jobs.AnalyticsInterval,
	)
	team := teamservice.NewTeamService(
		db.TeamDB, db.TieringDB, bus, teamdomain.RollingCooldown(7*24*time.Hour),
		logger, metrics.Scoped("team"), tracer,
	)
	standings := standingsservice.NewStandingsService(
		db.ScoringDB, db.TeamDB, db.StandingsDB,
		logger, metrics.Scoped("standings"), tracer, cfg.Jobs.RankLookbackDays,
	)

	if err := standings.RegisterSubscribers(ctx, bus); err != nil {
		return nil, fmt.Errorf("failed to register standings subscribers: %w", err)
	}

	queue, err := pipelinequeue.NewService(
		ctx, cfg.Postgres.DSN, scoring, tiering,
		logger, metrics.Scoped("queue"),
		cfg.Jobs.DailyScoringSchedule, cfg.Jobs.WeeklyTieringSchedule,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize pipeline queue: %w", err)
	}

	app := &App{
		Config:           cfg,
		Logger:           logger,
		DB:               db,
		EventBus:         bus,
		ScoringService:   scoring,
		TieringService:   tiering,
		TeamService:      team,
		StandingsService: standings,
		Queue:            queue,
	}

	app.httpServer = &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handlers.Router(handlers.New(standings, team, queue, logger)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	app.metricsServer = &http.Server{
		Addr:              cfg.Observability.MetricsAddress,
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return app, nil
}

// Run starts the queue and both HTTP listeners, then blocks until the
// context is cancelled or a listener fails.
func (app *App) Run(ctx context.Context) error {
	if err := app.Queue.Start(ctx); err != nil {
		return fmt.Errorf("failed to start queue: %w", err)
	}

	errCh := make(chan error, 2)
	go func() {
		app.Logger.Info("HTTP server listening", slog.String("addr", app.httpServer.Addr))
		if err := app.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		app.Logger.Info("Metrics server listening", slog.String("addr", app.metricsServer.Addr))
		if err := app.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown stops everything in reverse dependency order.
func (app *App) Shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error("HTTP server shutdown failed", slog.Any("error", err))
	}
	if err := app.metricsServer.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error("Metrics server shutdown failed", slog.Any("error", err))
	}
	if err := app.Queue.Stop(shutdownCtx); err != nil {
		app.Logger.Error("Queue shutdown failed", slog.Any("error", err))
	}
	if err := app.EventBus.Close(); err != nil {
		app.Logger.Error("Event bus close failed", slog.Any("error", err))
	}
	if err := app.DB.Close(); err != nil {
		app.Logger.Error("Database close failed", slog.Any("error", err))
	}
}
