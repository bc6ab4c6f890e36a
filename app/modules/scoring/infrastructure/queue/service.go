package pipelinequeue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	scoringservice "github.com/Chart-Clash-Club/chartclash-backend/app/modules/scoring/application"
	tieringservice "github.com/Chart-Clash-Club/chartclash-backend/app/modules/tiering/application"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/attr"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/observability"
)

const pipelineQueue = "pipeline"

// QueueService schedules and runs the pipeline batch jobs.
type QueueService interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	TriggerDailyScoring(ctx context.Context) error
	TriggerWeeklyTiering(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service drives DailyScoringJob and WeeklyTieringJob through River.
// Uniqueness by job args keeps a new invocation from running while a prior
// run of the same job is still in flight.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewService creates the River client with both pipeline workers registered
// and their periodic schedules attached. River needs its own pgx pool; bun's
// database/sql pool cannot serve it.
func NewService(
	ctx context.Context,
	dsn string,
	scoring scoringservice.Service,
	tiering tieringservice.Service,
	logger *slog.Logger,
	metrics observability.Metrics,
	dailyInterval, weeklyInterval time.Duration,
) (*Service, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewDailyScoringWorker(scoring, logger))
	river.AddWorker(workers, NewWeeklyTieringWorker(tiering, logger))

	periodicJobs := []*river.PeriodicJob{
		river.NewPeriodicJob(
			river.PeriodicInterval(dailyInterval),
			func() (river.JobArgs, *river.InsertOpts) {
				return DailyScoringJob{}, insertOpts()
			},
			&river.PeriodicJobOpts{RunOnStart: false},
		),
		river.NewPeriodicJob(
			river.PeriodicInterval(weeklyInterval),
			func() (river.JobArgs, *river.InsertOpts) {
				return WeeklyTieringJob{}, insertOpts()
			},
			&river.PeriodicJobOpts{RunOnStart: false},
		),
	}

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			// Single worker: the jobs serialize their own external calls,
			// and two passes must never overlap.
			pipelineQueue: {MaxWorkers: 1},
		},
		Workers:      workers,
		PeriodicJobs: periodicJobs,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	return &Service{
		client:  client,
		pool:    pool,
		logger:  logger,
		metrics: metrics,
	}, nil
}

func insertOpts() *river.InsertOpts {
	return &river.InsertOpts{
		Queue: pipelineQueue,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	}
}

// Start begins processing scheduled and triggered jobs.
func (s *Service) Start(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Starting pipeline queue service")
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	return nil
}

// Stop drains running jobs and closes the pool.
func (s *Service) Stop(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Stopping pipeline queue service")
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()
	return nil
}

// TriggerDailyScoring enqueues an immediate scoring pass. A duplicate
// trigger while one is already queued or running is dropped by uniqueness,
// not an error.
func (s *Service) TriggerDailyScoring(ctx context.Context) error {
	return s.trigger(ctx, DailyScoringJob{}, "daily_scoring")
}

// TriggerWeeklyTiering enqueues an immediate tiering pass.
func (s *Service) TriggerWeeklyTiering(ctx context.Context) error {
	return s.trigger(ctx, WeeklyTieringJob{}, "weekly_tiering")
}

func (s *Service) trigger(ctx context.Context, job river.JobArgs, kind string) error {
	s.metrics.RecordOperationAttempt(ctx, "trigger_"+kind)

	result, err := s.client.Insert(ctx, job, insertOpts())
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "trigger_"+kind)
		return fmt.Errorf("failed to enqueue %s: %w", kind, err)
	}

	s.metrics.RecordOperationSuccess(ctx, "trigger_"+kind)
	s.logger.InfoContext(ctx, "Pipeline job enqueued",
		attr.String("kind", kind),
		attr.Int64("job_id", result.Job.ID),
		attr.Bool("deduplicated", result.UniqueSkippedAsDuplicate),
	)
	return nil
}
