package pipelinequeue

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"

	scoringservice "github.com/Chart-Clash-Club/chartclash-backend/app/modules/scoring/application"
	tieringservice "github.com/Chart-Clash-Club/chartclash-backend/app/modules/tiering/application"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/attr"
)

// DailyScoringWorker executes the daily scoring pass when its job fires.
type DailyScoringWorker struct {
	river.WorkerDefaults[DailyScoringJob]

	service scoringservice.Service
	logger  *slog.Logger
}

func NewDailyScoringWorker(service scoringservice.Service, logger *slog.Logger) *DailyScoringWorker {
	return &DailyScoringWorker{service: service, logger: logger}
}

func (w *DailyScoringWorker) Work(ctx context.Context, job *river.Job[DailyScoringJob]) error {
	w.logger.InfoContext(ctx, "Daily scoring job fired",
		attr.Int64("job_id", job.ID),
		attr.Int("attempt", job.Attempt),
	)

	// Errors propagate to River for retry on its schedule.
	_, err := w.service.RunDailyScoring(ctx)
	return err
}

// WeeklyTieringWorker executes the weekly tiering pass when its job fires.
type WeeklyTieringWorker struct {
	river.WorkerDefaults[WeeklyTieringJob]

	service tieringservice.Service
	logger  *slog.Logger
}

func NewWeeklyTieringWorker(service tieringservice.Service, logger *slog.Logger) *WeeklyTieringWorker {
	return &WeeklyTieringWorker{service: service, logger: logger}
}

func (w *WeeklyTieringWorker) Work(ctx context.Context, job *river.Job[WeeklyTieringJob]) error {
	w.logger.InfoContext(ctx, "Weekly tiering job fired",
		attr.Int64("job_id", job.ID),
		attr.Int("attempt", job.Attempt),
	)

	_, err := w.service.RunWeeklyTiering(ctx)
	return err
}
