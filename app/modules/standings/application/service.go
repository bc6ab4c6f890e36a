package standingsservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	scoringdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/scoring/infrastructure/repositories"
	standingsdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/standings/infrastructure/repositories"
	teamdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/team/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/attr"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/observability"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/results"
)

// StandingsService computes ranks, drafting percentages, and point totals
// from already-committed score, tier, and roster data. Read paths take no
// locks and hit no external collaborators.
type StandingsService struct {
	scores  scoringdb.Repository
	teams   teamdb.Repository
	points  standingsdb.Repository
	logger  *slog.Logger
	metrics observability.Metrics
	tracer  trace.Tracer

	// Days previousAvailableRank may look back before giving up.
	lookbackDays int
	now          func() time.Time
}

// NewStandingsService creates a new StandingsService.
func NewStandingsService(
	scores scoringdb.Repository,
	teams teamdb.Repository,
	points standingsdb.Repository,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
	lookbackDays int,
) *StandingsService {
	if lookbackDays <= 0 {
		lookbackDays = 30
	}
	return &StandingsService{
		scores:       scores,
		teams:        teams,
		points:       points,
		logger:       logger,
		metrics:      metrics,
		tracer:       tracer,
		lookbackDays: lookbackDays,
		now:          time.Now,
	}
}

type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

func withTelemetry[S any, F any](
	s *StandingsService,
	ctx context.Context,
	operationName string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.String("operation", operationName),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	s.metrics.RecordOperationSuccess(ctx, operationName)
	return result, nil
}
