package teamservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Chart-Clash-Club/chartclash-backend/app/eventbus"
	teamdomain "github.com/Chart-Clash-Club/chartclash-backend/app/modules/team/domain"
	teamdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/team/infrastructure/repositories"
	tieringdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/tiering/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/attr"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/observability"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/results"
)

// TeamService manages team creation and roster submission.
type TeamService struct {
	teams      teamdb.Repository
	tiers      tieringdb.Repository
	eventBus   eventbus.EventBus
	lockPolicy teamdomain.LockPolicy
	logger     *slog.Logger
	metrics    observability.Metrics
	tracer     trace.Tracer

	now func() time.Time
}

// NewTeamService creates a new TeamService. The lock policy is chosen per
// deployment; nil falls back to always-open.
func NewTeamService(
	teams teamdb.Repository,
	tiers tieringdb.Repository,
	eventBus eventbus.EventBus,
	lockPolicy teamdomain.LockPolicy,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
) *TeamService {
	if lockPolicy == nil {
		lockPolicy = teamdomain.AlwaysOpen()
	}
	return &TeamService{
		teams:      teams,
		tiers:      tiers,
		eventBus:   eventBus,
		lockPolicy: lockPolicy,
		logger:     logger,
		metrics:    metrics,
		tracer:     tracer,
		now:        time.Now,
	}
}

type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

func withTelemetry[S any, F any](
	s *TeamService,
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
