package scoringservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	artistdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/artist/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/modules/gateway"
	scoringdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/scoring/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/eventbus"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/attr"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/observability"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/results"
)

// ScoringService runs the daily scoring pass.
type ScoringService struct {
	artists  artistdb.Repository
	scores   scoringdb.Repository
	gateway  gateway.MetricsGateway
	eventBus eventbus.EventBus
	logger   *slog.Logger
	metrics  observability.Metrics
	tracer   trace.Tracer

	fanOut int
	now    func() time.Time
}

// NewScoringService creates a new ScoringService. fanOut bounds concurrent
// per-artist metric fetches.
func NewScoringService(
	artists artistdb.Repository,
	scores scoringdb.Repository,
	gw gateway.MetricsGateway,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
	fanOut int,
) *ScoringService {
	if fanOut <= 0 {
		fanOut = 1
	}
	return &ScoringService{
		artists:  artists,
		scores:   scores,
		gateway:  gw,
		eventBus: eventBus,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		fanOut:   fanOut,
		now:      time.Now,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery.
func withTelemetry[S any, F any](
	s *ScoringService,
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

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.Any("failure_payload", *result.Failure),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		return result, nil
	}

	s.metrics.RecordOperationSuccess(ctx, operationName)
	return result, nil
}
