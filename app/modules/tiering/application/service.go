package tieringservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	artistdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/artist/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/modules/gateway"
	scoringdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/scoring/infrastructure/repositories"
	tieringdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/tiering/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/attr"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/observability"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/results"
)

// TieringService runs the weekly tier classification pass.
type TieringService struct {
	artists artistdb.Repository
	scores  scoringdb.Repository
	tiers   tieringdb.Repository
	gateway gateway.MetricsGateway
	logger  *slog.Logger
	metrics observability.Metrics
	tracer  trace.Tracer

	// The analytics collaborator enforces a strict quota; calls are spaced
	// by this limiter rather than fanned out.
	limiter *rate.Limiter
	now     func() time.Time
}

// NewTieringService creates a new TieringService. analyticsInterval spaces
// consecutive analytics collaborator calls.
func NewTieringService(
	artists artistdb.Repository,
	scores scoringdb.Repository,
	tiers tieringdb.Repository,
	gw gateway.MetricsGateway,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
	analyticsInterval time.Duration,
) *TieringService {
	if analyticsInterval <= 0 {
		analyticsInterval = time.Second
	}
	return &TieringService{
		artists: artists,
		scores:  scores,
		tiers:   tiers,
		gateway: gw,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		limiter: rate.NewLimiter(rate.Every(analyticsInterval), 1),
		now:     time.Now,
	}
}

type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

func withTelemetry[S any, F any](
	s *TieringService,
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
