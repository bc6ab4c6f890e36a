package tieringservice

import (
	"context"
	"time"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/results"
)

// TieringCompletedPayload reports a completed weekly tiering pass.
type TieringCompletedPayload struct {
	EvaluatedAt time.Time `json:"evaluated_at"`
	Classified  int       `json:"classified"`
	Skipped     int       `json:"skipped"`
}

// TieringFailedPayload reports a pass that could not run at all.
type TieringFailedPayload struct {
	Reason string `json:"reason"`
}

// TieringResult is the operation result for a weekly tiering run.
type TieringResult = results.OperationResult[TieringCompletedPayload, TieringFailedPayload]

// Service is the weekly tiering entry point consumed by the queue workers
// and the manual-trigger handler.
type Service interface {
	RunWeeklyTiering(ctx context.Context) (TieringResult, error)
}
