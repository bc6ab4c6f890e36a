package scoringservice

import (
	"context"
	"time"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/results"
)

// DayScoredPayload reports a completed daily scoring pass.
type DayScoredPayload struct {
	Day     time.Time `json:"day"`
	Scored  int       `json:"scored"`
	Skipped int       `json:"skipped"`
	Failed  int       `json:"failed"`
}

// DayScoringFailedPayload reports a pass that could not run at all.
type DayScoringFailedPayload struct {
	Reason string `json:"reason"`
}

// DayScoringResult is the operation result for a daily scoring run.
type DayScoringResult = results.OperationResult[DayScoredPayload, DayScoringFailedPayload]

// Service is the daily scoring entry point consumed by the queue workers and
// the manual-trigger handler. RunDailyScoring is idempotent for a calendar
// day: re-running overwrites that day's records rather than duplicating them.
type Service interface {
	RunDailyScoring(ctx context.Context) (DayScoringResult, error)
}
