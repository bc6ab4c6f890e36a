package teamservice

import (
	"context"
	"time"

	teamdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/team/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/results"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// RosterSubmittedPayload reports an accepted roster submission.
type RosterSubmittedPayload struct {
	TeamID      sharedtypes.TeamID `json:"team_id"`
	MemberCount int                `json:"member_count"`
	SubmittedAt time.Time          `json:"submitted_at"`
}

// RosterRejectedPayload reports a submission turned away by validation or
// the lock policy.
type RosterRejectedPayload struct {
	Reason string `json:"reason"`
}

// SubmitRosterResult is the operation result for a roster submission.
type SubmitRosterResult = results.OperationResult[RosterSubmittedPayload, RosterRejectedPayload]

// Service is the draft-management entry point.
type Service interface {
	SubmitRoster(ctx context.Context, userID sharedtypes.UserID, teamName string, artistIDs []sharedtypes.ArtistID) (SubmitRosterResult, error)
	GetRoster(ctx context.Context, userID sharedtypes.UserID) (*teamdb.UserTeam, []teamdb.TeamMember, error)
}
