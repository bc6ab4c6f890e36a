package eventbus

import (
	"time"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// ScoringDayCompletedPayload announces that a full daily scoring pass
// finished and point totals should be recomputed for every user.
type ScoringDayCompletedPayload struct {
	Day           time.Time `json:"day"`
	ArtistsScored int       `json:"artists_scored"`
	ArtistsFailed int       `json:"artists_failed"`
}

// RosterUpdatedPayload announces a roster composition change for one user.
type RosterUpdatedPayload struct {
	UserID sharedtypes.UserID `json:"user_id"`
	TeamID sharedtypes.TeamID `json:"team_id"`
}
