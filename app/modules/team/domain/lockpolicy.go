package teamdomain

import (
	"errors"
	"fmt"
	"time"
)

// ErrRosterLocked is returned by a LockPolicy when composition changes are
// not permitted right now. Policies wrap it with the concrete reason.
var ErrRosterLocked = errors.New("roster is locked")

// LockPolicy decides whether a team's composition may change at the given
// moment. createdAt is the team's creation time and lastUpdated the most
// recent roster change, nil when the roster has never been resubmitted.
// Deployments pick the policy at wiring time.
type LockPolicy func(now time.Time, createdAt time.Time, lastUpdated *time.Time) error

// AlwaysOpen permits every change. Used for pre-season and in tests.
func AlwaysOpen() LockPolicy {
	return func(time.Time, time.Time, *time.Time) error { return nil }
}

// RollingCooldown locks the roster for the given duration after every
// composition change, counted from the last update or, before any update,
// from team creation.
func RollingCooldown(cooldown time.Duration) LockPolicy {
	return func(now time.Time, createdAt time.Time, lastUpdated *time.Time) error {
		reference := createdAt
		if lastUpdated != nil {
			reference = *lastUpdated
		}
		unlocksAt := reference.Add(cooldown)
		if now.Before(unlocksAt) {
			return fmt.Errorf("%w until %s", ErrRosterLocked, unlocksAt.UTC().Format(time.RFC3339))
		}
		return nil
	}
}

// WeeklyUnlockWindow permits changes only on the given weekday between
// startHour (inclusive) and endHour (exclusive), UTC.
func WeeklyUnlockWindow(day time.Weekday, startHour, endHour int) LockPolicy {
	return func(now time.Time, _ time.Time, _ *time.Time) error {
		now = now.UTC()
		if now.Weekday() != day || now.Hour() < startHour || now.Hour() >= endHour {
			return fmt.Errorf("%w outside the %s %02d:00-%02d:00 UTC window", ErrRosterLocked, day, startHour, endHour)
		}
		return nil
	}
}
