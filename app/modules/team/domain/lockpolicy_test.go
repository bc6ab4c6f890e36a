package teamdomain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func timeptr(t time.Time) *time.Time { return &t }

func TestAlwaysOpen(t *testing.T) {
	policy := AlwaysOpen()
	require.NoError(t, policy(time.Now(), time.Now().Add(-time.Minute), nil))
}

func TestRollingCooldown(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	policy := RollingCooldown(7 * 24 * time.Hour)

	tests := []struct {
		name        string
		createdAt   time.Time
		lastUpdated *time.Time
		wantLocked  bool
	}{
		{
			name:       "fresh team inside cooldown",
			createdAt:  now.Add(-24 * time.Hour),
			wantLocked: true,
		},
		{
			name:       "old team never updated",
			createdAt:  now.Add(-30 * 24 * time.Hour),
			wantLocked: false,
		},
		{
			name:        "recent update restarts the clock",
			createdAt:   now.Add(-30 * 24 * time.Hour),
			lastUpdated: timeptr(now.Add(-2 * 24 * time.Hour)),
			wantLocked:  true,
		},
		{
			name:        "update cooldown elapsed",
			createdAt:   now.Add(-30 * 24 * time.Hour),
			lastUpdated: timeptr(now.Add(-8 * 24 * time.Hour)),
			wantLocked:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy(now, tt.createdAt, tt.lastUpdated)
			if tt.wantLocked {
				require.ErrorIs(t, err, ErrRosterLocked)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestWeeklyUnlockWindow(t *testing.T) {
	policy := WeeklyUnlockWindow(time.Sunday, 0, 24)

	sunday := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)
	require.NoError(t, policy(sunday, sunday.Add(-time.Hour), nil))

	monday := sunday.Add(24 * time.Hour)
	err := policy(monday, monday.Add(-time.Hour), nil)
	require.ErrorIs(t, err, ErrRosterLocked)

	narrow := WeeklyUnlockWindow(time.Sunday, 9, 12)
	require.Error(t, narrow(time.Date(2026, 8, 30, 8, 59, 0, 0, time.UTC), sunday, nil))
	require.NoError(t, narrow(time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC), sunday, nil))
	require.Error(t, narrow(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC), sunday, nil))
}
