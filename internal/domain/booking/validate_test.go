//go:build unit

package booking_test

import (
	"testing"
	"time"

	"coworkhub/internal/domain/booking"
	"coworkhub/internal/domain/space"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRules(t *testing.T) space.Rules {
	t.Helper()
	rules, err := space.NewRules(10, 240, 60, false)
	require.NoError(t, err)
	return rules
}

func TestValidate(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	rules := defaultRules(t)

	type testCase struct {
		name         string
		start, end   time.Time
		participants int
		errIs        error
	}

	cases := []testCase{
		{
			name:         "valid booking",
			start:        now.Add(2 * time.Hour),
			end:          now.Add(3 * time.Hour),
			participants: 4,
		},
		{
			name:         "start in the past",
			start:        now.Add(-time.Minute),
			end:          now.Add(time.Hour),
			participants: 4,
			errIs:        booking.ErrStartInPast,
		},
		{
			name:         "end before start",
			start:        now.Add(3 * time.Hour),
			end:          now.Add(2 * time.Hour),
			participants: 4,
			errIs:        booking.ErrEndBeforeStart,
		},
		{
			name:         "end equal to start",
			start:        now.Add(2 * time.Hour),
			end:          now.Add(2 * time.Hour),
			participants: 4,
			errIs:        booking.ErrEndBeforeStart,
		},
		{
			name:         "duration at the 240 minute cap",
			start:        now.Add(2 * time.Hour),
			end:          now.Add(2*time.Hour + 240*time.Minute),
			participants: 4,
		},
		{
			name:         "duration one minute over the cap",
			start:        now.Add(2 * time.Hour),
			end:          now.Add(2*time.Hour + 241*time.Minute),
			participants: 4,
			errIs:        booking.ErrDurationExceeded,
		},
		{
			name:         "duration at the 15 minute floor",
			start:        now.Add(2 * time.Hour),
			end:          now.Add(2*time.Hour + 15*time.Minute),
			participants: 4,
		},
		{
			name:         "duration below the floor",
			start:        now.Add(2 * time.Hour),
			end:          now.Add(2*time.Hour + 14*time.Minute),
			participants: 4,
			errIs:        booking.ErrDurationTooShort,
		},
		{
			name:         "zero participants",
			start:        now.Add(2 * time.Hour),
			end:          now.Add(3 * time.Hour),
			participants: 0,
			errIs:        booking.ErrParticipantCountInvalid,
		},
		{
			name:         "participants above capacity",
			start:        now.Add(2 * time.Hour),
			end:          now.Add(3 * time.Hour),
			participants: 11,
			errIs:        booking.ErrParticipantCountInvalid,
		},
		{
			name:         "participants at capacity",
			start:        now.Add(2 * time.Hour),
			end:          now.Add(3 * time.Hour),
			participants: 10,
		},
		{
			name:         "advance notice exactly met",
			start:        now.Add(60 * time.Minute),
			end:          now.Add(120 * time.Minute),
			participants: 4,
		},
		{
			name:         "advance notice one minute short",
			start:        now.Add(59 * time.Minute),
			end:          now.Add(119 * time.Minute),
			participants: 4,
			errIs:        booking.ErrAdvanceNoticeInsufficient,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := booking.Validate(tc.start, tc.end, tc.participants, rules, now)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("past start reported before inverted window", func(t *testing.T) {
		// Both checks would fail here; the first one in order wins.
		err := booking.Validate(now.Add(-2*time.Hour), now.Add(-3*time.Hour), 4, rules, now)
		assert.ErrorIs(t, err, booking.ErrStartInPast)
	})
}

func TestInitialStatus(t *testing.T) {
	approval, err := space.NewRules(10, 240, 0, true)
	require.NoError(t, err)
	open, err := space.NewRules(10, 240, 0, false)
	require.NoError(t, err)

	assert.Equal(t, booking.StatusPending, booking.InitialStatus(approval))
	assert.Equal(t, booking.StatusConfirmed, booking.InitialStatus(open))
}
