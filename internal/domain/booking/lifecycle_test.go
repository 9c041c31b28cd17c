//go:build unit

package booking_test

import (
	"testing"
	"time"

	"coworkhub/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"
)

func buildBooking(t *testing.T, status booking.Status, start, end time.Time) *booking.Booking {
	t.Helper()
	w := mustWindow(t, start, end)
	return booking.ReconstructBooking(
		uuid.New(), uuid.New(), uuid.New(), w, status,
		nil, nil, 2, booking.Recurrence{Type: booking.RecurNone},
		start.Add(-24*time.Hour), start.Add(-24*time.Hour),
	)
}

func checkedIn(t *testing.T, start, end, at time.Time) *booking.Booking {
	t.Helper()
	b := buildBooking(t, booking.StatusConfirmed, start, end)
	require.NoError(t, b.CheckIn(at))
	return b
}

func TestCanCancel(t *testing.T) {
	start := base.Add(2 * time.Hour)
	end := start.Add(time.Hour)

	cases := []struct {
		status booking.Status
		want   bool
	}{
		{booking.StatusPending, true},
		{booking.StatusConfirmed, true},
		{booking.StatusCancelled, false},
		{booking.StatusCompleted, false},
		{booking.StatusRejected, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			b := buildBooking(t, tc.status, start, end)
			assert.Equal(t, tc.want, b.CanCancel())
		})
	}
}

func TestCanModify(t *testing.T) {
	start := base.Add(2 * time.Hour)
	end := start.Add(time.Hour)
	b := buildBooking(t, booking.StatusConfirmed, start, end)

	assert.True(t, b.CanModify(start.Add(-31*time.Minute)))
	assert.False(t, b.CanModify(start.Add(-30*time.Minute)), "cutoff instant is frozen")
	assert.False(t, b.CanModify(start.Add(-29*time.Minute)))
	assert.False(t, b.CanModify(start))

	cancelled := buildBooking(t, booking.StatusCancelled, start, end)
	assert.False(t, cancelled.CanModify(start.Add(-2*time.Hour)))
}

func TestCanCheckIn(t *testing.T) {
	start := base.Add(2 * time.Hour)
	end := start.Add(time.Hour)

	t.Run("window boundaries", func(t *testing.T) {
		b := buildBooking(t, booking.StatusConfirmed, start, end)

		assert.False(t, b.CanCheckIn(start.Add(-16*time.Minute)), "too early")
		assert.False(t, b.CanCheckIn(start.Add(-15*time.Minute)), "grace boundary is exclusive")
		assert.True(t, b.CanCheckIn(start.Add(-14*time.Minute)))
		assert.True(t, b.CanCheckIn(start))
		assert.True(t, b.CanCheckIn(end.Add(-time.Minute)))
		assert.False(t, b.CanCheckIn(end), "window end is excluded")
	})

	t.Run("pending booking cannot check in", func(t *testing.T) {
		b := buildBooking(t, booking.StatusPending, start, end)
		assert.False(t, b.CanCheckIn(start))
	})

	t.Run("double check-in rejected", func(t *testing.T) {
		b := checkedIn(t, start, end, start)
		assert.False(t, b.CanCheckIn(start.Add(time.Minute)))
		assert.ErrorIs(t, b.CheckIn(start.Add(time.Minute)), booking.ErrIneligibleTransition)
	})
}

func TestCanCheckOut(t *testing.T) {
	start := base.Add(2 * time.Hour)
	end := start.Add(time.Hour)

	t.Run("after check-in, before end", func(t *testing.T) {
		b := checkedIn(t, start, end, start)
		assert.True(t, b.CanCheckOut(start.Add(30*time.Minute)))
	})

	t.Run("not checked in", func(t *testing.T) {
		b := buildBooking(t, booking.StatusConfirmed, start, end)
		assert.False(t, b.CanCheckOut(start.Add(30*time.Minute)))
	})

	t.Run("at or after end", func(t *testing.T) {
		b := checkedIn(t, start, end, start)
		assert.False(t, b.CanCheckOut(end))
		assert.False(t, b.CanCheckOut(end.Add(time.Minute)))
	})

	t.Run("double check-out rejected", func(t *testing.T) {
		b := checkedIn(t, start, end, start)
		require.NoError(t, b.CheckOut(start.Add(30*time.Minute)))
		assert.False(t, b.CanCheckOut(start.Add(40*time.Minute)))
	})
}

func TestTransitions(t *testing.T) {
	start := base.Add(2 * time.Hour)
	end := start.Add(time.Hour)

	t.Run("confirm pending", func(t *testing.T) {
		b := buildBooking(t, booking.StatusPending, start, end)
		require.NoError(t, b.Confirm())
		assert.Equal(t, booking.StatusConfirmed, b.Status())

		assert.ErrorIs(t, b.Confirm(), booking.ErrIneligibleTransition)
	})

	t.Run("reject pending", func(t *testing.T) {
		b := buildBooking(t, booking.StatusPending, start, end)
		require.NoError(t, b.Reject())
		assert.Equal(t, booking.StatusRejected, b.Status())
	})

	t.Run("reject confirmed fails", func(t *testing.T) {
		b := buildBooking(t, booking.StatusConfirmed, start, end)
		assert.ErrorIs(t, b.Reject(), booking.ErrIneligibleTransition)
	})

	t.Run("cancel confirmed", func(t *testing.T) {
		b := buildBooking(t, booking.StatusConfirmed, start, end)
		require.NoError(t, b.Cancel())
		assert.Equal(t, booking.StatusCancelled, b.Status())

		assert.ErrorIs(t, b.Cancel(), booking.ErrIneligibleTransition)
	})

	t.Run("complete confirmed", func(t *testing.T) {
		b := buildBooking(t, booking.StatusConfirmed, start, end)
		require.NoError(t, b.Complete())
		assert.Equal(t, booking.StatusCompleted, b.Status())
	})

	t.Run("complete pending fails", func(t *testing.T) {
		b := buildBooking(t, booking.StatusPending, start, end)
		assert.ErrorIs(t, b.Complete(), booking.ErrIneligibleTransition)
	})
}
