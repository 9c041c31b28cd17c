//go:build unit

package booking_test

import (
	"testing"
	"time"

	"coworkhub/internal/domain/booking"

	"github.com/stretchr/testify/assert"

	"github.com/google/uuid"
)

func TestNextOccurrence(t *testing.T) {
	start := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	t.Run("non-recurring returns start", func(t *testing.T) {
		got := booking.NextOccurrence(start, booking.Recurrence{Type: booking.RecurNone})
		assert.Equal(t, start, got)
	})

	t.Run("daily", func(t *testing.T) {
		got := booking.NextOccurrence(start, booking.Recurrence{Type: booking.RecurDaily, Interval: 1})
		assert.Equal(t, start.AddDate(0, 0, 1), got)

		got = booking.NextOccurrence(start, booking.Recurrence{Type: booking.RecurDaily, Interval: 3})
		assert.Equal(t, start.AddDate(0, 0, 3), got)
	})

	t.Run("weekly", func(t *testing.T) {
		got := booking.NextOccurrence(start, booking.Recurrence{Type: booking.RecurWeekly, Interval: 2})
		assert.Equal(t, start.AddDate(0, 0, 14), got)
	})

	t.Run("monthly", func(t *testing.T) {
		got := booking.NextOccurrence(start, booking.Recurrence{Type: booking.RecurMonthly, Interval: 1})
		assert.Equal(t, time.Date(2025, 2, 15, 10, 0, 0, 0, time.UTC), got)
	})

	t.Run("monthly clamps to end of month", func(t *testing.T) {
		jan31 := time.Date(2025, 1, 31, 10, 0, 0, 0, time.UTC)
		got := booking.NextOccurrence(jan31, booking.Recurrence{Type: booking.RecurMonthly, Interval: 1})
		assert.Equal(t, time.Date(2025, 2, 28, 10, 0, 0, 0, time.UTC), got)
	})

	t.Run("monthly clamp respects leap years", func(t *testing.T) {
		jan31 := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)
		got := booking.NextOccurrence(jan31, booking.Recurrence{Type: booking.RecurMonthly, Interval: 1})
		assert.Equal(t, time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC), got)
	})

	t.Run("monthly across year boundary", func(t *testing.T) {
		dec15 := time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC)
		got := booking.NextOccurrence(dec15, booking.Recurrence{Type: booking.RecurMonthly, Interval: 2})
		assert.Equal(t, time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC), got)
	})
}

func TestDurationMinutes(t *testing.T) {
	start := base.Add(time.Hour)
	b := spaceBooking(t, uuid.New(), booking.StatusConfirmed, start, start.Add(90*time.Minute))
	assert.Equal(t, 90, booking.DurationMinutes(b))
}

func TestUtilizationRate(t *testing.T) {
	spaceID := uuid.New()
	dayStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	day := mustWindow(t, dayStart, dayStart.AddDate(0, 0, 1))

	t.Run("no bookings", func(t *testing.T) {
		assert.Zero(t, booking.UtilizationRate(nil, day))
	})

	t.Run("single booking", func(t *testing.T) {
		b := spaceBooking(t, spaceID, booking.StatusConfirmed, dayStart.Add(9*time.Hour), dayStart.Add(12*time.Hour))
		got := booking.UtilizationRate([]*booking.Booking{b}, day)
		assert.InDelta(t, 12.5, got, 0.001) // 180 of 1440 minutes
	})

	t.Run("bookings outside the window are ignored", func(t *testing.T) {
		outside := spaceBooking(t, spaceID, booking.StatusConfirmed, dayStart.AddDate(0, 0, 2), dayStart.AddDate(0, 0, 2).Add(time.Hour))
		assert.Zero(t, booking.UtilizationRate([]*booking.Booking{outside}, day))
	})

	t.Run("overlapping bookings count full durations", func(t *testing.T) {
		// Straddles midnight: the full 120 minutes count, not the 60
		// inside the window.
		straddling := spaceBooking(t, spaceID, booking.StatusConfirmed, dayStart.Add(-time.Hour), dayStart.Add(time.Hour))
		got := booking.UtilizationRate([]*booking.Booking{straddling}, day)
		assert.InDelta(t, float64(120)/1440*100, got, 0.001)
	})
}
