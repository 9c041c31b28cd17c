package booking

import "time"

// DurationMinutes is the booked length of a single occurrence.
func DurationMinutes(b *Booking) int {
	return b.Window().Minutes()
}

// NextOccurrence advances start by one recurrence step. Monthly steps
// clamp to the last day of the target month (Jan 31 + 1 month =
// Feb 28), keeping the clock time and location. Non-recurring patterns
// return start unchanged.
func NextOccurrence(start time.Time, rec Recurrence) time.Time {
	if !rec.IsRecurring() {
		return start
	}
	switch rec.Type {
	case RecurDaily:
		return start.AddDate(0, 0, rec.Interval)
	case RecurWeekly:
		return start.AddDate(0, 0, 7*rec.Interval)
	case RecurMonthly:
		return addMonthsClamped(start, rec.Interval)
	default:
		return start
	}
}

// addMonthsClamped avoids AddDate's day normalization, which would roll
// Jan 31 into early March.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	targetMonth := time.Month(int(month) + months)
	firstOfTarget := time.Date(year, targetMonth, 1, 0, 0, 0, 0, t.Location())

	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}

	hour, minute, sec := t.Clock()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

// UtilizationRate reports the share of a reporting window covered by
// the given bookings, as a percentage. Bookings intersecting the window
// count their full duration without clipping at the window edges; this
// matches the dashboard's historical behavior and is documented in
// DESIGN.md.
func UtilizationRate(bookings []*Booking, window Window) float64 {
	total := window.Minutes()
	if total <= 0 {
		return 0
	}

	booked := 0
	for _, b := range bookings {
		if b.Window().Overlaps(window) {
			booked += b.Window().Minutes()
		}
	}

	return float64(booked) / float64(total) * 100.0
}
