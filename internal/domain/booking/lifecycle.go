package booking

import "time"

// Eligibility windows around a booking's start.
const (
	// CheckInGrace lets guests check in slightly early.
	CheckInGrace = 15 * time.Minute
	// ModifyCutoff freezes a booking shortly before it starts.
	ModifyCutoff = 30 * time.Minute
)

// The predicates below only answer whether a transition is currently
// allowed; they never perform it. All of them are pure with respect to
// the supplied instant.

func (b *Booking) CanCancel() bool {
	return b.status == StatusConfirmed || b.status == StatusPending
}

func (b *Booking) CanModify(now time.Time) bool {
	if b.status != StatusConfirmed && b.status != StatusPending {
		return false
	}
	return now.Before(b.window.Start().Add(-ModifyCutoff))
}

func (b *Booking) CanCheckIn(now time.Time) bool {
	if b.status != StatusConfirmed || b.checkInAt != nil {
		return false
	}
	return now.After(b.window.Start().Add(-CheckInGrace)) && now.Before(b.window.End())
}

// CanCheckOut deliberately requires now < end: checking out at or after
// the nominal end is not allowed. See DESIGN.md for the trade-off.
func (b *Booking) CanCheckOut(now time.Time) bool {
	if b.status != StatusConfirmed {
		return false
	}
	if b.checkInAt == nil || b.checkOutAt != nil {
		return false
	}
	return now.Before(b.window.End())
}
