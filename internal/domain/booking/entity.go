package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidParticipants  = errors.New("participant count must be positive")
	ErrIneligibleTransition = errors.New("booking is not eligible for this transition")
)

// Booking is the unit the interval engine reasons about: one reserved
// time window on one space, plus lifecycle state. Start, end and space
// are immutable after creation except through Reschedule, which callers
// must pair with a fresh conflict check.
type Booking struct {
	id               uuid.UUID
	spaceID          uuid.UUID
	userID           uuid.UUID
	window           Window
	status           Status
	checkInAt        *time.Time
	checkOutAt       *time.Time
	participantCount int
	recurrence       Recurrence
	createdAt        time.Time
	updatedAt        time.Time
}

func NewBooking(
	spaceID, userID uuid.UUID,
	window Window,
	participantCount int,
	recurrence Recurrence,
	status Status,
) (*Booking, error) {
	if participantCount < 1 {
		return nil, ErrInvalidParticipants
	}
	if !status.IsValid() {
		return nil, errors.New("invalid booking status")
	}
	return &Booking{
		id:               uuid.New(),
		spaceID:          spaceID,
		userID:           userID,
		window:           window,
		status:           status,
		participantCount: participantCount,
		recurrence:       recurrence,
	}, nil
}

func ReconstructBooking(
	id, spaceID, userID uuid.UUID,
	window Window,
	status Status,
	checkInAt, checkOutAt *time.Time,
	participantCount int,
	recurrence Recurrence,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:               id,
		spaceID:          spaceID,
		userID:           userID,
		window:           window,
		status:           status,
		checkInAt:        checkInAt,
		checkOutAt:       checkOutAt,
		participantCount: participantCount,
		recurrence:       recurrence,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID          { return b.id }
func (b *Booking) SpaceID() uuid.UUID     { return b.spaceID }
func (b *Booking) UserID() uuid.UUID      { return b.userID }
func (b *Booking) Window() Window         { return b.window }
func (b *Booking) Start() time.Time       { return b.window.Start() }
func (b *Booking) End() time.Time         { return b.window.End() }
func (b *Booking) Status() Status         { return b.status }
func (b *Booking) CheckInAt() *time.Time  { return b.checkInAt }
func (b *Booking) CheckOutAt() *time.Time { return b.checkOutAt }
func (b *Booking) ParticipantCount() int  { return b.participantCount }
func (b *Booking) Recurrence() Recurrence { return b.recurrence }
func (b *Booking) CreatedAt() time.Time   { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time   { return b.updatedAt }

func (b *Booking) IsActive() bool {
	return b.status.Active()
}

func (b *Booking) HasExpired(now time.Time) bool {
	return now.After(b.window.End())
}

// Reschedule replaces the booked window and participant count. The
// caller owns re-running Validate and Conflicts before persisting.
func (b *Booking) Reschedule(window Window, participantCount int) error {
	if participantCount < 1 {
		return ErrInvalidParticipants
	}
	b.window = window
	b.participantCount = participantCount
	return nil
}

func (b *Booking) Confirm() error {
	if b.status != StatusPending {
		return ErrIneligibleTransition
	}
	b.status = StatusConfirmed
	return nil
}

func (b *Booking) Reject() error {
	if b.status != StatusPending {
		return ErrIneligibleTransition
	}
	b.status = StatusRejected
	return nil
}

func (b *Booking) Cancel() error {
	if !b.CanCancel() {
		return ErrIneligibleTransition
	}
	b.status = StatusCancelled
	return nil
}

func (b *Booking) Complete() error {
	if b.status != StatusConfirmed {
		return ErrIneligibleTransition
	}
	b.status = StatusCompleted
	return nil
}

func (b *Booking) CheckIn(now time.Time) error {
	if !b.CanCheckIn(now) {
		return ErrIneligibleTransition
	}
	at := now
	b.checkInAt = &at
	return nil
}

func (b *Booking) CheckOut(now time.Time) error {
	if !b.CanCheckOut(now) {
		return ErrIneligibleTransition
	}
	at := now
	b.checkOutAt = &at
	return nil
}
