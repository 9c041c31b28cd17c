package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Booking lifecycle event types published after commit.
const (
	EventBookingCreated    = "booking.created"
	EventBookingModified   = "booking.modified"
	EventBookingCancelled  = "booking.cancelled"
	EventBookingConfirmed  = "booking.confirmed"
	EventBookingRejected   = "booking.rejected"
	EventBookingCompleted  = "booking.completed"
	EventBookingCheckedIn  = "booking.checked_in"
	EventBookingCheckedOut = "booking.checked_out"
)

type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  uuid.UUID `json:"booking_id"`
	SpaceID    uuid.UUID `json:"space_id"`
	UserID     uuid.UUID `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher delivers lifecycle events to the broker. Publishing is
// best effort: callers log failures and never fail the request path on
// them.
type EventPublisher interface {
	Publish(ctx context.Context, event BookingEvent) error
}

type CreateBookingInput struct {
	SpaceID          uuid.UUID
	StartAt          time.Time
	EndAt            time.Time
	ParticipantCount int
	RecurrenceType   string
	RecurrenceEvery  int
}

type ModifyBookingInput struct {
	StartAt          time.Time
	EndAt            time.Time
	ParticipantCount int
}
