package shared

import (
	"context"
	"time"

	"coworkhub/internal/domain/booking"
	"coworkhub/internal/domain/space"
	"coworkhub/internal/domain/user"

	"github.com/google/uuid"
)

// Write-side snapshots keep commands off the read-side query types.
type SpaceSnapshot struct {
	ID              uuid.UUID
	Name            string
	HourlyRateCents int64
	Rules           space.Rules
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	// Update persists status, window, participant count and the
	// check-in/check-out stamps of an already stored booking.
	Update(ctx context.Context, b *booking.Booking) error
}

type IdempotencyRepository interface {
	// TryInsert claims the key with status "processing". It reports
	// whether this call actually inserted the row; false means another
	// request already holds the key.
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	MarkCompleted(ctx context.Context, key, userID uuid.UUID, resultBookingID uuid.UUID) error
}

type CommandReads interface {
	SpaceByID(ctx context.Context, id uuid.UUID) (*SpaceSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// ActiveBookingsForSpace returns the pending and confirmed bookings
	// of a space that overlap the given window. Conflict detection runs
	// against this snapshot.
	ActiveBookingsForSpace(ctx context.Context, spaceID uuid.UUID, window booking.Window) ([]*booking.Booking, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

// UserRepository backs the auth flow outside the unit of work.
type UserRepository interface {
	FindByEmail(ctx context.Context, email user.Email) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	Create(ctx context.Context, u *user.User) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}
