package repository

import (
	"context"

	"coworkhub/internal/domain/booking"
	"coworkhub/internal/infra"
	"coworkhub/internal/infra/db"

	"github.com/google/uuid"
)

type BookingRepository struct {
	q db.Querier
}

func NewBookingRepository(q db.Querier) *BookingRepository {
	return &BookingRepository{q: q}
}

const insertBookingSQL = `
INSERT INTO bookings (
	id, space_id, user_id, start_at, end_at, status,
	participant_count, recurrence_type, recurrence_every,
	created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
`

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	recurrence := b.Recurrence()
	recType := string(booking.RecurNone)
	recEvery := 0
	if recurrence.IsRecurring() {
		recType = string(recurrence.Type)
		recEvery = recurrence.Interval
	}

	_, err := r.q.Exec(ctx, insertBookingSQL,
		b.ID(), b.SpaceID(), b.UserID(), b.Start(), b.End(), b.Status().String(),
		b.ParticipantCount(), recType, recEvery,
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err, infra.KindFromPgError(err))
	}
	return b.ID(), nil
}

const updateBookingSQL = `
UPDATE bookings
SET start_at = $2,
    end_at = $3,
    status = $4,
    check_in_at = $5,
    check_out_at = $6,
    participant_count = $7,
    updated_at = now()
WHERE id = $1
`

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	tag, err := r.q.Exec(ctx, updateBookingSQL,
		b.ID(), b.Start(), b.End(), b.Status().String(),
		b.CheckInAt(), b.CheckOutAt(), b.ParticipantCount(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err, infra.KindFromPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
