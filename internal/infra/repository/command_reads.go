package repository

import (
	"context"
	"time"

	"coworkhub/internal/domain/booking"
	"coworkhub/internal/domain/space"
	"coworkhub/internal/infra"
	"coworkhub/internal/infra/db"
	"coworkhub/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/google/uuid"
)

// CommandReads serves the write side's validation lookups from the same
// transaction the write runs in, so conflict checks see a consistent
// snapshot.
type CommandReads struct {
	q db.Querier
}

func NewCommandReads(q db.Querier) *CommandReads {
	return &CommandReads{q: q}
}

const selectSpaceSnapshotSQL = `
SELECT id, name, hourly_rate_cents, capacity, max_duration_min, advance_notice_min, requires_approval
FROM spaces
WHERE id = $1
`

func (r *CommandReads) SpaceByID(ctx context.Context, id uuid.UUID) (*shared.SpaceSnapshot, error) {
	var (
		snap             shared.SpaceSnapshot
		capacity         int
		maxDurationMin   int
		advanceNoticeMin int
		requiresApproval bool
	)
	err := r.q.QueryRow(ctx, selectSpaceSnapshotSQL, id).Scan(
		&snap.ID, &snap.Name, &snap.HourlyRateCents,
		&capacity, &maxDurationMin, &advanceNoticeMin, &requiresApproval,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("space not found", err, infra.KindFromPgError(err))
	}

	rules, err := space.NewRules(capacity, maxDurationMin, advanceNoticeMin, requiresApproval)
	if err != nil {
		return nil, infra.WrapRepoErr("stored space rules are invalid", err)
	}
	snap.Rules = rules
	return &snap, nil
}

const selectBookingSQL = `
SELECT id, space_id, user_id, start_at, end_at, status,
       check_in_at, check_out_at, participant_count,
       recurrence_type, recurrence_every, created_at, updated_at
FROM bookings
`

func (r *CommandReads) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.q.QueryRow(ctx, selectBookingSQL+"WHERE id = $1", id)
	b, err := scanBooking(row)
	if err != nil {
		return nil, infra.WrapRepoErr("booking not found", err, infra.KindFromPgError(err))
	}
	return b, nil
}

const activeBookingsForSpaceSQL = selectBookingSQL + `
WHERE space_id = $1
  AND status IN ('pending', 'confirmed')
  AND start_at < $3
  AND end_at > $2
`

func (r *CommandReads) ActiveBookingsForSpace(ctx context.Context, spaceID uuid.UUID, window booking.Window) ([]*booking.Booking, error) {
	rows, err := r.q.Query(ctx, activeBookingsForSpaceSQL, spaceID, window.Start(), window.End())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active bookings", err, infra.KindFromPgError(err))
	}
	defer rows.Close()

	var result []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list active bookings", err)
	}
	return result, nil
}

const selectIdempotencySQL = `
SELECT key, user_id, status, request_hash, result_booking_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2
`

func (r *CommandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var rec shared.IdempotencyRecord
	err := r.q.QueryRow(ctx, selectIdempotencySQL, key, userID).Scan(
		&rec.Key, &rec.UserID, &rec.Status, &rec.RequestHash, &rec.ResultBookingID, &rec.ExpiresAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindFromPgError(err))
	}
	return &rec, nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id, spaceID, userID  uuid.UUID
		startAt, endAt       time.Time
		rawStatus            string
		checkInAt            *time.Time
		checkOutAt           *time.Time
		participantCount     int
		recType              string
		recEvery             int
		createdAt, updatedAt time.Time
	)
	err := row.Scan(
		&id, &spaceID, &userID, &startAt, &endAt, &rawStatus,
		&checkInAt, &checkOutAt, &participantCount,
		&recType, &recEvery, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	window, err := booking.NewWindow(startAt, endAt)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		id, spaceID, userID, window,
		booking.Status(rawStatus),
		checkInAt, checkOutAt,
		participantCount,
		booking.Recurrence{Type: booking.RecurrenceType(recType), Interval: recEvery},
		createdAt, updatedAt,
	), nil
}
