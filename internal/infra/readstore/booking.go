package readstore

import (
	"context"
	"time"

	"coworkhub/internal/infra"
	"coworkhub/internal/infra/db"
	"coworkhub/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
	"github.com/google/uuid"
)

type BookingReadStore struct {
	q db.Querier
}

func NewBookingReadStore(q db.Querier) *BookingReadStore {
	return &BookingReadStore{q: q}
}

const bookingViewSQL = `
SELECT b.id, b.space_id, s.name, b.user_id, u.email,
       b.start_at, b.end_at, b.status,
       b.check_in_at, b.check_out_at, b.participant_count,
       b.recurrence_type, b.recurrence_every,
       b.created_at, b.updated_at
FROM bookings b
JOIN spaces s ON s.id = b.space_id
JOIN users u ON u.id = b.user_id
WHERE b.id = $1
`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var v queries.BookingView
	err := r.q.QueryRow(ctx, bookingViewSQL, id).Scan(
		&v.ID, &v.SpaceID, &v.SpaceName, &v.UserID, &v.UserEmail,
		&v.StartAt, &v.EndAt, &v.Status,
		&v.CheckInAt, &v.CheckOutAt, &v.ParticipantCount,
		&v.RecurrenceType, &v.RecurrenceEvery,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("booking not found", err, infra.KindFromPgError(err))
	}
	return &v, nil
}

const bookingListSQL = `
SELECT b.id, b.space_id, s.name, b.start_at, b.end_at, b.status, b.participant_count, b.created_at
FROM bookings b
JOIN spaces s ON s.id = b.space_id
`

func (r *BookingReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	sql := bookingListSQL + `
WHERE b.user_id = $1
ORDER BY b.created_at DESC, b.id DESC
LIMIT $2
`
	rows, err := r.q.Query(ctx, sql, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err, infra.KindFromPgError(err))
	}
	return collectListItems(rows)
}

func (r *BookingReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	sql := bookingListSQL + `
WHERE b.user_id = $1
  AND (b.created_at, b.id) < ($2, $3)
ORDER BY b.created_at DESC, b.id DESC
LIMIT $4
`
	rows, err := r.q.Query(ctx, sql, userID, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err, infra.KindFromPgError(err))
	}
	return collectListItems(rows)
}

func (r *BookingReadStore) FindForSpaceWindow(ctx context.Context, spaceID uuid.UUID, from, to time.Time) ([]*queries.BookingListItem, error) {
	sql := bookingListSQL + `
WHERE b.space_id = $1
  AND b.start_at < $3
  AND b.end_at > $2
ORDER BY b.start_at ASC
`
	rows, err := r.q.Query(ctx, sql, spaceID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings for space", err, infra.KindFromPgError(err))
	}
	return collectListItems(rows)
}

func collectListItems(rows pgx.Rows) ([]*queries.BookingListItem, error) {
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var it queries.BookingListItem
		if err := rows.Scan(&it.ID, &it.SpaceID, &it.SpaceName, &it.StartAt, &it.EndAt, &it.Status, &it.ParticipantCount, &it.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return items, nil
}
