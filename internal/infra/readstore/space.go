package readstore

import (
	"context"
	"time"

	"coworkhub/internal/domain/booking"
	"coworkhub/internal/infra"
	"coworkhub/internal/infra/db"
	"coworkhub/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
	"github.com/google/uuid"
)

type SpaceReadStore struct {
	q db.Querier
}

func NewSpaceReadStore(q db.Querier) *SpaceReadStore {
	return &SpaceReadStore{q: q}
}

const spaceViewSQL = `
SELECT id, name, description, capacity, hourly_rate_cents,
       max_duration_min, advance_notice_min, requires_approval,
       created_at, updated_at
FROM spaces
`

func (r *SpaceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SpaceView, error) {
	var v queries.SpaceView
	err := r.q.QueryRow(ctx, spaceViewSQL+"WHERE id = $1", id).Scan(
		&v.ID, &v.Name, &v.Description, &v.Capacity, &v.HourlyRateCents,
		&v.MaxDurationMin, &v.AdvanceNoticeMin, &v.RequiresApproval,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("space not found", err, infra.KindFromPgError(err))
	}
	return &v, nil
}

func (r *SpaceReadStore) FindAll(ctx context.Context) ([]*queries.SpaceView, error) {
	rows, err := r.q.Query(ctx, spaceViewSQL+"ORDER BY name ASC")
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list spaces", err, infra.KindFromPgError(err))
	}
	defer rows.Close()

	var views []*queries.SpaceView
	for rows.Next() {
		var v queries.SpaceView
		if err := rows.Scan(
			&v.ID, &v.Name, &v.Description, &v.Capacity, &v.HourlyRateCents,
			&v.MaxDurationMin, &v.AdvanceNoticeMin, &v.RequiresApproval,
			&v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan space row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read space rows", err)
	}
	return views, nil
}

// SpaceBookingStore feeds the interval engine with domain bookings.
type SpaceBookingStore struct {
	q db.Querier
}

func NewSpaceBookingStore(q db.Querier) *SpaceBookingStore {
	return &SpaceBookingStore{q: q}
}

const spaceBookingsSQL = `
SELECT id, space_id, user_id, start_at, end_at, status,
       check_in_at, check_out_at, participant_count,
       recurrence_type, recurrence_every, created_at, updated_at
FROM bookings
WHERE space_id = $1
  AND status = ANY($4)
  AND start_at < $3
  AND end_at > $2
ORDER BY start_at ASC
`

func (r *SpaceBookingStore) ActiveForSpace(ctx context.Context, spaceID uuid.UUID, window booking.Window) ([]*booking.Booking, error) {
	return r.forSpace(ctx, spaceID, window, []string{"pending", "confirmed"})
}

func (r *SpaceBookingStore) OccupancyForSpace(ctx context.Context, spaceID uuid.UUID, window booking.Window) ([]*booking.Booking, error) {
	return r.forSpace(ctx, spaceID, window, []string{"pending", "confirmed", "completed"})
}

func (r *SpaceBookingStore) forSpace(ctx context.Context, spaceID uuid.UUID, window booking.Window, statuses []string) ([]*booking.Booking, error) {
	rows, err := r.q.Query(ctx, spaceBookingsSQL, spaceID, window.Start(), window.End(), statuses)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load space bookings", err, infra.KindFromPgError(err))
	}
	defer rows.Close()

	var result []*booking.Booking
	for rows.Next() {
		b, err := scanDomainBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return result, nil
}

func scanDomainBooking(row pgx.Row) (*booking.Booking, error) {
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
