package queries

import (
	"context"

	"coworkhub/internal/domain/booking"
	"coworkhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrSpaceNotFound = errs.New("space not found")
	ErrInvalidWindow = errs.New("invalid reporting window")
)

type SpaceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SpaceView, error)
	FindAll(ctx context.Context) ([]*SpaceView, error)
}

// SpaceBookingStore supplies domain bookings so the interval engine can
// run against consistent snapshots.
type SpaceBookingStore interface {
	// ActiveForSpace: pending and confirmed bookings overlapping the window.
	ActiveForSpace(ctx context.Context, spaceID uuid.UUID, window booking.Window) ([]*booking.Booking, error)
	// OccupancyForSpace: everything that held the space during the
	// window (pending, confirmed and completed, never cancelled or
	// rejected).
	OccupancyForSpace(ctx context.Context, spaceID uuid.UUID, window booking.Window) ([]*booking.Booking, error)
}

type SpaceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*SpaceView, error)
	List(ctx context.Context) ([]*SpaceView, error)
	// Availability answers whether a window is free on a space, naming
	// the bookings that block it.
	Availability(ctx context.Context, spaceID uuid.UUID, window booking.Window) (*AvailabilityView, error)
	// Utilization feeds the analytics dashboard: share of the window
	// covered by bookings, as a percentage.
	Utilization(ctx context.Context, spaceID uuid.UUID, window booking.Window) (*UtilizationView, error)
}

type spaceQueriesImpl struct {
	spaces   SpaceReadStore
	bookings SpaceBookingStore
}

func NewSpaceQueries(spaces SpaceReadStore, bookings SpaceBookingStore) SpaceQueries {
	return &spaceQueriesImpl{spaces: spaces, bookings: bookings}
}

func (q *spaceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SpaceView, error) {
	return q.spaces.FindByID(ctx, id)
}

func (q *spaceQueriesImpl) List(ctx context.Context) ([]*SpaceView, error) {
	return q.spaces.FindAll(ctx)
}

func (q *spaceQueriesImpl) Availability(ctx context.Context, spaceID uuid.UUID, window booking.Window) (*AvailabilityView, error) {
	if _, err := q.spaces.FindByID(ctx, spaceID); err != nil {
		return nil, err
	}

	actives, err := q.bookings.ActiveForSpace(ctx, spaceID, window)
	if err != nil {
		return nil, err
	}

	// Synthetic candidate: a probe booking over the requested window.
	probe, err := booking.NewBooking(spaceID, uuid.Nil, window, 1, booking.Recurrence{Type: booking.RecurNone}, booking.StatusPending)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidWindow)
	}

	conflicts := booking.Conflicts(probe, actives)
	view := &AvailabilityView{
		SpaceID:   spaceID,
		From:      window.Start(),
		To:        window.End(),
		Available: len(conflicts) == 0,
	}
	for _, c := range conflicts {
		view.ConflictIDs = append(view.ConflictIDs, c.ID())
	}
	return view, nil
}

func (q *spaceQueriesImpl) Utilization(ctx context.Context, spaceID uuid.UUID, window booking.Window) (*UtilizationView, error) {
	if _, err := q.spaces.FindByID(ctx, spaceID); err != nil {
		return nil, err
	}

	occupancy, err := q.bookings.OccupancyForSpace(ctx, spaceID, window)
	if err != nil {
		return nil, err
	}

	return &UtilizationView{
		SpaceID:         spaceID,
		From:            window.Start(),
		To:              window.End(),
		BookingCount:    len(occupancy),
		UtilizationRate: booking.UtilizationRate(occupancy, window),
	}, nil
}
