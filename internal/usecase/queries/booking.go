package queries

import (
	"context"
	"time"

	"coworkhub/internal/domain/user"
	"coworkhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrBookingNotOwned = errs.New("booking not owned by user")
)

const defaultPageSize = 50

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*BookingListItem, error)
	FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*BookingListItem, error)
	FindForSpaceWindow(ctx context.Context, spaceID uuid.UUID, from, to time.Time) ([]*BookingListItem, error)
}

type BookingQueries interface {
	// GetByID enforces ownership: members only see their own bookings,
	// operators and admins see everything.
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem bypasses ownership for internal callers
	// (idempotency replay, post-commit reads).
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) ([]*BookingListItem, *Cursor, error)
	ListForSpace(ctx context.Context, spaceID uuid.UUID, from, to time.Time) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorRole == user.RoleMember && view.UserID != actorID {
		return nil, ErrBookingNotOwned
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) ([]*BookingListItem, *Cursor, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	var (
		rows []*BookingListItem
		err  error
	)
	if after == nil {
		rows, err = q.store.FindByUserFirstPage(ctx, userID, int32(limit))
	} else {
		rows, err = q.store.FindByUserKeyset(ctx, userID, after.CreatedAt, after.ID, int32(limit))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) == limit {
		last := rows[len(rows)-1]
		next = &Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return rows, next, nil
}

func (q *bookingQueriesImpl) ListForSpace(ctx context.Context, spaceID uuid.UUID, from, to time.Time) ([]*BookingListItem, error) {
	return q.store.FindForSpaceWindow(ctx, spaceID, from, to)
}
