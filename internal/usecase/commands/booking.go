package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"coworkhub/internal/domain/booking"
	"coworkhub/internal/domain/user"
	"coworkhub/internal/infra"
	"coworkhub/internal/pkg/clock"
	"coworkhub/internal/pkg/errs"
	"coworkhub/internal/usecase/queries"
	"coworkhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSpaceNotFound           = errs.New("space not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrBookingNotOwned         = errs.New("booking not owned by user")
	ErrBookingConflict         = errs.New("booking conflict")
	ErrValidation              = errs.New("booking validation failed")
	ErrDuplicateRequest        = errs.New("duplicate booking request")
	ErrIdempotencyInProgress   = errs.New("idempotency in progress")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

const idempotencyTTL = 24 * time.Hour

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type BookingCommands interface {
	Create(ctx context.Context, input CreateBookingInput, userID uuid.UUID, idempotencyKey uuid.UUID) (*CreateBookingResult, error)
	Modify(ctx context.Context, bookingID uuid.UUID, input ModifyBookingInput, actorID uuid.UUID, actorRole user.Role) error
	Cancel(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID, actorRole user.Role) error
	CheckIn(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID) error
	CheckOut(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID) error
	Confirm(ctx context.Context, bookingID uuid.UUID) error
	Reject(ctx context.Context, bookingID uuid.UUID) error
	Complete(ctx context.Context, bookingID uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	publisher      EventPublisher
	clock          clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	publisher EventPublisher,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		publisher:      publisher,
		clock:          clk,
	}
}

func (uc *bookingCommandsImpl) Create(
	ctx context.Context,
	input CreateBookingInput,
	userID uuid.UUID,
	idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	requestHash := calculateRequestHash(input)
	expiresAt := uc.clock.Now().Add(idempotencyTTL)

	var (
		replayID  *uuid.UUID
		createdID uuid.UUID
		spaceID   uuid.UUID
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		inserted, err := tx.Idempotency().TryInsert(ctx, idempotencyKey, userID, "POST /bookings", requestHash, expiresAt)
		if err != nil {
			return errs.Mark(err, ErrIdempotencyCheckFailed)
		}
		if !inserted {
			existing, err := tx.Reads().IdempotencyByKey(ctx, idempotencyKey, userID)
			if err != nil {
				return errs.Mark(err, ErrIdempotencyCheckFailed)
			}
			switch existing.Status {
			case "completed":
				if existing.ResultBookingID == nil {
					return errs.New("completed request missing result booking ID")
				}
				replayID = existing.ResultBookingID
				return nil
			case "processing":
				if existing.RequestHash != requestHash {
					return ErrDuplicateRequest
				}
				return ErrIdempotencyInProgress
			default:
				return errs.New("invalid idempotency key status")
			}
		}

		id, sid, err := uc.createNewBooking(ctx, tx, input, userID)
		if err != nil {
			return err
		}
		createdID, spaceID = id, sid

		return tx.Idempotency().MarkCompleted(ctx, idempotencyKey, userID, id)
	})
	if err != nil {
		return nil, err
	}

	if replayID != nil {
		view, err := uc.bookingQueries.GetByIDSystem(ctx, *replayID)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return &CreateBookingResult{Booking: view, IsReplayed: true}, nil
	}

	uc.publish(ctx, EventBookingCreated, createdID, spaceID, userID)

	view, err := uc.bookingQueries.GetByIDSystem(ctx, createdID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &CreateBookingResult{Booking: view, IsReplayed: false}, nil
}

func (uc *bookingCommandsImpl) createNewBooking(
	ctx context.Context,
	tx shared.Tx,
	input CreateBookingInput,
	userID uuid.UUID,
) (uuid.UUID, uuid.UUID, error) {
	spaceSnap, err := tx.Reads().SpaceByID(ctx, input.SpaceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, uuid.Nil, ErrSpaceNotFound
		}
		return uuid.Nil, uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	now := uc.clock.Now()
	if verr := booking.Validate(input.StartAt, input.EndAt, input.ParticipantCount, spaceSnap.Rules, now); verr != nil {
		return uuid.Nil, uuid.Nil, errs.Mark(verr, ErrValidation)
	}

	window, err := booking.NewWindow(input.StartAt, input.EndAt)
	if err != nil {
		return uuid.Nil, uuid.Nil, errs.Mark(err, ErrValidation)
	}

	recurrence, err := parseRecurrence(input.RecurrenceType, input.RecurrenceEvery)
	if err != nil {
		return uuid.Nil, uuid.Nil, errs.Mark(err, ErrValidation)
	}

	candidate, err := booking.NewBooking(
		input.SpaceID,
		userID,
		window,
		input.ParticipantCount,
		recurrence,
		booking.InitialStatus(spaceSnap.Rules),
	)
	if err != nil {
		return uuid.Nil, uuid.Nil, errs.Mark(err, ErrValidation)
	}

	actives, err := tx.Reads().ActiveBookingsForSpace(ctx, input.SpaceID, window)
	if err != nil {
		return uuid.Nil, uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if conflicts := booking.Conflicts(candidate, actives); len(conflicts) > 0 {
		return uuid.Nil, uuid.Nil, ErrBookingConflict
	}

	// The exclusion constraint is the authority; the scan above only
	// gives callers a friendly answer against the snapshot.
	id, err := tx.Bookings().Create(ctx, candidate)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return uuid.Nil, uuid.Nil, ErrBookingConflict
		}
		return uuid.Nil, uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return id, input.SpaceID, nil
}

func (uc *bookingCommandsImpl) Modify(
	ctx context.Context,
	bookingID uuid.UUID,
	input ModifyBookingInput,
	actorID uuid.UUID,
	actorRole user.Role,
) error {
	now := uc.clock.Now()

	var spaceID, ownerID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := uc.loadOwnedBooking(ctx, tx, bookingID, actorID, actorRole)
		if err != nil {
			return err
		}

		if !b.CanModify(now) {
			return booking.ErrIneligibleTransition
		}

		spaceSnap, err := tx.Reads().SpaceByID(ctx, b.SpaceID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSpaceNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if verr := booking.Validate(input.StartAt, input.EndAt, input.ParticipantCount, spaceSnap.Rules, now); verr != nil {
			return errs.Mark(verr, ErrValidation)
		}
		window, err := booking.NewWindow(input.StartAt, input.EndAt)
		if err != nil {
			return errs.Mark(err, ErrValidation)
		}

		actives, err := tx.Reads().ActiveBookingsForSpace(ctx, b.SpaceID(), window)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := b.Reschedule(window, input.ParticipantCount); err != nil {
			return errs.Mark(err, ErrValidation)
		}
		// The stored copy of this booking carries the same id, so the
		// scan never reports a booking as conflicting with itself.
		if booking.HasConflict(b, actives) {
			return ErrBookingConflict
		}

		spaceID, ownerID = b.SpaceID(), b.UserID()
		return uc.persistUpdate(ctx, tx, b)
	})
	if err != nil {
		return err
	}

	uc.publish(ctx, EventBookingModified, bookingID, spaceID, ownerID)
	return nil
}

func (uc *bookingCommandsImpl) Cancel(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID, actorRole user.Role) error {
	return uc.transition(ctx, bookingID, actorID, actorRole, EventBookingCancelled,
		func(b *booking.Booking, _ time.Time) error { return b.Cancel() })
}

func (uc *bookingCommandsImpl) CheckIn(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID) error {
	return uc.transition(ctx, bookingID, actorID, user.RoleMember, EventBookingCheckedIn,
		func(b *booking.Booking, now time.Time) error { return b.CheckIn(now) })
}

func (uc *bookingCommandsImpl) CheckOut(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID) error {
	return uc.transition(ctx, bookingID, actorID, user.RoleMember, EventBookingCheckedOut,
		func(b *booking.Booking, now time.Time) error { return b.CheckOut(now) })
}

func (uc *bookingCommandsImpl) Confirm(ctx context.Context, bookingID uuid.UUID) error {
	return uc.transition(ctx, bookingID, uuid.Nil, user.RoleOperator, EventBookingConfirmed,
		func(b *booking.Booking, _ time.Time) error { return b.Confirm() })
}

func (uc *bookingCommandsImpl) Reject(ctx context.Context, bookingID uuid.UUID) error {
	return uc.transition(ctx, bookingID, uuid.Nil, user.RoleOperator, EventBookingRejected,
		func(b *booking.Booking, _ time.Time) error { return b.Reject() })
}

func (uc *bookingCommandsImpl) Complete(ctx context.Context, bookingID uuid.UUID) error {
	return uc.transition(ctx, bookingID, uuid.Nil, user.RoleOperator, EventBookingCompleted,
		func(b *booking.Booking, _ time.Time) error { return b.Complete() })
}

func (uc *bookingCommandsImpl) transition(
	ctx context.Context,
	bookingID uuid.UUID,
	actorID uuid.UUID,
	actorRole user.Role,
	eventType string,
	apply func(b *booking.Booking, now time.Time) error,
) error {
	now := uc.clock.Now()

	var spaceID, ownerID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := uc.loadOwnedBooking(ctx, tx, bookingID, actorID, actorRole)
		if err != nil {
			return err
		}

		if err := apply(b, now); err != nil {
			return err
		}

		spaceID, ownerID = b.SpaceID(), b.UserID()
		return uc.persistUpdate(ctx, tx, b)
	})
	if err != nil {
		return err
	}

	uc.publish(ctx, eventType, bookingID, spaceID, ownerID)
	return nil
}

func (uc *bookingCommandsImpl) loadOwnedBooking(
	ctx context.Context,
	tx shared.Tx,
	bookingID, actorID uuid.UUID,
	actorRole user.Role,
) (*booking.Booking, error) {
	b, err := tx.Reads().BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if actorRole == user.RoleMember && b.UserID() != actorID {
		return nil, ErrBookingNotOwned
	}
	return b, nil
}

func (uc *bookingCommandsImpl) persistUpdate(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
	if err := tx.Bookings().Update(ctx, b); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return ErrBookingConflict
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (uc *bookingCommandsImpl) publish(ctx context.Context, eventType string, bookingID, spaceID, userID uuid.UUID) {
	event := BookingEvent{
		Type:       eventType,
		BookingID:  bookingID,
		SpaceID:    spaceID,
		UserID:     userID,
		OccurredAt: uc.clock.Now(),
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish booking event", "type", eventType, "booking_id", bookingID, "error", err.Error())
	}
}

func parseRecurrence(recType string, every int) (booking.Recurrence, error) {
	if recType == "" || recType == string(booking.RecurNone) {
		return booking.Recurrence{Type: booking.RecurNone}, nil
	}
	t := booking.RecurrenceType(recType)
	if !t.IsValid() {
		return booking.Recurrence{}, errs.New("invalid recurrence type")
	}
	if every < 1 {
		return booking.Recurrence{}, errs.New("recurrence interval must be positive")
	}
	return booking.Recurrence{Type: t, Interval: every}, nil
}

func calculateRequestHash(input CreateBookingInput) string {
	data, _ := json.Marshal(input)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
