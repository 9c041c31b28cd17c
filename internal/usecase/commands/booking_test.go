//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"coworkhub/internal/domain/booking"
	"coworkhub/internal/domain/space"
	"coworkhub/internal/domain/user"
	"coworkhub/internal/infra"
	"coworkhub/internal/pkg/clock"
	"coworkhub/internal/usecase/commands"
	"coworkhub/internal/usecase/queries"
	"coworkhub/internal/usecase/shared"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/google/uuid"
)

// In-memory doubles for the write-side ports.

type fakeBookingRepo struct {
	created  []*booking.Booking
	updated  []*booking.Booking
	conflict bool
}

func (f *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) (uuid.UUID, error) {
	if f.conflict {
		return uuid.Nil, infra.WrapRepoErr("exclusion constraint violated", nil, infra.KindConflict)
	}
	f.created = append(f.created, b)
	return b.ID(), nil
}

func (f *fakeBookingRepo) Update(_ context.Context, b *booking.Booking) error {
	f.updated = append(f.updated, b)
	return nil
}

type fakeIdempotencyRepo struct {
	inserted  bool
	completed []uuid.UUID
}

func (f *fakeIdempotencyRepo) TryInsert(_ context.Context, _, _ uuid.UUID, _, _ string, _ time.Time) (bool, error) {
	return f.inserted, nil
}

func (f *fakeIdempotencyRepo) MarkCompleted(_ context.Context, _, _ uuid.UUID, resultBookingID uuid.UUID) error {
	f.completed = append(f.completed, resultBookingID)
	return nil
}

type fakeReads struct {
	spaces      map[uuid.UUID]*shared.SpaceSnapshot
	bookings    map[uuid.UUID]*booking.Booking
	actives     []*booking.Booking
	idempotency *shared.IdempotencyRecord
}

func (f *fakeReads) SpaceByID(_ context.Context, id uuid.UUID) (*shared.SpaceSnapshot, error) {
	snap, ok := f.spaces[id]
	if !ok {
		return nil, infra.WrapRepoErr("space not found", nil, infra.KindNotFound)
	}
	return snap, nil
}

func (f *fakeReads) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return b, nil
}

func (f *fakeReads) ActiveBookingsForSpace(_ context.Context, _ uuid.UUID, _ booking.Window) ([]*booking.Booking, error) {
	return f.actives, nil
}

func (f *fakeReads) IdempotencyByKey(_ context.Context, _, _ uuid.UUID) (*shared.IdempotencyRecord, error) {
	if f.idempotency == nil {
		return nil, infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return f.idempotency, nil
}

type fakeTx struct {
	bookings    *fakeBookingRepo
	idempotency shared.IdempotencyRepository
	reads       *fakeReads
}

func (f *fakeTx) Bookings() shared.BookingRepository        { return f.bookings }
func (f *fakeTx) Idempotency() shared.IdempotencyRepository { return f.idempotency }
func (f *fakeTx) Reads() shared.CommandReads                { return f.reads }

type fakeUoW struct {
	tx *fakeTx
}

func (f *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, f.tx)
}

type fakeBookingQueries struct {
	views map[uuid.UUID]*queries.BookingView
}

func (f *fakeBookingQueries) GetByID(_ context.Context, _ uuid.UUID, _ user.Role, id uuid.UUID) (*queries.BookingView, error) {
	return f.GetByIDSystem(context.Background(), id)
}

func (f *fakeBookingQueries) GetByIDSystem(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	if v, ok := f.views[id]; ok {
		return v, nil
	}
	return &queries.BookingView{ID: id}, nil
}

func (f *fakeBookingQueries) ListByUser(_ context.Context, _ uuid.UUID, _ *queries.Cursor, _ int) ([]*queries.BookingListItem, *queries.Cursor, error) {
	return nil, nil, nil
}

func (f *fakeBookingQueries) ListForSpace(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]*queries.BookingListItem, error) {
	return nil, nil
}

type fakePublisher struct {
	events []commands.BookingEvent
}

func (f *fakePublisher) Publish(_ context.Context, event commands.BookingEvent) error {
	f.events = append(f.events, event)
	return nil
}

type BookingCommandsTestSuite struct {
	suite.Suite
	tx        *fakeTx
	publisher *fakePublisher
	clk       *clock.FixedClock
	commands  commands.BookingCommands

	spaceID uuid.UUID
	userID  uuid.UUID
	now     time.Time
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.now = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	s.clk = clock.NewFixedClock(s.now)
	s.spaceID = uuid.New()
	s.userID = uuid.New()

	rules, err := space.NewRules(10, 240, 60, false)
	s.Require().NoError(err)

	s.tx = &fakeTx{
		bookings:    &fakeBookingRepo{},
		idempotency: &fakeIdempotencyRepo{inserted: true},
		reads: &fakeReads{
			spaces: map[uuid.UUID]*shared.SpaceSnapshot{
				s.spaceID: {ID: s.spaceID, Name: "Focus Room", HourlyRateCents: 2500, Rules: rules},
			},
			bookings: map[uuid.UUID]*booking.Booking{},
		},
	}
	s.publisher = &fakePublisher{}
	s.commands = commands.NewBookingCommands(
		&fakeUoW{tx: s.tx},
		&fakeBookingQueries{views: map[uuid.UUID]*queries.BookingView{}},
		s.publisher,
		s.clk,
	)
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) validInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		SpaceID:          s.spaceID,
		StartAt:          s.now.Add(2 * time.Hour),
		EndAt:            s.now.Add(3 * time.Hour),
		ParticipantCount: 4,
	}
}

func (s *BookingCommandsTestSuite) storedBooking(status booking.Status, owner uuid.UUID) *booking.Booking {
	start := s.now.Add(2 * time.Hour)
	w, err := booking.NewWindow(start, start.Add(time.Hour))
	s.Require().NoError(err)
	b := booking.ReconstructBooking(
		uuid.New(), s.spaceID, owner, w, status,
		nil, nil, 2, booking.Recurrence{Type: booking.RecurNone},
		s.now.Add(-time.Hour), s.now.Add(-time.Hour),
	)
	s.tx.reads.bookings[b.ID()] = b
	return b
}

func (s *BookingCommandsTestSuite) TestCreate() {
	s.Run("creates confirmed booking and publishes event", func() {
		s.SetupTest()

		result, err := s.commands.Create(context.Background(), s.validInput(), s.userID, uuid.New())
		s.Require().NoError(err)
		s.False(result.IsReplayed)

		s.Require().Len(s.tx.bookings.created, 1)
		created := s.tx.bookings.created[0]
		s.Equal(booking.StatusConfirmed, created.Status())
		s.Equal(s.userID, created.UserID())

		s.Require().Len(s.tx.idempotency.(*fakeIdempotencyRepo).completed, 1)
		s.Equal(created.ID(), s.tx.idempotency.(*fakeIdempotencyRepo).completed[0])

		s.Require().Len(s.publisher.events, 1)
		s.Equal(commands.EventBookingCreated, s.publisher.events[0].Type)
		s.Equal(created.ID(), s.publisher.events[0].BookingID)
	})

	s.Run("approval space starts pending", func() {
		s.SetupTest()
		rules, err := space.NewRules(10, 240, 60, true)
		s.Require().NoError(err)
		s.tx.reads.spaces[s.spaceID].Rules = rules

		_, err = s.commands.Create(context.Background(), s.validInput(), s.userID, uuid.New())
		s.Require().NoError(err)
		s.Equal(booking.StatusPending, s.tx.bookings.created[0].Status())
	})

	s.Run("unknown space", func() {
		s.SetupTest()
		input := s.validInput()
		input.SpaceID = uuid.New()

		_, err := s.commands.Create(context.Background(), input, s.userID, uuid.New())
		s.ErrorIs(err, commands.ErrSpaceNotFound)
		s.Empty(s.publisher.events)
	})

	s.Run("validation failure wraps the domain reason", func() {
		s.SetupTest()
		input := s.validInput()
		input.StartAt = s.now.Add(30 * time.Minute) // inside the 60 min notice
		input.EndAt = s.now.Add(90 * time.Minute)

		_, err := s.commands.Create(context.Background(), input, s.userID, uuid.New())
		s.ErrorIs(err, commands.ErrValidation)
		s.ErrorIs(err, booking.ErrAdvanceNoticeInsufficient)
		s.Empty(s.tx.bookings.created)
	})

	s.Run("overlapping active booking conflicts", func() {
		s.SetupTest()
		s.tx.reads.actives = []*booking.Booking{s.storedBooking(booking.StatusConfirmed, uuid.New())}

		_, err := s.commands.Create(context.Background(), s.validInput(), s.userID, uuid.New())
		s.ErrorIs(err, commands.ErrBookingConflict)
	})

	s.Run("constraint violation on insert maps to conflict", func() {
		s.SetupTest()
		s.tx.bookings.conflict = true

		_, err := s.commands.Create(context.Background(), s.validInput(), s.userID, uuid.New())
		s.ErrorIs(err, commands.ErrBookingConflict)
	})

	s.Run("invalid recurrence rejected", func() {
		s.SetupTest()
		input := s.validInput()
		input.RecurrenceType = "fortnightly"
		input.RecurrenceEvery = 1

		_, err := s.commands.Create(context.Background(), input, s.userID, uuid.New())
		s.ErrorIs(err, commands.ErrValidation)
	})
}

func (s *BookingCommandsTestSuite) TestCreateIdempotency() {
	s.Run("completed key replays the stored booking", func() {
		s.SetupTest()
		existingID := uuid.New()
		s.tx.idempotency.(*fakeIdempotencyRepo).inserted = false
		s.tx.reads.idempotency = &shared.IdempotencyRecord{
			Status:          "completed",
			ResultBookingID: &existingID,
		}

		result, err := s.commands.Create(context.Background(), s.validInput(), s.userID, uuid.New())
		s.Require().NoError(err)
		s.True(result.IsReplayed)
		s.Equal(existingID, result.Booking.ID)
		s.Empty(s.tx.bookings.created)
		s.Empty(s.publisher.events, "replays never republish")
	})

	s.Run("processing key with same payload reports in progress", func() {
		s.SetupTest()
		input := s.validInput()
		s.tx.idempotency.(*fakeIdempotencyRepo).inserted = false
		s.tx.reads.idempotency = &shared.IdempotencyRecord{
			Status:      "processing",
			RequestHash: requestHashOf(s.T(), input, s.userID),
		}

		_, err := s.commands.Create(context.Background(), input, s.userID, uuid.New())
		s.ErrorIs(err, commands.ErrIdempotencyInProgress)
	})

	s.Run("processing key with different payload is a duplicate", func() {
		s.SetupTest()
		s.tx.idempotency.(*fakeIdempotencyRepo).inserted = false
		s.tx.reads.idempotency = &shared.IdempotencyRecord{
			Status:      "processing",
			RequestHash: "something-else",
		}

		_, err := s.commands.Create(context.Background(), s.validInput(), s.userID, uuid.New())
		s.ErrorIs(err, commands.ErrDuplicateRequest)
	})
}

// requestHashOf recovers the hash the command layer stores by driving a
// throwaway create against a recording idempotency repo.
func requestHashOf(t *testing.T, input commands.CreateBookingInput, userID uuid.UUID) string {
	t.Helper()

	rec := &hashRecorder{}
	tx := &fakeTx{
		bookings:    &fakeBookingRepo{},
		idempotency: rec,
		reads: &fakeReads{
			spaces:   map[uuid.UUID]*shared.SpaceSnapshot{},
			bookings: map[uuid.UUID]*booking.Booking{},
		},
	}
	clk := clock.NewFixedClock(time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC))
	cmds := commands.NewBookingCommands(&fakeUoW{tx: tx}, &fakeBookingQueries{}, &fakePublisher{}, clk)
	_, _ = cmds.Create(context.Background(), input, userID, uuid.New())

	require.NotEmpty(t, rec.hash)
	return rec.hash
}

type hashRecorder struct {
	hash string
}

func (h *hashRecorder) TryInsert(_ context.Context, _, _ uuid.UUID, _, requestHash string, _ time.Time) (bool, error) {
	h.hash = requestHash
	return true, nil
}

func (h *hashRecorder) MarkCompleted(_ context.Context, _, _ uuid.UUID, _ uuid.UUID) error {
	return nil
}

func (s *BookingCommandsTestSuite) TestCancel() {
	s.Run("owner cancels own booking", func() {
		s.SetupTest()
		b := s.storedBooking(booking.StatusConfirmed, s.userID)

		err := s.commands.Cancel(context.Background(), b.ID(), s.userID, user.RoleMember)
		s.Require().NoError(err)
		s.Equal(booking.StatusCancelled, b.Status())
		s.Require().Len(s.publisher.events, 1)
		s.Equal(commands.EventBookingCancelled, s.publisher.events[0].Type)
	})

	s.Run("member cannot cancel another member's booking", func() {
		s.SetupTest()
		b := s.storedBooking(booking.StatusConfirmed, uuid.New())

		err := s.commands.Cancel(context.Background(), b.ID(), s.userID, user.RoleMember)
		s.ErrorIs(err, commands.ErrBookingNotOwned)
	})

	s.Run("operator may cancel any booking", func() {
		s.SetupTest()
		b := s.storedBooking(booking.StatusConfirmed, uuid.New())

		err := s.commands.Cancel(context.Background(), b.ID(), s.userID, user.RoleOperator)
		s.NoError(err)
	})

	s.Run("cancelled booking cannot cancel again", func() {
		s.SetupTest()
		b := s.storedBooking(booking.StatusCancelled, s.userID)

		err := s.commands.Cancel(context.Background(), b.ID(), s.userID, user.RoleMember)
		s.ErrorIs(err, booking.ErrIneligibleTransition)
	})
}

func (s *BookingCommandsTestSuite) TestModify() {
	s.Run("reschedule inside the cutoff is frozen", func() {
		s.SetupTest()
		b := s.storedBooking(booking.StatusConfirmed, s.userID)
		s.clk.Set(b.Start().Add(-10 * time.Minute))

		input := commands.ModifyBookingInput{
			StartAt:          b.Start().Add(time.Hour),
			EndAt:            b.End().Add(time.Hour),
			ParticipantCount: 2,
		}
		err := s.commands.Modify(context.Background(), b.ID(), input, s.userID, user.RoleMember)
		s.ErrorIs(err, booking.ErrIneligibleTransition)
	})

	s.Run("valid reschedule updates and publishes", func() {
		s.SetupTest()
		b := s.storedBooking(booking.StatusConfirmed, s.userID)

		input := commands.ModifyBookingInput{
			StartAt:          b.Start().Add(time.Hour),
			EndAt:            b.End().Add(time.Hour),
			ParticipantCount: 6,
		}
		err := s.commands.Modify(context.Background(), b.ID(), input, s.userID, user.RoleMember)
		s.Require().NoError(err)

		s.Require().Len(s.tx.bookings.updated, 1)
		s.Equal(input.StartAt, s.tx.bookings.updated[0].Start())
		s.Equal(6, s.tx.bookings.updated[0].ParticipantCount())
		s.Require().Len(s.publisher.events, 1)
		s.Equal(commands.EventBookingModified, s.publisher.events[0].Type)
	})
}

func (s *BookingCommandsTestSuite) TestCheckInOut() {
	s.Run("check-in inside the grace window", func() {
		s.SetupTest()
		b := s.storedBooking(booking.StatusConfirmed, s.userID)
		s.clk.Set(b.Start().Add(-5 * time.Minute))

		err := s.commands.CheckIn(context.Background(), b.ID(), s.userID)
		s.Require().NoError(err)
		s.NotNil(b.CheckInAt())
	})

	s.Run("check-in too early", func() {
		s.SetupTest()
		b := s.storedBooking(booking.StatusConfirmed, s.userID)
		s.clk.Set(b.Start().Add(-time.Hour))

		err := s.commands.CheckIn(context.Background(), b.ID(), s.userID)
		s.ErrorIs(err, booking.ErrIneligibleTransition)
	})

	s.Run("check-out after check-in", func() {
		s.SetupTest()
		b := s.storedBooking(booking.StatusConfirmed, s.userID)
		s.clk.Set(b.Start())
		s.Require().NoError(s.commands.CheckIn(context.Background(), b.ID(), s.userID))

		s.clk.Set(b.Start().Add(30 * time.Minute))
		err := s.commands.CheckOut(context.Background(), b.ID(), s.userID)
		s.Require().NoError(err)
		s.NotNil(b.CheckOutAt())
	})
}

func (s *BookingCommandsTestSuite) TestConfirmReject() {
	s.Run("confirm pending booking", func() {
		s.SetupTest()
		b := s.storedBooking(booking.StatusPending, uuid.New())

		err := s.commands.Confirm(context.Background(), b.ID())
		s.Require().NoError(err)
		s.Equal(booking.StatusConfirmed, b.Status())
		s.Require().Len(s.publisher.events, 1)
		s.Equal(commands.EventBookingConfirmed, s.publisher.events[0].Type)
	})

	s.Run("reject pending booking", func() {
		s.SetupTest()
		b := s.storedBooking(booking.StatusPending, uuid.New())

		err := s.commands.Reject(context.Background(), b.ID())
		s.Require().NoError(err)
		s.Equal(booking.StatusRejected, b.Status())
	})

	s.Run("confirm already confirmed fails", func() {
		s.SetupTest()
		b := s.storedBooking(booking.StatusConfirmed, uuid.New())

		err := s.commands.Confirm(context.Background(), b.ID())
		s.ErrorIs(err, booking.ErrIneligibleTransition)
	})

	s.Run("complete confirmed booking", func() {
		s.SetupTest()
		b := s.storedBooking(booking.StatusConfirmed, uuid.New())

		err := s.commands.Complete(context.Background(), b.ID())
		s.Require().NoError(err)
		s.Equal(booking.StatusCompleted, b.Status())
		s.Require().Len(s.publisher.events, 1)
		s.Equal(commands.EventBookingCompleted, s.publisher.events[0].Type)
	})

	s.Run("complete pending booking fails", func() {
		s.SetupTest()
		b := s.storedBooking(booking.StatusPending, uuid.New())

		err := s.commands.Complete(context.Background(), b.ID())
		s.ErrorIs(err, booking.ErrIneligibleTransition)
	})
}
