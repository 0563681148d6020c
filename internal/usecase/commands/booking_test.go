//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"roombooking/internal/domain/booking"
	"roombooking/internal/infra"
	"roombooking/internal/pkg/clock"
	"roombooking/internal/usecase/commands"
	"roombooking/internal/usecase/shared"
	"roombooking/tests/common/builder"
	queriesmock "roombooking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type bookingCommandsFixture struct {
	commands  commands.BookingCommands
	uow       *fakeUoW
	readStore *queriesmock.MockBookingReadStore
	publisher *recordingPublisher
	clock     *clock.MockClock
}

func newBookingCommandsFixture(t *testing.T) *bookingCommandsFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	uow := newFakeUoW()
	readStore := queriesmock.NewMockBookingReadStore(ctrl)
	publisher := &recordingPublisher{}
	mockClock := clock.NewMockClock(testNow)

	return &bookingCommandsFixture{
		commands:  commands.NewBookingCommands(uow, booking.NewFactory(mockClock), readStore, publisher, mockClock),
		uow:       uow,
		readStore: readStore,
		publisher: publisher,
		clock:     mockClock,
	}
}

func (f *bookingCommandsFixture) addRoom(active bool) *shared.RoomSnapshot {
	snapshot := builder.NewRoomBuilder().BuildSnapshot()
	snapshot.IsActive = active
	f.uow.tx.reads.rooms[snapshot.ID] = snapshot
	return snapshot
}

func (f *bookingCommandsFixture) addBooking(b *booking.Booking) {
	f.uow.tx.reads.bookings[b.ID()] = b
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	request := func(roomID uuid.UUID) *builder.BookingBuilder {
		return builder.NewBookingBuilder().WithRoomID(roomID).WithUserID(userID).WithNow(testNow)
	}

	t.Run("success: inserts booking and returns the stored view", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		room := f.addRoom(true)
		req := request(room.ID).BuildCreateRequestDTO()

		view := builder.NewBookingBuilder().WithRoomID(room.ID).WithUserID(userID).BuildView()
		f.readStore.EXPECT().FindByID(ctx, gomock.Any()).Return(view, nil)

		got, err := f.commands.CreateBooking(ctx, req, userID)
		require.NoError(t, err)
		assert.Equal(t, view, got)

		require.Len(t, f.uow.tx.bookings.created, 1)
		created := f.uow.tx.bookings.created[0]
		assert.Equal(t, room.ID, created.RoomID())
		assert.Equal(t, userID, created.UserID())
		assert.Equal(t, booking.StatusConfirmed, created.Status())

		events := f.publisher.Events()
		require.Len(t, events, 1)
		assert.Equal(t, shared.EventBookingCreated, events[0].Type)
	})

	t.Run("unknown room fails before interval validation", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		b := request(uuid.New())
		b.StartTime, b.EndTime = b.EndTime, b.StartTime

		_, err := f.commands.CreateBooking(ctx, b.BuildCreateRequestDTO(), userID)
		require.ErrorIs(t, err, commands.ErrRoomNotFound)
		assert.Empty(t, f.uow.tx.bookings.created)
	})

	t.Run("inverted interval is rejected", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		room := f.addRoom(true)
		b := request(room.ID)
		b.StartTime, b.EndTime = b.EndTime, b.StartTime

		_, err := f.commands.CreateBooking(ctx, b.BuildCreateRequestDTO(), userID)
		require.ErrorIs(t, err, commands.ErrInvalidInterval)
	})

	t.Run("past start is rejected", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		room := f.addRoom(true)
		b := request(room.ID)
		b.AsPast()

		_, err := f.commands.CreateBooking(ctx, b.BuildCreateRequestDTO(), userID)
		require.ErrorIs(t, err, commands.ErrInvalidInterval)
	})

	t.Run("too short duration is rejected", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		room := f.addRoom(true)
		b := request(room.ID)
		b.EndTime = b.StartTime.Add(booking.MinDuration - time.Minute)

		_, err := f.commands.CreateBooking(ctx, b.BuildCreateRequestDTO(), userID)
		require.ErrorIs(t, err, commands.ErrInvalidInterval)
	})

	t.Run("inactive room is treated as missing", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		room := f.addRoom(false)

		_, err := f.commands.CreateBooking(ctx, request(room.ID).BuildCreateRequestDTO(), userID)
		require.ErrorIs(t, err, commands.ErrRoomNotFound)
	})

	t.Run("inactive room wins over an invalid interval", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		room := f.addRoom(false)
		b := request(room.ID)
		b.StartTime, b.EndTime = b.EndTime, b.StartTime

		_, err := f.commands.CreateBooking(ctx, b.BuildCreateRequestDTO(), userID)
		require.ErrorIs(t, err, commands.ErrRoomNotFound)
	})

	t.Run("overlapping active booking blocks creation", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		room := f.addRoom(true)
		f.uow.tx.reads.overlapCount = 1

		_, err := f.commands.CreateBooking(ctx, request(room.ID).BuildCreateRequestDTO(), userID)
		require.ErrorIs(t, err, commands.ErrRoomNotAvailable)
		assert.Empty(t, f.uow.tx.bookings.created)
	})

	t.Run("constraint conflict on insert surfaces as not available", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		room := f.addRoom(true)
		f.uow.tx.bookings.createErr = infra.WrapRepoErr("exclusion violation", nil, infra.KindConflict)

		_, err := f.commands.CreateBooking(ctx, request(room.ID).BuildCreateRequestDTO(), userID)
		require.ErrorIs(t, err, commands.ErrRoomNotAvailable)
		assert.Empty(t, f.publisher.Events())
	})
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	futureBooking := func(f *bookingCommandsFixture) *booking.Booking {
		entity := builder.NewBookingBuilder().WithUserID(owner).WithNow(testNow).BuildEntity()
		f.addBooking(entity)
		return entity
	}

	t.Run("owner cancels a future booking", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		entity := futureBooking(f)

		require.NoError(t, f.commands.CancelBooking(ctx, entity.ID(), owner, false))
		assert.Equal(t, booking.StatusCancelled, f.uow.tx.bookings.statuses[entity.ID()])

		events := f.publisher.Events()
		require.Len(t, events, 1)
		assert.Equal(t, shared.EventBookingCancelled, events[0].Type)
		assert.Equal(t, "cancelled", events[0].Status)
	})

	t.Run("admin cancels another user's booking", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		entity := futureBooking(f)

		require.NoError(t, f.commands.CancelBooking(ctx, entity.ID(), stranger, true))
	})

	t.Run("unknown booking maps to not found", func(t *testing.T) {
		f := newBookingCommandsFixture(t)

		err := f.commands.CancelBooking(ctx, uuid.New(), owner, false)
		require.ErrorIs(t, err, commands.ErrBookingNotFound)
	})

	t.Run("stranger is denied before any state checks", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		entity := builder.NewBookingBuilder().WithUserID(owner).WithNow(testNow).AsPast().BuildEntity()
		f.addBooking(entity)

		err := f.commands.CancelBooking(ctx, entity.ID(), stranger, false)
		require.ErrorIs(t, err, commands.ErrBookingAccessDenied)
	})

	t.Run("started booking cannot be cancelled", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		entity := builder.NewBookingBuilder().WithUserID(owner).WithNow(testNow).AsPast().BuildEntity()
		f.addBooking(entity)

		err := f.commands.CancelBooking(ctx, entity.ID(), owner, false)
		require.ErrorIs(t, err, commands.ErrPastBooking)
	})

	t.Run("repeated cancellation fails", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		entity := builder.NewBookingBuilder().WithUserID(owner).WithNow(testNow).AsCancelled().BuildEntity()
		f.addBooking(entity)

		err := f.commands.CancelBooking(ctx, entity.ID(), owner, false)
		require.ErrorIs(t, err, commands.ErrAlreadyCancelled)
		assert.Empty(t, f.publisher.Events())
	})
}

func TestUpdateBookingStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("valid transition updates and publishes", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		entity := builder.NewBookingBuilder().WithNow(testNow).BuildEntity()
		f.addBooking(entity)

		require.NoError(t, f.commands.UpdateBookingStatus(ctx, entity.ID(), "completed"))
		assert.Equal(t, booking.StatusCompleted, f.uow.tx.bookings.statuses[entity.ID()])

		events := f.publisher.Events()
		require.Len(t, events, 1)
		assert.Equal(t, shared.EventBookingStatusChanged, events[0].Type)
	})

	t.Run("unknown status is rejected without touching storage", func(t *testing.T) {
		f := newBookingCommandsFixture(t)

		err := f.commands.UpdateBookingStatus(ctx, uuid.New(), "archived")
		require.ErrorIs(t, err, commands.ErrInvalidStatus)
	})

	t.Run("unknown booking maps to not found", func(t *testing.T) {
		f := newBookingCommandsFixture(t)

		err := f.commands.UpdateBookingStatus(ctx, uuid.New(), "completed")
		require.ErrorIs(t, err, commands.ErrBookingNotFound)
	})

	t.Run("unchanged status conflicts", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		entity := builder.NewBookingBuilder().WithNow(testNow).BuildEntity()
		f.addBooking(entity)

		err := f.commands.UpdateBookingStatus(ctx, entity.ID(), "confirmed")
		require.ErrorIs(t, err, commands.ErrStatusConflict)
	})

	t.Run("reactivation into a taken slot surfaces as not available", func(t *testing.T) {
		f := newBookingCommandsFixture(t)
		entity := builder.NewBookingBuilder().WithNow(testNow).AsCancelled().BuildEntity()
		f.addBooking(entity)
		f.uow.tx.bookings.updateErr = infra.WrapRepoErr("exclusion violation", nil, infra.KindConflict)

		err := f.commands.UpdateBookingStatus(ctx, entity.ID(), "confirmed")
		require.ErrorIs(t, err, commands.ErrRoomNotAvailable)
	})
}
