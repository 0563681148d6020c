//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"roombooking/internal/infra"
	"roombooking/internal/usecase/queries"
	"roombooking/tests/common/builder"
	queriesmock "roombooking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newAvailabilityQueries(t *testing.T) (queries.AvailabilityQueries, *queriesmock.MockBookingReadStore, *queriesmock.MockRoomReadStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	bookings := queriesmock.NewMockBookingReadStore(ctrl)
	rooms := queriesmock.NewMockRoomReadStore(ctrl)
	return queries.NewAvailabilityQueries(bookings, rooms), bookings, rooms
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()
	start := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	dayStart := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	roomView := builder.NewRoomBuilder().BuildView()
	roomView.ID = roomID

	t.Run("free slot on active room is available", func(t *testing.T) {
		q, bookings, rooms := newAvailabilityQueries(t)

		rooms.EXPECT().FindByID(ctx, roomID).Return(roomView, nil)
		bookings.EXPECT().BusySlotsForRange(ctx, roomID, dayStart, dayEnd).Return(nil, nil)
		bookings.EXPECT().ExistsOverlappingActive(ctx, roomID, start, end).Return(false, nil)

		view, err := q.CheckAvailability(ctx, roomID, start, end)
		require.NoError(t, err)

		assert.True(t, view.AvailableForRequestedTime)
		assert.Equal(t, "2026-03-11", view.Date)
		assert.Empty(t, view.BusySlots)
	})

	t.Run("overlapping booking blocks the slot", func(t *testing.T) {
		q, bookings, rooms := newAvailabilityQueries(t)
		busy := []queries.BusySlot{{StartTime: start.Add(-30 * time.Minute), EndTime: start.Add(30 * time.Minute), Status: "confirmed"}}

		rooms.EXPECT().FindByID(ctx, roomID).Return(roomView, nil)
		bookings.EXPECT().BusySlotsForRange(ctx, roomID, dayStart, dayEnd).Return(busy, nil)
		bookings.EXPECT().ExistsOverlappingActive(ctx, roomID, start, end).Return(true, nil)

		view, err := q.CheckAvailability(ctx, roomID, start, end)
		require.NoError(t, err)

		assert.False(t, view.AvailableForRequestedTime)
		assert.Equal(t, busy, view.BusySlots)
	})

	t.Run("inactive room maps to not found", func(t *testing.T) {
		q, _, rooms := newAvailabilityQueries(t)
		inactive := builder.NewRoomBuilder().AsInactive().BuildView()
		inactive.ID = roomID

		rooms.EXPECT().FindByID(ctx, roomID).Return(inactive, nil)

		_, err := q.CheckAvailability(ctx, roomID, start, end)
		require.ErrorIs(t, err, queries.ErrRoomNotFound)
	})

	t.Run("unknown room maps to not found", func(t *testing.T) {
		q, _, rooms := newAvailabilityQueries(t)

		rooms.EXPECT().FindByID(ctx, roomID).
			Return(nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound))

		_, err := q.CheckAvailability(ctx, roomID, start, end)
		require.ErrorIs(t, err, queries.ErrRoomNotFound)
	})

	t.Run("unknown room wins regardless of the interval", func(t *testing.T) {
		q, _, rooms := newAvailabilityQueries(t)

		rooms.EXPECT().FindByID(ctx, roomID).
			Return(nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound))

		_, err := q.CheckAvailability(ctx, roomID, end, start)
		require.ErrorIs(t, err, queries.ErrRoomNotFound)
	})

	t.Run("empty interval overlaps nothing and reports available", func(t *testing.T) {
		q, bookings, rooms := newAvailabilityQueries(t)

		rooms.EXPECT().FindByID(ctx, roomID).Return(roomView, nil)
		bookings.EXPECT().BusySlotsForRange(ctx, roomID, dayStart, dayEnd).Return(nil, nil)
		bookings.EXPECT().ExistsOverlappingActive(ctx, roomID, start, start).Return(false, nil)

		view, err := q.CheckAvailability(ctx, roomID, start, start)
		require.NoError(t, err)
		assert.True(t, view.AvailableForRequestedTime)
	})
}

func TestDaySchedule(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()
	date := time.Date(2026, 3, 11, 15, 45, 0, 0, time.UTC)
	dayStart := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	roomView := builder.NewRoomBuilder().BuildView()
	roomView.ID = roomID

	t.Run("returns slots for the UTC day containing the date", func(t *testing.T) {
		q, bookings, rooms := newAvailabilityQueries(t)
		busy := []queries.BusySlot{
			{StartTime: dayStart.Add(9 * time.Hour), EndTime: dayStart.Add(10 * time.Hour)},
			{StartTime: dayStart.Add(14 * time.Hour), EndTime: dayStart.Add(15 * time.Hour)},
		}

		rooms.EXPECT().FindByID(ctx, roomID).Return(roomView, nil)
		bookings.EXPECT().BusySlotsForRange(ctx, roomID, dayStart, dayEnd).Return(busy, nil)

		slots, err := q.DaySchedule(ctx, roomID, date)
		require.NoError(t, err)
		assert.Equal(t, busy, slots)
	})

	t.Run("unknown room maps to not found", func(t *testing.T) {
		q, _, rooms := newAvailabilityQueries(t)

		rooms.EXPECT().FindByID(ctx, roomID).
			Return(nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound))

		_, err := q.DaySchedule(ctx, roomID, date)
		require.ErrorIs(t, err, queries.ErrRoomNotFound)
	})
}
