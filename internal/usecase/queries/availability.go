package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"roombooking/internal/infra"
	"roombooking/internal/pkg/errs"
)

var ErrRoomNotFound = errs.New("room not found")

// AvailabilityQueries answers "is this room free for [start, end)" and
// projects a room's schedule for a calendar day. Both read committed state
// only; the authoritative conflict check happens inside the booking
// transaction.
type AvailabilityQueries interface {
	// CheckAvailability reports whether the room is free for the half-open
	// interval [start, end) and returns every busy slot starting on the UTC
	// calendar day of start, sorted by start time. A booking ending exactly
	// at start or starting exactly at end does not block the interval. An
	// empty or inverted interval overlaps nothing and reports available.
	CheckAvailability(ctx context.Context, roomID uuid.UUID, start, end time.Time) (*AvailabilityView, error)
	// DaySchedule returns the busy slots of the UTC calendar day containing
	// date, sorted by start time.
	DaySchedule(ctx context.Context, roomID uuid.UUID, date time.Time) ([]BusySlot, error)
}

type availabilityQueriesImpl struct {
	bookings BookingReadStore
	rooms    RoomReadStore
}

func NewAvailabilityQueries(bookings BookingReadStore, rooms RoomReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{
		bookings: bookings,
		rooms:    rooms,
	}
}

func (q *availabilityQueriesImpl) CheckAvailability(ctx context.Context, roomID uuid.UUID, start, end time.Time) (*AvailabilityView, error) {
	if _, err := q.findRoom(ctx, roomID); err != nil {
		return nil, err
	}

	dayStart, dayEnd := utcDayBounds(start)
	busySlots, err := q.bookings.BusySlotsForRange(ctx, roomID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	// The requested interval can reach past the projected day, so the
	// overlap test runs against the full booking set, not the day slice.
	occupied, err := q.bookings.ExistsOverlappingActive(ctx, roomID, start, end)
	if err != nil {
		return nil, err
	}

	return &AvailabilityView{
		RoomID:                    roomID,
		Date:                      dayStart.Format(time.DateOnly),
		AvailableForRequestedTime: !occupied,
		BusySlots:                 busySlots,
	}, nil
}

func (q *availabilityQueriesImpl) DaySchedule(ctx context.Context, roomID uuid.UUID, date time.Time) ([]BusySlot, error) {
	if _, err := q.findRoom(ctx, roomID); err != nil {
		return nil, err
	}

	dayStart, dayEnd := utcDayBounds(date)
	return q.bookings.BusySlotsForRange(ctx, roomID, dayStart, dayEnd)
}

// findRoom treats an inactive room the same as a missing one.
func (q *availabilityQueriesImpl) findRoom(ctx context.Context, roomID uuid.UUID) (*RoomView, error) {
	room, err := q.rooms.FindByID(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !room.IsActive {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func utcDayBounds(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	dayStart := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return dayStart, dayStart.Add(24 * time.Hour)
}
