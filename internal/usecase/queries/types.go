package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	RoomName  string    `json:"room_name"`
	UserID    uuid.UUID `json:"user_id"`
	UserEmail string    `json:"user_email"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BookingListItem struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	RoomName  string    `json:"room_name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type RoomView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Capacity    int32     `json:"capacity"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BusySlot is one occupied interval on a room's daily schedule. The interval
// is half-open: EndTime is the first instant the room is free again. Status
// distinguishes confirmed from pending occupancy.
type BusySlot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

type AvailabilityView struct {
	RoomID                    uuid.UUID  `json:"room_id"`
	Date                      string     `json:"date"`
	AvailableForRequestedTime bool       `json:"available_for_requested_time"`
	BusySlots                 []BusySlot `json:"busy_slots"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

// Analytics projections
type StatusCountView struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DayOfWeekCountView struct {
	DayOfWeek string `json:"day_of_week"`
	Count     int64  `json:"count"`
}

type RoomUsageView struct {
	RoomID       uuid.UUID `json:"room_id"`
	RoomName     string    `json:"room_name"`
	BookingCount int64     `json:"booking_count"`
}
