package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingCancelled     = "booking.cancelled"
	EventBookingStatusChanged = "booking.status_changed"
)

type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  uuid.UUID `json:"booking_id"`
	RoomID     uuid.UUID `json:"room_id"`
	UserID     uuid.UUID `json:"user_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher delivers booking events to interested consumers. Publishing
// is best effort: commands log failures and complete anyway, the booking row
// is the source of truth.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event BookingEvent) error
}
