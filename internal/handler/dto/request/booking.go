package request

import (
	"time"

	"roombooking/internal/domain/booking"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID    uuid.UUID `json:"room_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

func (r CreateBookingRequest) ToDomain() (booking.TimeSlot, error) {
	return booking.NewTimeSlot(r.StartTime, r.EndTime)
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
