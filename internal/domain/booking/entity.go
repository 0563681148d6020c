package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus    = errors.New("invalid booking status")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrStatusUnchanged  = errors.New("booking already has requested status")
	ErrBookingInPast    = errors.New("booking has already started")
)

type Booking struct {
	id        uuid.UUID
	roomID    uuid.UUID
	userID    uuid.UUID
	timeSlot  TimeSlot
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func ReconstructBooking(
	id, roomID, userID uuid.UUID,
	timeSlot TimeSlot,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		roomID:    roomID,
		userID:    userID,
		timeSlot:  timeSlot,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Cancel transitions the booking to cancelled. Cancellation is a status
// change, never a delete; history is kept for audit and reporting.
// Only future bookings can be cancelled, and cancelling twice fails.
func (b *Booking) Cancel(now time.Time) error {
	if b.timeSlot.Start().Before(now) {
		return ErrBookingInPast
	}
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	b.status = StatusCancelled
	return nil
}

// ForceStatus applies an administrative transition. The only local rule is
// that the new status must differ; moving back into an active status is
// re-checked against the overlap invariant by the store.
func (b *Booking) ForceStatus(status Status) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	if b.status == status {
		return ErrStatusUnchanged
	}
	b.status = status
	return nil
}

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.userID == userID
}

func (b *Booking) IsActive() bool {
	return b.status.IsActive()
}

func (b *Booking) HasStarted(now time.Time) bool {
	return b.timeSlot.Start().Before(now)
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) RoomID() uuid.UUID    { return b.roomID }
func (b *Booking) UserID() uuid.UUID    { return b.userID }
func (b *Booking) TimeSlot() TimeSlot   { return b.timeSlot }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
