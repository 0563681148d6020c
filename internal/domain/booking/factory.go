package booking

import (
	"roombooking/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	clock clock.Clock
}

func NewFactory(clock clock.Clock) *Factory {
	return &Factory{clock: clock}
}

// NewBooking validates the slot against the current time and returns a
// booking in confirmed status. Availability is not checked here; that is the
// store's concern inside the creating transaction.
func (f *Factory) NewBooking(roomID, userID uuid.UUID, slot TimeSlot) (*Booking, error) {
	if err := slot.ValidateAt(f.clock.Now()); err != nil {
		return nil, err
	}

	return &Booking{
		id:       uuid.New(),
		roomID:   roomID,
		userID:   userID,
		timeSlot: slot,
		status:   StatusConfirmed,
	}, nil
}
