package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimeSlot  = errors.New("end time must be after start time")
	ErrStartTimeInPast  = errors.New("start time cannot be in the past")
	ErrDurationTooShort = errors.New("booking duration is below the minimum")
)

// MinDuration is the shortest interval a booking may occupy.
const MinDuration = 30 * time.Minute

// TimeSlot is a half-open interval [start, end). The exclusive end makes
// back-to-back bookings legal: a slot ending at 11:00 never conflicts with
// one starting at 11:00.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !end.After(start) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps applies the half-open overlap test: touching boundaries are not
// an overlap.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

func (ts TimeSlot) ValidateAt(now time.Time) error {
	if ts.start.Before(now) {
		return ErrStartTimeInPast
	}
	if ts.Duration() < MinDuration {
		return ErrDurationTooShort
	}
	return nil
}

// ToTstzrange renders the slot as a PostgreSQL tstzrange literal, matching
// the exclusion constraint on the bookings table.
func (ts TimeSlot) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}
