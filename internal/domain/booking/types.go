package booking

// Status is the booking state machine. Confirmed and pending bookings count
// toward conflict detection; cancelled and completed ones do not.
//
// Pending is never produced by creation in the current flow. It stays in the
// enum, and in the active set, for data written by earlier releases.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusPending, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsActive reports whether a booking in this status blocks the slot.
func (s Status) IsActive() bool {
	return s == StatusConfirmed || s == StatusPending
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// ActiveStatuses is the set used by every conflict and schedule query.
func ActiveStatuses() []Status {
	return []Status{StatusConfirmed, StatusPending}
}
