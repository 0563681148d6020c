package shared

import (
	"context"
	"time"

	"roombooking/internal/domain/booking"
	"roombooking/internal/domain/room"
	"roombooking/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Rooms() RoomRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads are the write-side lookups commands need for validation.
// Obtained through a Tx they see uncommitted work, which is what keeps the
// availability check and the insert inside one transactional boundary.
type CommandReads interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
	RoomByName(ctx context.Context, name string) (*RoomSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// CountOverlappingActive counts confirmed/pending bookings on the room
	// intersecting [start, end) under the half-open overlap test.
	CountOverlappingActive(ctx context.Context, roomID uuid.UUID, start, end time.Time) (int64, error)
	// HasActiveBookingsFrom reports whether the room has confirmed/pending
	// bookings ending at or after the given instant.
	HasActiveBookingsFrom(ctx context.Context, roomID uuid.UUID, from time.Time) (bool, error)
}

// Minimal snapshot for command read operations
type RoomSnapshot struct {
	ID          uuid.UUID
	Name        string
	Description string
	Capacity    int
	IsActive    bool
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error
}

type RoomRepository interface {
	Create(ctx context.Context, tx db.DBTX, r *room.Room) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, r *room.Room) error
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, email, passwordHash, role string) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}
