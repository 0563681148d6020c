//go:build unit || e2e

package builder

import (
	"time"

	dombooking "roombooking/internal/domain/booking"
	reqdto "roombooking/internal/handler/dto/request"
	"roombooking/internal/pkg/clock"
	"roombooking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	RoomID    uuid.UUID
	RoomName  string
	UserID    uuid.UUID
	UserEmail string
	StartTime time.Time
	EndTime   time.Time
	Status    string
	Now       time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		RoomID:    uuid.New(),
		RoomName:  "Conference Room A",
		UserID:    uuid.New(),
		UserEmail: "member@example.com",
		StartTime: now.Add(24 * time.Hour),
		EndTime:   now.Add(25 * time.Hour),
		Status:    "confirmed",
		Now:       now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	slot, err := dombooking.NewTimeSlot(b.StartTime, b.EndTime)
	if err != nil {
		return nil, err
	}

	factory := dombooking.NewFactory(clock.NewMockClock(b.Now))
	return factory.NewBooking(b.RoomID, b.UserID, slot)
}

func (b *BookingBuilder) BuildEntity() *dombooking.Booking {
	slot, err := dombooking.NewTimeSlot(b.StartTime, b.EndTime)
	if err != nil {
		panic(err)
	}

	return dombooking.ReconstructBooking(
		uuid.New(), b.RoomID, b.UserID,
		slot, dombooking.Status(b.Status),
		b.CreatedAt, b.UpdatedAt,
	)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		RoomID:    b.RoomID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:        uuid.New(),
		RoomID:    b.RoomID,
		RoomName:  b.RoomName,
		UserID:    b.UserID,
		UserEmail: b.UserEmail,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:        uuid.New(),
		RoomID:    b.RoomID,
		RoomName:  b.RoomName,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildBusySlot() queries.BusySlot {
	return queries.BusySlot{
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithRoomID(roomID uuid.UUID) *BookingBuilder {
	b.RoomID = roomID
	return b
}

func (b *BookingBuilder) WithUserID(userID uuid.UUID) *BookingBuilder {
	b.UserID = userID
	return b
}

func (b *BookingBuilder) WithSlot(start, end time.Time) *BookingBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *BookingBuilder) WithStatus(status string) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithNow(now time.Time) *BookingBuilder {
	b.Now = now
	return b
}

func (b *BookingBuilder) AsPast() *BookingBuilder {
	b.StartTime = b.Now.Add(-2 * time.Hour)
	b.EndTime = b.Now.Add(-1 * time.Hour)
	return b
}

func (b *BookingBuilder) AsCancelled() *BookingBuilder {
	b.Status = "cancelled"
	return b
}
