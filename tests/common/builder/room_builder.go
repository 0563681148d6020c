//go:build unit || e2e

package builder

import (
	"time"

	domroom "roombooking/internal/domain/room"
	reqdto "roombooking/internal/handler/dto/request"
	"roombooking/internal/usecase/queries"
	"roombooking/internal/usecase/shared"

	"github.com/google/uuid"
)

type RoomBuilder struct {
	Name        string
	Description string
	Capacity    int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewRoomBuilder() *RoomBuilder {
	now := time.Now()
	return &RoomBuilder{
		Name:        "Conference Room A",
		Description: "Large room with a projector",
		Capacity:    12,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (r *RoomBuilder) With(mutate func(*RoomBuilder)) *RoomBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *RoomBuilder) BuildDomain() (*domroom.Room, error) {
	return domroom.NewRoom(r.Name, r.Description, r.Capacity)
}

func (r *RoomBuilder) BuildCreateRequestDTO() reqdto.CreateRoomRequest {
	return reqdto.CreateRoomRequest{
		Name:        r.Name,
		Description: r.Description,
		Capacity:    r.Capacity,
	}
}

func (r *RoomBuilder) BuildView() *queries.RoomView {
	return &queries.RoomView{
		ID:          uuid.New(),
		Name:        r.Name,
		Description: r.Description,
		Capacity:    int32(r.Capacity),
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r *RoomBuilder) BuildSnapshot() *shared.RoomSnapshot {
	return &shared.RoomSnapshot{
		ID:          uuid.New(),
		Name:        r.Name,
		Description: r.Description,
		Capacity:    r.Capacity,
		IsActive:    r.IsActive,
	}
}

// Fluent builder methods
func (r *RoomBuilder) WithName(name string) *RoomBuilder {
	r.Name = name
	return r
}

func (r *RoomBuilder) WithDescription(description string) *RoomBuilder {
	r.Description = description
	return r
}

func (r *RoomBuilder) WithCapacity(capacity int) *RoomBuilder {
	r.Capacity = capacity
	return r
}

func (r *RoomBuilder) AsInactive() *RoomBuilder {
	r.IsActive = false
	return r
}
