package response

import (
	"time"

	"roombooking/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Capacity    int32     `json:"capacity"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromRoomView(rm *queries.RoomView) *RoomResponse {
	return &RoomResponse{
		ID:          rm.ID,
		Name:        rm.Name,
		Description: rm.Description,
		Capacity:    rm.Capacity,
		IsActive:    rm.IsActive,
		CreatedAt:   rm.CreatedAt,
		UpdatedAt:   rm.UpdatedAt,
	}
}

func FromRoomViews(rms []*queries.RoomView) []*RoomResponse {
	result := make([]*RoomResponse, len(rms))
	for i, rm := range rms {
		result[i] = FromRoomView(rm)
	}
	return result
}
