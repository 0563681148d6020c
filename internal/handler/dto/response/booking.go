package response

import (
	"time"

	"roombooking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"roomId"`
	RoomName  string    `json:"roomName"`
	UserID    uuid.UUID `json:"userId"`
	UserEmail string    `json:"userEmail"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BookingListEntry struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"roomId"`
	RoomName  string    `json:"roomName"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type BookingListResponse struct {
	Items      []*BookingListEntry `json:"items"`
	NextCursor *string             `json:"nextCursor,omitempty"`
}

type AdminBookingListResponse struct {
	Items      []*BookingResponse `json:"items"`
	NextCursor *string            `json:"nextCursor,omitempty"`
}

type BusySlotResponse struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
}

type AvailabilityResponse struct {
	RoomID                    uuid.UUID          `json:"roomId"`
	Date                      string             `json:"date"`
	AvailableForRequestedTime bool               `json:"availableForRequestedTime"`
	BusySlots                 []BusySlotResponse `json:"busySlots"`
}

type ScheduleResponse struct {
	RoomID    uuid.UUID          `json:"roomId"`
	Date      string             `json:"date"`
	BusySlots []BusySlotResponse `json:"busySlots"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:        rm.ID,
		RoomID:    rm.RoomID,
		RoomName:  rm.RoomName,
		UserID:    rm.UserID,
		UserEmail: rm.UserEmail,
		StartTime: rm.StartTime,
		EndTime:   rm.EndTime,
		Status:    rm.Status,
		CreatedAt: rm.CreatedAt,
		UpdatedAt: rm.UpdatedAt,
	}
}

func FromBookingListItems(items []*queries.BookingListItem, next *queries.Cursor) *BookingListResponse {
	entries := make([]*BookingListEntry, len(items))
	for i, item := range items {
		entries[i] = &BookingListEntry{
			ID:        item.ID,
			RoomID:    item.RoomID,
			RoomName:  item.RoomName,
			StartTime: item.StartTime,
			EndTime:   item.EndTime,
			Status:    item.Status,
			CreatedAt: item.CreatedAt,
		}
	}

	resp := &BookingListResponse{Items: entries}
	if next != nil {
		resp.NextCursor = &next.After
	}
	return resp
}

func FromBookingViews(views []*queries.BookingView, next *queries.Cursor) *AdminBookingListResponse {
	items := make([]*BookingResponse, len(views))
	for i, v := range views {
		items[i] = FromBookingView(v)
	}

	resp := &AdminBookingListResponse{Items: items}
	if next != nil {
		resp.NextCursor = &next.After
	}
	return resp
}

func FromBusySlots(slots []queries.BusySlot) []BusySlotResponse {
	result := make([]BusySlotResponse, len(slots))
	for i, slot := range slots {
		result[i] = BusySlotResponse{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Status:    slot.Status,
		}
	}
	return result
}

func FromAvailabilityView(rm *queries.AvailabilityView) *AvailabilityResponse {
	return &AvailabilityResponse{
		RoomID:                    rm.RoomID,
		Date:                      rm.Date,
		AvailableForRequestedTime: rm.AvailableForRequestedTime,
		BusySlots:                 FromBusySlots(rm.BusySlots),
	}
}
