package response

import (
	"roombooking/internal/usecase/queries"

	"github.com/google/uuid"
)

type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DayOfWeekCountResponse struct {
	DayOfWeek string `json:"dayOfWeek"`
	Count     int64  `json:"count"`
}

type RoomUsageResponse struct {
	RoomID       uuid.UUID `json:"roomId"`
	RoomName     string    `json:"roomName"`
	BookingCount int64     `json:"bookingCount"`
}

func FromStatusCounts(rms []*queries.StatusCountView) []StatusCountResponse {
	result := make([]StatusCountResponse, len(rms))
	for i, rm := range rms {
		result[i] = StatusCountResponse{Status: rm.Status, Count: rm.Count}
	}
	return result
}

func FromDayOfWeekCounts(rms []*queries.DayOfWeekCountView) []DayOfWeekCountResponse {
	result := make([]DayOfWeekCountResponse, len(rms))
	for i, rm := range rms {
		result[i] = DayOfWeekCountResponse{DayOfWeek: rm.DayOfWeek, Count: rm.Count}
	}
	return result
}

func FromRoomUsage(rms []*queries.RoomUsageView) []RoomUsageResponse {
	result := make([]RoomUsageResponse, len(rms))
	for i, rm := range rms {
		result[i] = RoomUsageResponse{RoomID: rm.RoomID, RoomName: rm.RoomName, BookingCount: rm.BookingCount}
	}
	return result
}
