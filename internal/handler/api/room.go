package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	reqdto "roombooking/internal/handler/dto/request"
	resdto "roombooking/internal/handler/dto/response"
	"roombooking/internal/usecase/commands"
	"roombooking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	roomCommands        commands.RoomCommands
	roomQueries         queries.RoomQueries
	availabilityQueries queries.AvailabilityQueries
}

func NewRoomHandler(
	roomCommands commands.RoomCommands,
	roomQueries queries.RoomQueries,
	availabilityQueries queries.AvailabilityQueries,
) *RoomHandler {
	return &RoomHandler{
		roomCommands:        roomCommands,
		roomQueries:         roomQueries,
		availabilityQueries: availabilityQueries,
	}
}

// @Summary List rooms
// @Description List rooms, optionally filtered by activity and minimum capacity
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param activeOnly query bool false "Only active rooms"
// @Param minCapacity query int false "Minimum capacity"
// @Success 200 {array} resdto.RoomResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /rooms [get]
func (h *RoomHandler) ListRooms(c *gin.Context) {
	var filter queries.RoomFilter

	if raw := c.Query("activeOnly"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid activeOnly",
			})
			return
		}
		filter.ActiveOnly = parsed
	}

	if raw := c.Query("minCapacity"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid minCapacity",
			})
			return
		}
		capacity := int32(parsed)
		filter.MinCapacity = &capacity
	}

	rooms, err := h.roomQueries.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomViews(rooms))
}

// @Summary Get room
// @Description Get room by ID
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	room, err := h.roomQueries.GetByID(c.Request.Context(), roomID)
	if err != nil {
		if errors.Is(err, queries.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomView(room))
}

// @Summary Check availability
// @Description Check whether a room is free for [start, end) and project the day's busy slots
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param start query string true "Interval start (RFC3339)"
// @Param end query string true "Interval end (RFC3339)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id}/availability [get]
func (h *RoomHandler) CheckAvailability(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid start time",
		})
		return
	}

	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid end time",
		})
		return
	}

	view, err := h.availabilityQueries.CheckAvailability(c.Request.Context(), roomID, start, end)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary Room schedule
// @Description Busy slots of a room for one calendar day
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param date query string true "Day (YYYY-MM-DD)"
// @Success 200 {object} resdto.ScheduleResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id}/schedule [get]
func (h *RoomHandler) GetSchedule(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	date, err := time.Parse(time.DateOnly, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date, expected YYYY-MM-DD",
		})
		return
	}

	slots, err := h.availabilityQueries.DaySchedule(c.Request.Context(), roomID, date)
	if err != nil {
		if errors.Is(err, queries.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.ScheduleResponse{
		RoomID:    roomID,
		Date:      date.Format(time.DateOnly),
		BusySlots: resdto.FromBusySlots(slots),
	})
}

// @Summary Create room
// @Description Create a room
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRoomRequest true "Room attributes"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/rooms [post]
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req reqdto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	roomID, err := h.roomCommands.CreateRoom(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDuplicateRoomName):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Room name already exists",
			})
		case errors.Is(err, commands.ErrInvalidRoom):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid room attributes",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: roomID})
}

// @Summary Update room
// @Description Partially update a room's attributes
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body reqdto.UpdateRoomRequest true "Attributes to change"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/rooms/{id} [patch]
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	var req reqdto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err = h.roomCommands.UpdateRoom(c.Request.Context(), roomID, req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
		case errors.Is(err, commands.ErrDuplicateRoomName):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Room name already exists",
			})
		case errors.Is(err, commands.ErrInvalidRoom):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid room attributes",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Activate or deactivate room
// @Description Deactivation is refused while the room has unfinished active bookings
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body reqdto.SetRoomActiveRequest true "Target state"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/rooms/{id}/active [put]
func (h *RoomHandler) SetRoomActive(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	var req reqdto.SetRoomActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err = h.roomCommands.SetRoomActive(c.Request.Context(), roomID, *req.IsActive)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
		case errors.Is(err, commands.ErrRoomHasActiveBookings):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Room has active bookings",
			})
		case errors.Is(err, commands.ErrStatusConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Room already in the requested state",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
