package api

import (
	"net/http"
	"strconv"
	"time"

	resdto "roombooking/internal/handler/dto/response"
	"roombooking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsQueries queries.StatsQueries
}

func NewStatsHandler(statsQueries queries.StatsQueries) *StatsHandler {
	return &StatsHandler{statsQueries: statsQueries}
}

// statsPeriod reads the optional from/to query parameters bounding an
// aggregate to bookings starting within the period.
func statsPeriod(c *gin.Context) (from, to *time.Time, ok bool) {
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid from time",
			})
			return nil, nil, false
		}
		from = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid to time",
			})
			return nil, nil, false
		}
		to = &parsed
	}
	return from, to, true
}

// @Summary Bookings by status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param from query string false "Period start (RFC3339)"
// @Param to query string false "Period end (RFC3339)"
// @Success 200 {array} resdto.StatusCountResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/stats/bookings-by-status [get]
func (h *StatsHandler) BookingsByStatus(c *gin.Context) {
	from, to, ok := statsPeriod(c)
	if !ok {
		return
	}

	counts, err := h.statsQueries.BookingsByStatus(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromStatusCounts(counts))
}

// @Summary Bookings by day of week
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param from query string false "Period start (RFC3339)"
// @Param to query string false "Period end (RFC3339)"
// @Success 200 {array} resdto.DayOfWeekCountResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/stats/bookings-by-day [get]
func (h *StatsHandler) BookingsByDayOfWeek(c *gin.Context) {
	from, to, ok := statsPeriod(c)
	if !ok {
		return
	}

	counts, err := h.statsQueries.BookingsByDayOfWeek(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromDayOfWeekCounts(counts))
}

// @Summary Popular rooms
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param from query string false "Period start (RFC3339)"
// @Param to query string false "Period end (RFC3339)"
// @Param limit query int false "Maximum rooms to return"
// @Success 200 {array} resdto.RoomUsageResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/stats/popular-rooms [get]
func (h *StatsHandler) PopularRooms(c *gin.Context) {
	from, to, ok := statsPeriod(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid limit",
			})
			return
		}
		limit = parsed
	}

	rooms, err := h.statsQueries.PopularRooms(c.Request.Context(), from, to, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomUsage(rooms))
}
