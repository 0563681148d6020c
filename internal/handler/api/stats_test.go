//go:build unit

package api_test

import (
	"net/http"
	neturl "net/url"
	"testing"
	"time"

	"roombooking/internal/domain/user"
	"roombooking/internal/handler/api"
	resdto "roombooking/internal/handler/dto/response"
	"roombooking/internal/pkg/errs"
	"roombooking/internal/usecase/queries"
	"roombooking/tests/common/httptest"
	queriesmock "roombooking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type StatsHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockStatsQueries
	handler     *api.StatsHandler
}

func (s *StatsHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockStatsQueries(s.mockCtrl)
	s.handler = api.NewStatsHandler(s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", user.RoleAdmin)
		c.Next()
	}

	s.router.GET("/admin/stats/bookings-by-status", authMiddleware, s.handler.BookingsByStatus)
	s.router.GET("/admin/stats/bookings-by-day", authMiddleware, s.handler.BookingsByDayOfWeek)
	s.router.GET("/admin/stats/popular-rooms", authMiddleware, s.handler.PopularRooms)
}

func (s *StatsHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestStatsHandlerSuite(t *testing.T) {
	suite.Run(t, new(StatsHandlerTestSuite))
}

func (s *StatsHandlerTestSuite) TestBookingsByStatus() {
	url := "/admin/stats/bookings-by-status"

	s.Run("success: returns counts per status", func() {
		counts := []*queries.StatusCountView{
			{Status: "confirmed", Count: 5},
			{Status: "cancelled", Count: 2},
		}
		s.mockQueries.EXPECT().BookingsByStatus(gomock.Any(), gomock.Nil(), gomock.Nil()).Return(counts, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp []resdto.StatusCountResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp, 2)
		s.Equal("confirmed", resp[0].Status)
		s.Equal(int64(5), resp[0].Count)
	})

	s.Run("error: returns 500 when the read store fails", func() {
		s.mockQueries.EXPECT().BookingsByStatus(gomock.Any(), gomock.Nil(), gomock.Nil()).
			Return(nil, errs.New("boom")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})

	s.Run("success: forwards the period bounds", func() {
		from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
		s.mockQueries.EXPECT().BookingsByStatus(gomock.Any(), gomock.Eq(&from), gomock.Eq(&to)).
			Return([]*queries.StatusCountView{}, nil).Times(1)

		query := neturl.Values{}
		query.Set("from", from.Format(time.RFC3339))
		query.Set("to", to.Format(time.RFC3339))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?"+query.Encode(), nil, "bearer-token")

		var resp []resdto.StatusCountResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
	})

	s.Run("error: returns 400 for a malformed from time", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?from=yesterday", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid from time")
	})

	s.Run("error: returns 400 for a malformed to time", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?to=2026-03-40", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid to time")
	})

	s.Run("error: returns 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}

func (s *StatsHandlerTestSuite) TestBookingsByDayOfWeek() {
	url := "/admin/stats/bookings-by-day"

	s.Run("success: returns counts per day", func() {
		counts := []*queries.DayOfWeekCountView{
			{DayOfWeek: "Monday", Count: 3},
		}
		s.mockQueries.EXPECT().BookingsByDayOfWeek(gomock.Any(), gomock.Nil(), gomock.Nil()).Return(counts, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp []resdto.DayOfWeekCountResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp, 1)
		s.Equal("Monday", resp[0].DayOfWeek)
	})
}

func (s *StatsHandlerTestSuite) TestPopularRooms() {
	url := "/admin/stats/popular-rooms"

	rooms := []*queries.RoomUsageView{
		{RoomID: uuid.New(), RoomName: "Boardroom", BookingCount: 7},
	}

	s.Run("success: returns rooms ordered by usage", func() {
		s.mockQueries.EXPECT().PopularRooms(gomock.Any(), gomock.Nil(), gomock.Nil(), 0).Return(rooms, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp []resdto.RoomUsageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp, 1)
		s.Equal("Boardroom", resp[0].RoomName)
		s.Equal(int64(7), resp[0].BookingCount)
	})

	s.Run("success: passes limit through", func() {
		s.mockQueries.EXPECT().PopularRooms(gomock.Any(), gomock.Nil(), gomock.Nil(), 3).Return(rooms, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=3", nil, "bearer-token")

		var resp []resdto.RoomUsageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp, 1)
	})

	s.Run("error: returns 400 for non-numeric limit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=abc", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid limit")
	})
}
