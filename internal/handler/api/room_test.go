//go:build unit

package api_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"roombooking/internal/domain/user"
	"roombooking/internal/handler/api"
	resdto "roombooking/internal/handler/dto/response"
	"roombooking/internal/usecase/commands"
	"roombooking/internal/usecase/queries"
	"roombooking/tests/common/builder"
	"roombooking/tests/common/httptest"
	"roombooking/tests/common/testutil"
	commandsmock "roombooking/tests/mock/commands"
	queriesmock "roombooking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RoomHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockCommands     *commandsmock.MockRoomCommands
	mockQueries      *queriesmock.MockRoomQueries
	mockAvailability *queriesmock.MockAvailabilityQueries
	handler          *api.RoomHandler
}

func (s *RoomHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockRoomCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockRoomQueries(s.mockCtrl)
	s.mockAvailability = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewRoomHandler(s.mockCommands, s.mockQueries, s.mockAvailability)

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

	s.router.GET("/rooms", authMiddleware, s.handler.ListRooms)
	s.router.GET("/rooms/:id", authMiddleware, s.handler.GetRoom)
	s.router.GET("/rooms/:id/availability", authMiddleware, s.handler.CheckAvailability)
	s.router.GET("/rooms/:id/schedule", authMiddleware, s.handler.GetSchedule)
	s.router.POST("/admin/rooms", authMiddleware, s.handler.CreateRoom)
	s.router.PATCH("/admin/rooms/:id", authMiddleware, s.handler.UpdateRoom)
	s.router.PUT("/admin/rooms/:id/active", authMiddleware, s.handler.SetRoomActive)
}

func (s *RoomHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRoomHandlerSuite(t *testing.T) {
	suite.Run(t, new(RoomHandlerTestSuite))
}

// ================================================================================
// TestListRooms
// ================================================================================

func (s *RoomHandlerTestSuite) TestListRooms() {
	views := []*queries.RoomView{
		builder.NewRoomBuilder().BuildView(),
		builder.NewRoomBuilder().WithName("Board Room").BuildView(),
	}

	s.Run("success: returns all rooms without filters", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), queries.RoomFilter{}).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rooms", nil, "bearer-token")

		var resp []*resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp, 2)
	})

	s.Run("success: applies activeOnly and minCapacity filters", func() {
		capacity := int32(10)
		s.mockQueries.EXPECT().List(gomock.Any(), queries.RoomFilter{ActiveOnly: true, MinCapacity: &capacity}).
			Return(views[:1], nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rooms?activeOnly=true&minCapacity=10", nil, "bearer-token")

		var resp []*resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp, 1)
	})

	s.Run("error: returns 400 for bad filter values", func() {
		for _, q := range []string{"?activeOnly=maybe", "?minCapacity=0", "?minCapacity=abc"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rooms"+q, nil, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		}
	})
}

// ================================================================================
// TestCheckAvailability
// ================================================================================

func (s *RoomHandlerTestSuite) TestCheckAvailability() {
	roomID := uuid.New()
	start := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	path := "/rooms/" + roomID.String() + "/availability?start=" +
		url.QueryEscape(start.Format(time.RFC3339)) + "&end=" + url.QueryEscape(end.Format(time.RFC3339))

	view := &queries.AvailabilityView{
		RoomID:                    roomID,
		Date:                      "2026-03-11",
		AvailableForRequestedTime: true,
		BusySlots:                 []queries.BusySlot{{StartTime: start.Add(4 * time.Hour), EndTime: start.Add(5 * time.Hour), Status: "confirmed"}},
	}

	s.Run("success: returns availability with busy slots", func() {
		s.mockAvailability.EXPECT().CheckAvailability(gomock.Any(), roomID, gomock.Any(), gomock.Any()).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "bearer-token")

		var resp resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(roomID, resp.RoomID)
		s.True(resp.AvailableForRequestedTime)
		s.Len(resp.BusySlots, 1)
		s.Equal("confirmed", resp.BusySlots[0].Status)
	})

	s.Run("error: returns 404 when room does not exist", func() {
		s.mockAvailability.EXPECT().CheckAvailability(gomock.Any(), roomID, gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrRoomNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Room not found")
	})

	s.Run("error: returns 400 for malformed time params", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/rooms/"+roomID.String()+"/availability?start=today&end=tomorrow", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestGetSchedule
// ================================================================================

func (s *RoomHandlerTestSuite) TestGetSchedule() {
	roomID := uuid.New()
	path := "/rooms/" + roomID.String() + "/schedule?date=2026-03-11"

	slots := []queries.BusySlot{
		{StartTime: time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC), EndTime: time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)},
		{StartTime: time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC), EndTime: time.Date(2026, 3, 11, 15, 30, 0, 0, time.UTC)},
	}

	s.Run("success: returns day schedule", func() {
		s.mockAvailability.EXPECT().DaySchedule(gomock.Any(), roomID, gomock.Any()).
			Return(slots, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "bearer-token")

		var resp resdto.ScheduleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("2026-03-11", resp.Date)
		s.Len(resp.BusySlots, 2)
	})

	s.Run("error: returns 404 when room does not exist", func() {
		s.mockAvailability.EXPECT().DaySchedule(gomock.Any(), roomID, gomock.Any()).
			Return(nil, queries.ErrRoomNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Room not found")
	})

	s.Run("error: returns 400 for malformed date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/rooms/"+roomID.String()+"/schedule?date=11-03-2026", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "YYYY-MM-DD")
	})
}

// ================================================================================
// TestCreateRoom
// ================================================================================

func (s *RoomHandlerTestSuite) TestCreateRoom() {
	url := "/admin/rooms"
	reqBody := builder.NewRoomBuilder().BuildCreateRequestDTO()
	roomID := uuid.New()

	s.Run("success: returns 201 with new room id", func() {
		s.mockCommands.EXPECT().CreateRoom(gomock.Any(), reqBody).
			Return(roomID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var resp resdto.CreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(roomID, resp.ID)
	})

	s.Run("error: returns 409 for duplicate name", func() {
		s.mockCommands.EXPECT().CreateRoom(gomock.Any(), reqBody).
			Return(uuid.Nil, commands.ErrDuplicateRoomName).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already exists")
	})

	s.Run("validation: invalid payloads return 400", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing name", mutate: testutil.Field("name", nil)},
			{name: "missing capacity", mutate: testutil.Field("capacity", nil)},
			{name: "zero capacity", mutate: testutil.Field("capacity", 0)},
		}

		for _, c := range cases {
			s.Run(c.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, c.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})
}

// ================================================================================
// TestUpdateRoom
// ================================================================================

func (s *RoomHandlerTestSuite) TestUpdateRoom() {
	roomID := uuid.New()
	url := "/admin/rooms/" + roomID.String()
	name := "Renamed Room"
	reqBody := map[string]any{"name": name}

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().UpdateRoom(gomock.Any(), roomID, gomock.Any()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: returns 404 when room does not exist", func() {
		s.mockCommands.EXPECT().UpdateRoom(gomock.Any(), roomID, gomock.Any()).
			Return(commands.ErrRoomNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Room not found")
	})

	s.Run("error: returns 409 for duplicate name", func() {
		s.mockCommands.EXPECT().UpdateRoom(gomock.Any(), roomID, gomock.Any()).
			Return(commands.ErrDuplicateRoomName).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already exists")
	})
}

// ================================================================================
// TestSetRoomActive
// ================================================================================

func (s *RoomHandlerTestSuite) TestSetRoomActive() {
	roomID := uuid.New()
	url := "/admin/rooms/" + roomID.String() + "/active"

	s.Run("success: deactivates room", func() {
		s.mockCommands.EXPECT().SetRoomActive(gomock.Any(), roomID, false).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"is_active": false}, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: returns 409 while active bookings remain", func() {
		s.mockCommands.EXPECT().SetRoomActive(gomock.Any(), roomID, false).
			Return(commands.ErrRoomHasActiveBookings).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"is_active": false}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "active bookings")
	})

	s.Run("error: returns 409 when state is unchanged", func() {
		s.mockCommands.EXPECT().SetRoomActive(gomock.Any(), roomID, true).
			Return(commands.ErrStatusConflict).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"is_active": true}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "requested state")
	})

	s.Run("error: returns 400 for missing is_active", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}
