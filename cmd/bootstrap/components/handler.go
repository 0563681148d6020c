package components

import (
	"roombooking/internal/handler"
	"roombooking/internal/handler/api"
	"roombooking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewRoomHandler,
		api.NewStatsHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
