package bootstrap

import (
	"context"
	"log/slog"

	"roombooking/internal/infra/events"
	"roombooking/internal/pkg/config"
	"roombooking/internal/usecase/shared"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewEventPublisher,
	),
)

// NewEventPublisher connects to RabbitMQ when AMQP_URL is set, otherwise
// events are dropped. A broker outage at startup degrades to the noop
// publisher instead of failing the app.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) shared.EventPublisher {
	if cfg.AMQP.URL == "" {
		slog.Info("amqp not configured, booking events disabled")
		return events.NewNoopPublisher()
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQP.URL)
	if err != nil {
		slog.Warn("failed to connect to rabbitmq, booking events disabled", "error", err.Error())
		return events.NewNoopPublisher()
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})

	return publisher
}
