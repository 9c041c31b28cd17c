package bootstrap

import (
	"context"

	"coworkhub/internal/infra/events"
	"coworkhub/internal/pkg/config"
	"coworkhub/internal/usecase/commands"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		fx.Annotate(
			NewEventPublisher,
			fx.As(new(commands.EventPublisher)),
		),
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) (*events.AMQPPublisher, error) {
	publisher, err := events.NewAMQPPublisher(cfg.AMQP)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})

	return publisher, nil
}
