package bootstrap

import (
	"context"

	"venue-booking/internal/infra/notify"
	"venue-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var KafkaModule = fx.Module("kafka",
	fx.Provide(
		fx.Annotate(
			NewDispatcher,
			fx.As(new(notify.Dispatcher)),
		),
	),
)

func NewDispatcher(lc fx.Lifecycle, cfg config.Config) *notify.KafkaDispatcher {
	dispatcher := notify.NewKafkaDispatcher(cfg)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return dispatcher.Close()
		},
	})

	return dispatcher
}
