package components

import (
	"log/slog"

	"internlink/internal/pkg/config"
	"internlink/internal/realtime"
	"internlink/internal/usecase"

	"go.uber.org/fx"
)

var RealtimeModule = fx.Module("realtime",
	fx.Provide(
		realtime.NewRegistry,
		NewHub,
		fx.Annotate(
			NewDispatcher,
			fx.As(new(usecase.Pusher)),
		),
	),
)

func NewHub(cfg config.Config) *realtime.Hub {
	return realtime.NewHub(cfg.Realtime)
}

func NewDispatcher(registry *realtime.Registry, hub *realtime.Hub, logger *slog.Logger) *realtime.Dispatcher {
	return realtime.NewDispatcher(registry, hub, logger)
}
