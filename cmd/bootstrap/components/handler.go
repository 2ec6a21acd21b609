package components

import (
	"internlink/internal/handler"
	"internlink/internal/handler/api"
	"internlink/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewPostingHandler,
		api.NewMicrotaskHandler,
		api.NewApplicationHandler,
		api.NewNotificationHandler,
		api.NewStreamHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	posting *api.PostingHandler,
	microtask *api.MicrotaskHandler,
	application *api.ApplicationHandler,
	notification *api.NotificationHandler,
	stream *api.StreamHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:         auth,
		Posting:      posting,
		Microtask:    microtask,
		Application:  application,
		Notification: notification,
		Stream:       stream,
	}
}
