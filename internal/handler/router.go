package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"internlink/internal/handler/api"
	"internlink/internal/handler/middleware"
	"internlink/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth         *api.AuthHandler
	Posting      *api.PostingHandler
	Microtask    *api.MicrotaskHandler
	Application  *api.ApplicationHandler
	Notification *api.NotificationHandler
	Stream       *api.StreamHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		postings := apiGroup.Group("/postings")
		{
			addRoutes(postings, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Posting.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Posting.Get},
			})

			authed := postings.Group("")
			authed.Use(authMiddleware.RequireAuth())
			addRoutes(authed, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Posting.Create},
				{Method: http.MethodPost, Path: "/:id/publish", Handler: h.Posting.Publish},
				{Method: http.MethodPost, Path: "/:id/tasks", Handler: h.Microtask.Assign},
				{Method: http.MethodPost, Path: "/:id/tasks/:taskId/submit", Handler: h.Microtask.Submit},
				{Method: http.MethodPost, Path: "/:id/tasks/:taskId/grade", Handler: h.Microtask.Grade},
				{Method: http.MethodPost, Path: "/:id/applications", Handler: h.Application.Apply},
			})
		}

		applications := apiGroup.Group("/applications")
		applications.Use(authMiddleware.RequireAuth())
		{
			addRoutes(applications, []route{
				{Method: http.MethodPut, Path: "/:id/status", Handler: h.Application.UpdateStatus},
			})
		}

		notifications := apiGroup.Group("/notifications")
		notifications.Use(authMiddleware.RequireAuth())
		{
			addRoutes(notifications, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Notification.List},
				{Method: http.MethodGet, Path: "/unread-count", Handler: h.Notification.UnreadCount},
				{Method: http.MethodGet, Path: "/stream", Handler: h.Stream.Stream},
				{Method: http.MethodPost, Path: "/read-all", Handler: h.Notification.MarkAllRead},
				{Method: http.MethodPost, Path: "/:id/read", Handler: h.Notification.MarkRead},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Notification.Delete},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
