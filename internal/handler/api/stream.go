package api

import (
	"io"
	"net/http"

	"internlink/internal/handler/httperr"
	"internlink/internal/handler/middleware"
	"internlink/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StreamHandler struct {
	registry *realtime.Registry
	hub      *realtime.Hub
}

func NewStreamHandler(registry *realtime.Registry, hub *realtime.Hub) *StreamHandler {
	return &StreamHandler{registry: registry, hub: hub}
}

// @Summary Notification stream
// @Description Server-sent event stream of notifications pushed to the authenticated user
// @Tags notifications
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 "SSE stream"
// @Failure 401 {object} map[string]string
// @Router /notifications/stream [get]
func (h *StreamHandler) Stream(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	// Each tab or device gets its own connection id; presence tracks
	// them all under the same recipient.
	connectionID := uuid.NewString()
	events := h.hub.Add(connectionID)
	h.registry.Register(userID, connectionID)
	defer func() {
		h.registry.Deregister(connectionID)
		h.hub.Remove(connectionID)
	}()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	c.SSEvent("connected", gin.H{"connection_id": connectionID})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, open := <-events:
			if !open {
				return false
			}
			c.SSEvent(ev.Name, ev.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
