//go:build unit

package api_test

import (
	"net/http"
	nethttptest "net/http/httptest"
	"testing"
	"time"

	"internlink/internal/handler/api"
	"internlink/internal/pkg/config"
	"internlink/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type StreamHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	registry *realtime.Registry
	hub      *realtime.Hub
	userID   uuid.UUID
}

func (s *StreamHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.userID = uuid.New()

	s.registry = realtime.NewRegistry()
	s.hub = realtime.NewHub(config.RealtimeConfig{EmitBuffer: 4})
	handler := api.NewStreamHandler(s.registry, s.hub)

	// Mock middleware behavior: an Authorization header means authenticated
	s.router.GET("/api/notifications/stream", func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.userID)
		}
		handler.Stream(c)
	})
}

// gin's Stream requires the writer to implement http.CloseNotifier,
// which the plain recorder does not.
type streamRecorder struct {
	*nethttptest.ResponseRecorder
	clientGone chan bool
}

func newStreamRecorder() *streamRecorder {
	return &streamRecorder{
		ResponseRecorder: nethttptest.NewRecorder(),
		clientGone:       make(chan bool),
	}
}

func (r *streamRecorder) CloseNotify() <-chan bool { return r.clientGone }

func (s *StreamHandlerTestSuite) TestStream() {
	s.Run("unauthenticated request is rejected", func() {
		w := nethttptest.NewRecorder()
		req := nethttptest.NewRequest(http.MethodGet, "/api/notifications/stream", nil)

		s.router.ServeHTTP(w, req)

		s.Equal(http.StatusUnauthorized, w.Code)
		s.Empty(s.registry.Lookup(s.userID))
	})

	s.Run("presence tracks the connection for the stream lifetime", func() {
		w := newStreamRecorder()
		req := nethttptest.NewRequest(http.MethodGet, "/api/notifications/stream", nil)
		req.Header.Set("Authorization", "Bearer token")

		done := make(chan struct{})
		go func() {
			s.router.ServeHTTP(w, req)
			close(done)
		}()

		conns := s.waitForConnections(1)
		s.Require().Len(conns, 1)

		s.Require().NoError(s.hub.Emit(conns[0], realtime.EventNewNotification, gin.H{"title": "hello"}))

		// Closing the channel ends the stream; the buffered event is
		// drained before the close is observed.
		s.hub.Remove(conns[0])
		select {
		case <-done:
		case <-time.After(time.Second):
			s.FailNow("stream handler did not return after disconnect")
		}

		s.Empty(s.registry.Lookup(s.userID), "connection must be deregistered on disconnect")
		s.ErrorIs(s.hub.Emit(conns[0], realtime.EventNewNotification, nil), realtime.ErrUnknownConnection)
		s.Contains(w.Body.String(), "connected")
		s.Contains(w.Body.String(), realtime.EventNewNotification)
	})
}

func (s *StreamHandlerTestSuite) waitForConnections(n int) []string {
	var conns []string
	s.Require().Eventually(func() bool {
		conns = s.registry.Lookup(s.userID)
		return len(conns) == n
	}, time.Second, 5*time.Millisecond)
	return conns
}

func TestStreamHandlerSuite(t *testing.T) {
	suite.Run(t, new(StreamHandlerTestSuite))
}
