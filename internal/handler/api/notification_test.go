//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"internlink/internal/handler/api"
	resdto "internlink/internal/handler/dto/response"
	"internlink/internal/infra"
	"internlink/internal/usecase/queries"
	"internlink/tests/common/httptest"
	commandsmock "internlink/tests/mock/commands"
	queriesmock "internlink/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type NotificationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockNotificationCommands
	mockQueries  *queriesmock.MockNotificationQueries
	handler      *api.NotificationHandler
	userID       uuid.UUID
}

func (s *NotificationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.userID = uuid.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockNotificationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockNotificationQueries(s.mockCtrl)
	s.handler = api.NewNotificationHandler(s.mockCommands, s.mockQueries)

	// Mock middleware behavior: an Authorization header means authenticated
	authed := func(h gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			if c.GetHeader("Authorization") != "" {
				c.Set("user_id", s.userID)
			}
			h(c)
		}
	}

	s.router.GET("/notifications", authed(s.handler.List))
	s.router.GET("/notifications/unread-count", authed(s.handler.UnreadCount))
	s.router.POST("/notifications/read-all", authed(s.handler.MarkAllRead))
	s.router.POST("/notifications/:id/read", authed(s.handler.MarkRead))
	s.router.DELETE("/notifications/:id", authed(s.handler.Delete))
}

func (s *NotificationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestNotificationHandlerSuite(t *testing.T) {
	suite.Run(t, new(NotificationHandlerTestSuite))
}

func (s *NotificationHandlerTestSuite) TestList() {
	url := "/notifications"

	s.Run("success: returns own notifications", func() {
		views := []*queries.NotificationView{
			{ID: uuid.New(), Type: "message", Title: "hello", CreatedAt: time.Now()},
			{ID: uuid.New(), Type: "application", Title: "applied", CreatedAt: time.Now().Add(-time.Minute)},
		}
		s.mockQueries.EXPECT().List(gomock.Any(), s.userID, queries.DefaultLimit).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "hello")
		s.Contains(rec.Body.String(), "applied")
	})

	s.Run("success: custom limit is forwarded", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), s.userID, 5).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=5", nil, "token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 401 without authentication", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}

func (s *NotificationHandlerTestSuite) TestUnreadCount() {
	url := "/notifications/unread-count"

	s.Run("success: returns count", func() {
		s.mockQueries.EXPECT().CountUnread(gomock.Any(), s.userID).
			Return(int64(7), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")

		var response resdto.UnreadCountResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int64(7), response.Count)
	})
}

func (s *NotificationHandlerTestSuite) TestMarkRead() {
	s.Run("success: returns 204", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().MarkRead(gomock.Any(), s.userID, id).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/notifications/"+id.String()+"/read", nil, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 for a foreign notification", func() {
		id := uuid.New()
		notFound := infra.NewRepoErr(infra.KindNotFound, "notification not found", nil)
		s.mockCommands.EXPECT().MarkRead(gomock.Any(), s.userID, id).
			Return(notFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/notifications/"+id.String()+"/read", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})

	s.Run("error: 400 for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/notifications/not-a-uuid/read", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *NotificationHandlerTestSuite) TestMarkAllRead() {
	url := "/notifications/read-all"

	s.Run("success: returns updated count", func() {
		s.mockCommands.EXPECT().MarkAllRead(gomock.Any(), s.userID).
			Return(int64(3), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")

		var response resdto.MarkAllReadResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int64(3), response.Updated)
	})

	s.Run("success: zero unread is not an error", func() {
		s.mockCommands.EXPECT().MarkAllRead(gomock.Any(), s.userID).
			Return(int64(0), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")

		var response resdto.MarkAllReadResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Zero(response.Updated)
	})
}

func (s *NotificationHandlerTestSuite) TestDelete() {
	s.Run("success: returns 204", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Delete(gomock.Any(), s.userID, id).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/notifications/"+id.String(), nil, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 for a foreign notification", func() {
		id := uuid.New()
		notFound := infra.NewRepoErr(infra.KindNotFound, "notification not found", nil)
		s.mockCommands.EXPECT().Delete(gomock.Any(), s.userID, id).
			Return(notFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/notifications/"+id.String(), nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}
