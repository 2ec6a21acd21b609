//go:build e2e

package notification_test

import (
	"fmt"
	"net/http"
	"testing"

	"internlink/internal/domain/user"
	"internlink/internal/handler/dto/response"
	"internlink/tests/common/authtest"
	"internlink/tests/common/dbtest"
	"internlink/tests/common/httptest"
	"internlink/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	notificationsURL = "/api/notifications"
	unreadCountURL   = "/api/notifications/unread-count"
	readAllURL       = "/api/notifications/read-all"
	markReadURL      = "/api/notifications/%s/read"
	deleteURL        = "/api/notifications/%s"
)

type NotificationSuite struct {
	e2e.SharedSuite
}

func (s *NotificationSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestNotificationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(NotificationSuite))
}

type listResponse struct {
	Notifications []*response.NotificationResponse `json:"notifications"`
}

func (s *NotificationSuite) TestList() {
	s.Run("正常系: 新しい順に自分宛の通知だけが返る", func() {
		t := s.T()

		recipientID := dbtest.CreateTestUser(t, s.DB, "me@example.com", string(user.RoleStudent))
		otherID := dbtest.CreateTestUser(t, s.DB, "other@example.com", string(user.RoleStudent))
		token := authtest.LoginUser(t, s.Router, "me@example.com", "password123")

		dbtest.CreateTestNotification(t, s.DB, recipientID, "message", "first", false)
		dbtest.CreateTestNotification(t, s.DB, recipientID, "application", "second", false)
		dbtest.CreateTestNotification(t, s.DB, otherID, "message", "not mine", false)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, notificationsURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res listResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.Len(t, res.Notifications, 2)
		require.NotContains(t, w.Body.String(), "not mine")
	})

	s.Run("正常系: limitで件数を絞れる", func() {
		t := s.T()

		recipientID := dbtest.CreateTestUser(t, s.DB, "me@example.com", string(user.RoleStudent))
		token := authtest.LoginUser(t, s.Router, "me@example.com", "password123")

		for i := 0; i < 5; i++ {
			dbtest.CreateTestNotification(t, s.DB, recipientID, "message", fmt.Sprintf("notif-%d", i), false)
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, notificationsURL+"?limit=3", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var res listResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.Len(t, res.Notifications, 3)
	})
}

func (s *NotificationSuite) TestUnreadCount() {
	s.Run("正常系: 未読のみがカウントされる", func() {
		t := s.T()

		recipientID := dbtest.CreateTestUser(t, s.DB, "me@example.com", string(user.RoleStudent))
		token := authtest.LoginUser(t, s.Router, "me@example.com", "password123")

		dbtest.CreateTestNotification(t, s.DB, recipientID, "message", "unread-1", false)
		dbtest.CreateTestNotification(t, s.DB, recipientID, "message", "unread-2", false)
		dbtest.CreateTestNotification(t, s.DB, recipientID, "message", "read-1", true)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, unreadCountURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var res response.UnreadCountResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.Equal(t, int64(2), res.Count)
	})
}

func (s *NotificationSuite) TestMarkRead() {
	s.Run("正常系: 既読化は冪等", func() {
		t := s.T()

		recipientID := dbtest.CreateTestUser(t, s.DB, "me@example.com", string(user.RoleStudent))
		token := authtest.LoginUser(t, s.Router, "me@example.com", "password123")

		id := dbtest.CreateTestNotification(t, s.DB, recipientID, "message", "to-read", false)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(markReadURL, id), nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		// 2回目も成功する
		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(markReadURL, id), nil, token)
		require.Equal(t, http.StatusNoContent, w2.Code)

		var read bool
		err := s.DB.QueryRow(t.Context(), "SELECT read FROM notifications WHERE id = $1", id).Scan(&read)
		require.NoError(t, err)
		require.True(t, read)
	})

	s.Run("異常系: 他人の通知は404", func() {
		t := s.T()

		otherID := dbtest.CreateTestUser(t, s.DB, "other@example.com", string(user.RoleStudent))
		dbtest.CreateTestUser(t, s.DB, "me@example.com", string(user.RoleStudent))
		token := authtest.LoginUser(t, s.Router, "me@example.com", "password123")

		id := dbtest.CreateTestNotification(t, s.DB, otherID, "message", "not mine", false)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(markReadURL, id), nil, token)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}

func (s *NotificationSuite) TestMarkAllRead() {
	s.Run("正常系: 更新件数が返る", func() {
		t := s.T()

		recipientID := dbtest.CreateTestUser(t, s.DB, "me@example.com", string(user.RoleStudent))
		token := authtest.LoginUser(t, s.Router, "me@example.com", "password123")

		dbtest.CreateTestNotification(t, s.DB, recipientID, "message", "a", false)
		dbtest.CreateTestNotification(t, s.DB, recipientID, "message", "b", false)
		dbtest.CreateTestNotification(t, s.DB, recipientID, "message", "c", true)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, readAllURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res response.MarkAllReadResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.Equal(t, int64(2), res.Updated)

		// 未読は残っていない
		cw := httptest.PerformRequest(t, s.Router, http.MethodGet, unreadCountURL, nil, token)
		var count response.UnreadCountResponse
		require.NoError(t, httptest.DecodeResponseBody(t, cw.Body, &count))
		require.Equal(t, int64(0), count.Count)
	})
}

func (s *NotificationSuite) TestDelete() {
	s.Run("正常系: 自分の通知を削除できる", func() {
		t := s.T()

		recipientID := dbtest.CreateTestUser(t, s.DB, "me@example.com", string(user.RoleStudent))
		token := authtest.LoginUser(t, s.Router, "me@example.com", "password123")

		id := dbtest.CreateTestNotification(t, s.DB, recipientID, "message", "temp", false)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf(deleteURL, id), nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		var count int
		err := s.DB.QueryRow(t.Context(), "SELECT COUNT(*) FROM notifications WHERE id = $1", id).Scan(&count)
		require.NoError(t, err)
		require.Zero(t, count)
	})

	s.Run("異常系: 他人の通知の削除は404", func() {
		t := s.T()

		otherID := dbtest.CreateTestUser(t, s.DB, "other@example.com", string(user.RoleStudent))
		dbtest.CreateTestUser(t, s.DB, "me@example.com", string(user.RoleStudent))
		token := authtest.LoginUser(t, s.Router, "me@example.com", "password123")

		id := dbtest.CreateTestNotification(t, s.DB, otherID, "message", "not mine", false)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf(deleteURL, id), nil, token)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}
