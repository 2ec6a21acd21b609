//go:build e2e

package posting_test

import (
	"fmt"
	"net/http"
	"testing"

	"internlink/internal/domain/user"
	"internlink/internal/handler/dto/request"
	"internlink/internal/handler/dto/response"
	"internlink/tests/common/authtest"
	"internlink/tests/common/builder"
	"internlink/tests/common/dbtest"
	"internlink/tests/common/httptest"
	"internlink/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	postingsURL    = "/api/postings"
	publishURL     = "/api/postings/%s/publish"
	tasksURL       = "/api/postings/%s/tasks"
	submitURL      = "/api/postings/%s/tasks/%s/submit"
	gradeURL       = "/api/postings/%s/tasks/%s/grade"
	applyURL       = "/api/postings/%s/applications"
	appStatusURL   = "/api/applications/%s/status"
	unreadCountURL = "/api/notifications/unread-count"
)

type PostingSuite struct {
	e2e.SharedSuite
}

func (s *PostingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestPostingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(PostingSuite))
}

// createPosting posts a draft via the API and returns its id.
func (s *PostingSuite) createPosting(token, title string) string {
	t := s.T()
	reqBody := builder.NewPostingBuilder().WithTitle(title).BuildCreateRequestDTO()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, postingsURL, reqBody, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.PostingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	require.NotEmpty(t, created.ID)
	return created.ID
}

func (s *PostingSuite) TestCreateAndPublish() {
	s.Run("正常系: 企業が掲載を作成して公開できる", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "owner@example.com", string(user.RoleCompany))
		token := authtest.LoginUser(t, s.Router, "owner@example.com", "password123")

		id := s.createPosting(token, "Summer Backend Internship")

		// ドラフトは公開一覧に出ない
		lw := httptest.PerformRequest(t, s.Router, http.MethodGet, postingsURL, nil, "")
		require.Equal(t, http.StatusOK, lw.Code)
		require.NotContains(t, lw.Body.String(), id)

		// 公開
		pw := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(publishURL, id), nil, token)
		require.Equal(t, http.StatusOK, pw.Code, pw.Body.String())

		var published response.PostingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, pw.Body, &published))
		require.Equal(t, "published", published.Status)

		// 公開後は一覧に出る
		lw2 := httptest.PerformRequest(t, s.Router, http.MethodGet, postingsURL, nil, "")
		require.Equal(t, http.StatusOK, lw2.Code)
		require.Contains(t, lw2.Body.String(), id)
	})

	s.Run("異常系: 所有者以外は公開できない", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "owner@example.com", string(user.RoleCompany))
		dbtest.CreateTestUser(t, s.DB, "other@example.com", string(user.RoleCompany))
		ownerToken := authtest.LoginUser(t, s.Router, "owner@example.com", "password123")
		otherToken := authtest.LoginUser(t, s.Router, "other@example.com", "password123")

		id := s.createPosting(ownerToken, "Owner Only")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(publishURL, id), nil, otherToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("異常系: タイトルなしは400", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "owner@example.com", string(user.RoleCompany))
		token := authtest.LoginUser(t, s.Router, "owner@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, postingsURL,
			map[string]any{"description": "no title"}, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func (s *PostingSuite) TestApply() {
	s.Run("正常系: 応募で企業に通知が届く", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner@example.com", string(user.RoleCompany))
		dbtest.CreateTestUser(t, s.DB, "student@example.com", string(user.RoleStudent))
		ownerToken := authtest.LoginUser(t, s.Router, "owner@example.com", "password123")
		studentToken := authtest.LoginUser(t, s.Router, "student@example.com", "password123")

		id := s.createPosting(ownerToken, "Apply Here")
		pw := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(publishURL, id), nil, ownerToken)
		require.Equal(t, http.StatusOK, pw.Code)

		aw := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(applyURL, id),
			request.ApplyRequest{CoverLetter: "I would love to join."}, studentToken)
		require.Equal(t, http.StatusCreated, aw.Code, aw.Body.String())

		// 企業側の未読通知が1件
		cw := httptest.PerformRequest(t, s.Router, http.MethodGet, unreadCountURL, nil, ownerToken)
		require.Equal(t, http.StatusOK, cw.Code)
		var count response.UnreadCountResponse
		require.NoError(t, httptest.DecodeResponseBody(t, cw.Body, &count))
		require.Equal(t, int64(1), count.Count)

		// 通知の中身を確認
		var (
			notifType string
			title     string
		)
		err := s.DB.QueryRow(t.Context(),
			"SELECT type, title FROM notifications WHERE recipient_id = $1", ownerID).
			Scan(&notifType, &title)
		require.NoError(t, err)
		require.Equal(t, "application", notifType)
		require.Equal(t, "New application", title)
	})

	s.Run("異常系: 二重応募は409", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "owner@example.com", string(user.RoleCompany))
		dbtest.CreateTestUser(t, s.DB, "student@example.com", string(user.RoleStudent))
		ownerToken := authtest.LoginUser(t, s.Router, "owner@example.com", "password123")
		studentToken := authtest.LoginUser(t, s.Router, "student@example.com", "password123")

		id := s.createPosting(ownerToken, "Once Only")
		httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(publishURL, id), nil, ownerToken)

		first := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(applyURL, id),
			request.ApplyRequest{}, studentToken)
		require.Equal(t, http.StatusCreated, first.Code)

		second := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(applyURL, id),
			request.ApplyRequest{}, studentToken)
		require.Equal(t, http.StatusConflict, second.Code, second.Body.String())
	})

	s.Run("正常系: 応募ステータス更新で学生に通知が届く", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "owner@example.com", string(user.RoleCompany))
		studentID := dbtest.CreateTestUser(t, s.DB, "student@example.com", string(user.RoleStudent))
		ownerToken := authtest.LoginUser(t, s.Router, "owner@example.com", "password123")
		studentToken := authtest.LoginUser(t, s.Router, "student@example.com", "password123")

		id := s.createPosting(ownerToken, "Review Me")
		httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(publishURL, id), nil, ownerToken)

		aw := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(applyURL, id),
			request.ApplyRequest{}, studentToken)
		require.Equal(t, http.StatusCreated, aw.Code)
		var created map[string]string
		require.NoError(t, httptest.DecodeResponseBody(t, aw.Body, &created))
		applicationID := created["application_id"]
		require.NotEmpty(t, applicationID)

		uw := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(appStatusURL, applicationID),
			request.UpdateApplicationStatusRequest{Status: "accepted"}, ownerToken)
		require.Equal(t, http.StatusNoContent, uw.Code, uw.Body.String())

		var message string
		err := s.DB.QueryRow(t.Context(),
			"SELECT message FROM notifications WHERE recipient_id = $1 AND type = 'status_update'", studentID).
			Scan(&message)
		require.NoError(t, err)
		require.Contains(t, message, "accepted")
	})

	s.Run("正常系: 新規公開で過去の応募者に告知が届く", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "owner@example.com", string(user.RoleCompany))
		studentID := dbtest.CreateTestUser(t, s.DB, "student@example.com", string(user.RoleStudent))
		ownerToken := authtest.LoginUser(t, s.Router, "owner@example.com", "password123")
		studentToken := authtest.LoginUser(t, s.Router, "student@example.com", "password123")

		first := s.createPosting(ownerToken, "First Internship")
		httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(publishURL, first), nil, ownerToken)
		httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(applyURL, first),
			request.ApplyRequest{}, studentToken)

		second := s.createPosting(ownerToken, "Second Internship")
		pw := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(publishURL, second), nil, ownerToken)
		require.Equal(t, http.StatusOK, pw.Code)

		var count int
		err := s.DB.QueryRow(t.Context(),
			"SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND type = 'new_internship'", studentID).
			Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 1, count, "過去の応募者に新着告知が届くべき")
	})
}

func (s *PostingSuite) TestMicrotaskFlow() {
	s.Run("正常系: 課題の割当、提出、採点の一連の流れ", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "owner@example.com", string(user.RoleCompany))
		studentID := dbtest.CreateTestUser(t, s.DB, "student@example.com", string(user.RoleStudent))
		ownerToken := authtest.LoginUser(t, s.Router, "owner@example.com", "password123")
		studentToken := authtest.LoginUser(t, s.Router, "student@example.com", "password123")

		id := s.createPosting(ownerToken, "Task Flow")
		httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(publishURL, id), nil, ownerToken)

		// 割当
		assignReq := builder.NewMicrotaskBuilder().
			WithTitle("Write a design doc").
			WithAssignedTo(studentID).
			BuildAssignRequestDTO()
		aw := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(tasksURL, id), assignReq, ownerToken)
		require.Equal(t, http.StatusCreated, aw.Code, aw.Body.String())

		var task response.MicrotaskResponse
		require.NoError(t, httptest.DecodeResponseBody(t, aw.Body, &task))
		require.Equal(t, "assigned", task.Status)
		require.NotNil(t, task.AssignedTo)

		expected := response.MicrotaskResponse{
			Title:        "Write a design doc",
			Kind:         "task",
			Instructions: "Document the setup steps.",
			Status:       "assigned",
		}
		diff := cmp.Diff(expected, task,
			cmpopts.IgnoreFields(response.MicrotaskResponse{}, "ID", "AssignedTo", "AssignedAt"))
		require.Empty(t, diff)

		// 割当通知が学生に届く
		var notifCount int
		err := s.DB.QueryRow(t.Context(),
			"SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND type = 'message'", studentID).
			Scan(&notifCount)
		require.NoError(t, err)
		require.Equal(t, 1, notifCount)

		// 提出
		sw := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(submitURL, id, task.ID),
			request.SubmitMicrotaskRequest{Kind: "text", Content: "Here is my doc."}, studentToken)
		require.Equal(t, http.StatusOK, sw.Code, sw.Body.String())

		var submitted response.MicrotaskResponse
		require.NoError(t, httptest.DecodeResponseBody(t, sw.Body, &submitted))
		require.Equal(t, "submitted", submitted.Status)
		require.NotNil(t, submitted.Submission)

		// 採点
		gw := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(gradeURL, id, task.ID),
			request.GradeMicrotaskRequest{Score: 85, Feedback: "Solid work."}, ownerToken)
		require.Equal(t, http.StatusOK, gw.Code, gw.Body.String())

		var graded response.MicrotaskResponse
		require.NoError(t, httptest.DecodeResponseBody(t, gw.Body, &graded))
		require.Equal(t, "graded", graded.Status)
		require.NotNil(t, graded.Score)
		require.Equal(t, 85, *graded.Score)

		// 採点通知が学生に届く
		var gradeNotif int
		err = s.DB.QueryRow(t.Context(),
			"SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND type = 'status_update'", studentID).
			Scan(&gradeNotif)
		require.NoError(t, err)
		require.Equal(t, 1, gradeNotif)
	})

	s.Run("正常系: クイズは提出時に自動採点される", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "owner@example.com", string(user.RoleCompany))
		studentID := dbtest.CreateTestUser(t, s.DB, "student@example.com", string(user.RoleStudent))
		ownerToken := authtest.LoginUser(t, s.Router, "owner@example.com", "password123")
		studentToken := authtest.LoginUser(t, s.Router, "student@example.com", "password123")

		id := s.createPosting(ownerToken, "Quiz Flow")
		httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(publishURL, id), nil, ownerToken)

		assignReq := builder.NewMicrotaskBuilder().
			WithTitle("Go basics quiz").
			AsQuiz().
			WithAssignedTo(studentID).
			BuildAssignRequestDTO()
		aw := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(tasksURL, id), assignReq, ownerToken)
		require.Equal(t, http.StatusCreated, aw.Code, aw.Body.String())

		var task response.MicrotaskResponse
		require.NoError(t, httptest.DecodeResponseBody(t, aw.Body, &task))

		// 1問正解、1問不正解 → 50点
		one, zero := 1, 0
		sw := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(submitURL, id, task.ID),
			request.SubmitMicrotaskRequest{Answers: []*int{&zero, &zero}}, studentToken)
		require.Equal(t, http.StatusOK, sw.Code, sw.Body.String())

		var graded response.MicrotaskResponse
		require.NoError(t, httptest.DecodeResponseBody(t, sw.Body, &graded))
		require.Equal(t, "graded", graded.Status)
		require.NotNil(t, graded.Score)
		require.Equal(t, 50, *graded.Score)

		// 再提出で上書きされる（全問正解 → 100点）
		sw2 := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(submitURL, id, task.ID),
			request.SubmitMicrotaskRequest{Answers: []*int{&zero, &one}}, studentToken)
		require.Equal(t, http.StatusOK, sw2.Code)

		var regraded response.MicrotaskResponse
		require.NoError(t, httptest.DecodeResponseBody(t, sw2.Body, &regraded))
		require.Equal(t, 100, *regraded.Score)

		// 学生にスコア通知、企業に提出通知
		var studentNotif int
		err := s.DB.QueryRow(t.Context(),
			"SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND title = 'Quiz graded'", studentID).
			Scan(&studentNotif)
		require.NoError(t, err)
		require.Equal(t, 2, studentNotif)
	})

	s.Run("異常系: 担当者以外の提出は403", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "owner@example.com", string(user.RoleCompany))
		studentID := dbtest.CreateTestUser(t, s.DB, "student@example.com", string(user.RoleStudent))
		dbtest.CreateTestUser(t, s.DB, "intruder@example.com", string(user.RoleStudent))
		ownerToken := authtest.LoginUser(t, s.Router, "owner@example.com", "password123")
		intruderToken := authtest.LoginUser(t, s.Router, "intruder@example.com", "password123")

		id := s.createPosting(ownerToken, "Protected Task")
		assignReq := builder.NewMicrotaskBuilder().WithAssignedTo(studentID).BuildAssignRequestDTO()
		aw := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(tasksURL, id), assignReq, ownerToken)
		require.Equal(t, http.StatusCreated, aw.Code)

		var task response.MicrotaskResponse
		require.NoError(t, httptest.DecodeResponseBody(t, aw.Body, &task))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(submitURL, id, task.ID),
			request.SubmitMicrotaskRequest{Content: "not mine"}, intruderToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("異常系: 未割当タスクへの提出は403", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "owner@example.com", string(user.RoleCompany))
		dbtest.CreateTestUser(t, s.DB, "student@example.com", string(user.RoleStudent))
		ownerToken := authtest.LoginUser(t, s.Router, "owner@example.com", "password123")
		studentToken := authtest.LoginUser(t, s.Router, "student@example.com", "password123")

		id := s.createPosting(ownerToken, "Unassigned Task")
		assignReq := builder.NewMicrotaskBuilder().BuildAssignRequestDTO()
		aw := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(tasksURL, id), assignReq, ownerToken)
		require.Equal(t, http.StatusCreated, aw.Code)

		var task response.MicrotaskResponse
		require.NoError(t, httptest.DecodeResponseBody(t, aw.Body, &task))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(submitURL, id, task.ID),
			request.SubmitMicrotaskRequest{Content: "eager"}, studentToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("異常系: 所有者以外の割当と採点は403", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "owner@example.com", string(user.RoleCompany))
		studentID := dbtest.CreateTestUser(t, s.DB, "student@example.com", string(user.RoleStudent))
		ownerToken := authtest.LoginUser(t, s.Router, "owner@example.com", "password123")
		studentToken := authtest.LoginUser(t, s.Router, "student@example.com", "password123")

		id := s.createPosting(ownerToken, "Owner Only Tasks")

		assignReq := builder.NewMicrotaskBuilder().WithAssignedTo(studentID).BuildAssignRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(tasksURL, id), assignReq, studentToken)
		require.Equal(t, http.StatusForbidden, w.Code)

		aw := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(tasksURL, id), assignReq, ownerToken)
		require.Equal(t, http.StatusCreated, aw.Code)

		var task response.MicrotaskResponse
		require.NoError(t, httptest.DecodeResponseBody(t, aw.Body, &task))

		gw := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(gradeURL, id, task.ID),
			request.GradeMicrotaskRequest{Score: 100}, studentToken)
		require.Equal(t, http.StatusForbidden, gw.Code)
	})

	s.Run("異常系: 存在しないタスクは404", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "owner@example.com", string(user.RoleCompany))
		ownerToken := authtest.LoginUser(t, s.Router, "owner@example.com", "password123")

		id := s.createPosting(ownerToken, "Empty Posting")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf(submitURL, id, "00000000-0000-0000-0000-000000000000"),
			request.SubmitMicrotaskRequest{Content: "x"}, ownerToken)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}
