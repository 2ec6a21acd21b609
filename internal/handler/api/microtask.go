package api

import (
	"net/http"

	reqdto "internlink/internal/handler/dto/request"
	resdto "internlink/internal/handler/dto/response"
	"internlink/internal/handler/httperr"
	"internlink/internal/handler/middleware"
	"internlink/internal/usecase/commands"
	"internlink/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MicrotaskHandler struct {
	cmds commands.MicrotaskCommands
	q    queries.PostingQueries
}

func NewMicrotaskHandler(cmds commands.MicrotaskCommands, q queries.PostingQueries) *MicrotaskHandler {
	return &MicrotaskHandler{cmds: cmds, q: q}
}

// @Summary Assign microtask
// @Description Create a microtask on a posting, optionally assigned to a student
// @Tags microtasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Posting ID"
// @Param request body reqdto.AssignMicrotaskRequest true "Assign microtask request"
// @Success 201 {object} resdto.MicrotaskResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /postings/{id}/tasks [post]
func (h *MicrotaskHandler) Assign(c *gin.Context) {
	postingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid posting id", nil)
		return
	}
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.AssignMicrotaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Assign(c.Request.Context(), postingID, req.ToCommand(), callerID)
	if err != nil {
		abortDomainError(c, err, "Assign microtask failed")
		return
	}
	c.JSON(http.StatusCreated, h.taskResponse(c, result))
}

// @Summary Submit microtask
// @Description Submit work for an assigned microtask; quizzes are graded immediately
// @Tags microtasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Posting ID"
// @Param taskId path string true "Task ID"
// @Param request body reqdto.SubmitMicrotaskRequest true "Submit microtask request"
// @Success 200 {object} resdto.MicrotaskResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /postings/{id}/tasks/{taskId}/submit [post]
func (h *MicrotaskHandler) Submit(c *gin.Context) {
	postingID, taskID, ok := h.pathIDs(c)
	if !ok {
		return
	}
	submitterID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.SubmitMicrotaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Submit(c.Request.Context(), postingID, taskID, req.ToCommand(), submitterID)
	if err != nil {
		abortDomainError(c, err, "Submit microtask failed")
		return
	}
	c.JSON(http.StatusOK, h.taskResponse(c, result))
}

// @Summary Grade microtask
// @Description Grade a submitted microtask with a score and feedback
// @Tags microtasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Posting ID"
// @Param taskId path string true "Task ID"
// @Param request body reqdto.GradeMicrotaskRequest true "Grade microtask request"
// @Success 200 {object} resdto.MicrotaskResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /postings/{id}/tasks/{taskId}/grade [post]
func (h *MicrotaskHandler) Grade(c *gin.Context) {
	postingID, taskID, ok := h.pathIDs(c)
	if !ok {
		return
	}
	graderID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.GradeMicrotaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Grade(c.Request.Context(), postingID, taskID, req.ToCommand(), graderID)
	if err != nil {
		abortDomainError(c, err, "Grade microtask failed")
		return
	}
	c.JSON(http.StatusOK, h.taskResponse(c, result))
}

func (h *MicrotaskHandler) pathIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	postingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid posting id", nil)
		return uuid.Nil, uuid.Nil, false
	}
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid task id", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return postingID, taskID, true
}

// taskResponse re-reads the task through the read side so the response
// reflects exactly what was stored.
func (h *MicrotaskHandler) taskResponse(c *gin.Context, result *commands.MicrotaskResult) resdto.MicrotaskResponse {
	view, err := h.q.GetByID(c.Request.Context(), result.PostingID)
	if err == nil {
		for i := range view.Tasks {
			if view.Tasks[i].ID == result.Task.ID() {
				return resdto.FromMicrotaskView(&view.Tasks[i])
			}
		}
	}
	// Fall back to the in-memory state from the command.
	mv := toMicrotaskView(result)
	return resdto.FromMicrotaskView(&mv)
}

func toMicrotaskView(result *commands.MicrotaskResult) queries.MicrotaskView {
	t := result.Task
	view := queries.MicrotaskView{
		ID:           t.ID(),
		Title:        t.Title(),
		Kind:         t.Kind().String(),
		Instructions: t.Instructions(),
		AssignedTo:   t.AssignedTo(),
		AssignedAt:   t.AssignedAt(),
		DueDate:      t.DueDate(),
		Status:       t.Status().String(),
		Score:        t.Score(),
		Feedback:     t.Feedback(),
	}
	for _, q := range t.QuizQuestions() {
		view.QuizQuestions = append(view.QuizQuestions, queries.QuizQuestionView{
			Question:     q.Question,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
		})
	}
	if sub := t.Submission(); sub != nil {
		view.Submission = &queries.SubmissionView{
			SubmittedAt: sub.SubmittedAt,
			Kind:        sub.Kind,
			Content:     sub.Content,
			Answers:     sub.Answers,
		}
	}
	return view
}
