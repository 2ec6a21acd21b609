package api

import (
	"net/http"
	"strconv"

	reqdto "internlink/internal/handler/dto/request"
	resdto "internlink/internal/handler/dto/response"
	"internlink/internal/handler/httperr"
	"internlink/internal/handler/middleware"
	"internlink/internal/usecase/commands"
	"internlink/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostingHandler struct {
	cmds commands.PostingCommands
	q    queries.PostingQueries
}

func NewPostingHandler(cmds commands.PostingCommands, q queries.PostingQueries) *PostingHandler {
	return &PostingHandler{cmds: cmds, q: q}
}

// @Summary Create posting
// @Description Create a draft internship posting
// @Tags postings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePostingRequest true "Create posting request"
// @Success 201 {object} resdto.PostingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /postings [post]
func (h *PostingHandler) Create(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.CreatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	id, err := h.cmds.Create(c.Request.Context(), req.ToCommand(), ownerID)
	if err != nil {
		abortDomainError(c, err, "Create posting failed")
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load posting", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPostingView(view))
}

// @Summary Publish posting
// @Description Publish a draft posting and notify prior applicants
// @Tags postings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Posting ID"
// @Success 200 {object} resdto.PostingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /postings/{id}/publish [post]
func (h *PostingHandler) Publish(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	if err := h.cmds.Publish(c.Request.Context(), id, callerID); err != nil {
		abortDomainError(c, err, "Publish failed")
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load posting", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPostingView(view))
}

// @Summary Get posting
// @Description Get a posting with its microtasks
// @Tags postings
// @Produce json
// @Param id path string true "Posting ID"
// @Success 200 {object} resdto.PostingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /postings/{id} [get]
func (h *PostingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortDomainError(c, err, "Failed to load posting")
		return
	}
	c.JSON(http.StatusOK, resdto.FromPostingView(view))
}

// @Summary List published postings
// @Description List published postings, most recent first
// @Tags postings
// @Produce json
// @Param limit query int false "Max items (default 20)"
// @Success 200 {array} resdto.PostingResponse
// @Failure 500 {object} map[string]string
// @Router /postings [get]
func (h *PostingHandler) List(c *gin.Context) {
	limit := queries.DefaultLimit
	if v := c.Query("limit"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			limit = iv
		}
	}
	items, err := h.q.ListPublished(c.Request.Context(), limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"postings": resdto.FromPostingList(items)})
}
