package api

import (
	"net/http"

	"internlink/internal/domain/posting"
	reqdto "internlink/internal/handler/dto/request"
	"internlink/internal/handler/httperr"
	"internlink/internal/handler/middleware"
	"internlink/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	cmds commands.ApplicationCommands
}

func NewApplicationHandler(cmds commands.ApplicationCommands) *ApplicationHandler {
	return &ApplicationHandler{cmds: cmds}
}

// @Summary Apply to posting
// @Description Apply to an internship posting; the owner is notified
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Posting ID"
// @Param request body reqdto.ApplyRequest true "Apply request"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /postings/{id}/applications [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	postingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid posting id", nil)
		return
	}
	applicantID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	id, err := h.cmds.Apply(c.Request.Context(), commands.ApplyRequest{
		PostingID:   postingID,
		CoverLetter: req.CoverLetter,
	}, applicantID)
	if err != nil {
		abortDomainError(c, err, "Apply failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"application_id": id.String()})
}

// @Summary Update application status
// @Description Move an application through review; the applicant is notified
// @Tags applications
// @Accept json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param request body reqdto.UpdateApplicationStatusRequest true "Status update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /applications/{id}/status [put]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
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
	var req reqdto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.UpdateStatus(c.Request.Context(), id, posting.ApplicationStatus(req.Status), callerID); err != nil {
		abortDomainError(c, err, "Status update failed")
		return
	}
	c.Status(http.StatusNoContent)
}
