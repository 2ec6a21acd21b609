package api

import (
	"errors"
	"net/http"

	"internlink/internal/handler/httperr"
	"internlink/internal/infra"
	"internlink/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// abortDomainError maps the error taxonomy onto HTTP statuses:
// ownership and assignee checks are 403, missing aggregates 404,
// duplicates 409, anything the domain rejected 400, the rest 500.
func abortDomainError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, errs.ErrNotPostingOwner), errors.Is(err, errs.ErrNotAssignee):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
	case errors.Is(err, errs.ErrPostingNotFound),
		errors.Is(err, errs.ErrMicrotaskNotFound),
		errors.Is(err, errs.ErrApplicationNotFound),
		errors.Is(err, errs.ErrNotificationNotFound),
		infra.IsKind(err, infra.KindNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	case errors.Is(err, errs.ErrDuplicateApplication), infra.IsKind(err, infra.KindDuplicateKey):
		httperr.AbortWithError(c, http.StatusConflict, err, "Already exists", nil)
	case infra.IsKind(err, infra.KindDBFailure), infra.IsKind(err, infra.KindVersionConflict):
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	default:
		httperr.AbortWithError(c, http.StatusBadRequest, err, msg, nil)
	}
}
