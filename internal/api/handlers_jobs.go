package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/goatkit/mockdesk/internal/apierrors"
)

// handleGetJob implements GET /api/v2/job_statuses/:id, also reachable under
// the configured URL prefix. The :id may carry a .json suffix.
func (r *Router) handleGetJob(c *gin.Context) {
	jobID := strings.TrimSuffix(c.Param("id"), ".json")
	if jobID == "" {
		apierrors.ErrorWithMessage(c, apierrors.CodeNotImplemented, "no job id given")
		return
	}

	snap := r.store.Copy()
	envelope, err := r.svc.FetchJob(snap, jobID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, envelope)
}
