package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/goatkit/mockdesk/internal/apierrors"
)

// handleUsersSearch implements /api/v2/users/search?query=email:<email>.
// Only email queries are supported.
func (r *Router) handleUsersSearch(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		apierrors.ErrorWithMessage(c, apierrors.CodeNotImplemented, "no query given")
		return
	}
	if !strings.HasPrefix(query, "email:") {
		apierrors.ErrorWithMessage(c, apierrors.CodeNotImplemented, "query must begin with email")
		return
	}
	email := strings.TrimPrefix(query, "email:")
	if strings.Contains(email, ":") {
		apierrors.ErrorWithMessage(c, apierrors.CodeNotImplemented, "only currently support querying by email")
		return
	}

	snap := r.store.Copy()
	users := r.svc.UsersSearchByEmail(snap, email)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// handleUsersCreateMany implements POST /api/v2/users/create_many.
func (r *Router) handleUsersCreateMany(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.ErrorWithMessage(c, apierrors.CodeValidationFailed, "invalid JSON body: "+err.Error())
		return
	}

	snap := r.store.Copy()
	results, err := r.svc.UsersCreateMany(snap, payload)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	jobID := r.svc.SubmitJob(snap, results)
	if err := r.store.Save(snap); err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, r.svc.RenderQueued(jobID))
}

// handleUsersShowMany implements GET /api/v2/users/show_many?ids=a,b,c.
// Unknown user ids fail loudly.
func (r *Router) handleUsersShowMany(c *gin.Context) {
	ids := c.Query("ids")
	if ids == "" {
		apierrors.ErrorWithMessage(c, apierrors.CodeNotImplemented, "no ids given")
		return
	}

	snap := r.store.Copy()
	users, err := r.svc.UsersShowMany(snap, ids)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
