package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goatkit/mockdesk/internal/apierrors"
)

// handleDeleteAllTickets clears tickets and comments, keeping users. Test
// suites call this between scenarios that share fixture users.
func (r *Router) handleDeleteAllTickets(c *gin.Context) {
	if err := r.store.ResetTickets(); err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// handleDeleteAll resets the whole snapshot to its seeded state.
func (r *Router) handleDeleteAll(c *gin.Context) {
	if err := r.store.ResetAll(); err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
