package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/goatkit/mockdesk/internal/apierrors"
)

// handleTicketsImportMany implements POST /api/v2/imports/tickets/create_many.
// The import path accepts caller-supplied timestamps and comment arrays, and
// skips triggers.
func (r *Router) handleTicketsImportMany(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.ErrorWithMessage(c, apierrors.CodeValidationFailed, "invalid JSON body: "+err.Error())
		return
	}

	snap := r.store.Copy()
	results, err := r.svc.TicketsImportMany(snap, payload)
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

// handleTicketsUpdateMany implements POST /api/v2/tickets/update_many.
func (r *Router) handleTicketsUpdateMany(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.ErrorWithMessage(c, apierrors.CodeValidationFailed, "invalid JSON body: "+err.Error())
		return
	}

	snap := r.store.Copy()
	results, err := r.svc.TicketsUpdateMany(snap, payload)
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

// handleTicketsShowMany implements GET /api/v2/tickets/show_many?ids=a,b,c.
// Missing tickets are skipped; malformed ids fail.
func (r *Router) handleTicketsShowMany(c *gin.Context) {
	ids := c.Query("ids")
	if ids == "" {
		apierrors.ErrorWithMessage(c, apierrors.CodeNotImplemented, "no ids given")
		return
	}

	snap := r.store.Copy()
	tickets, err := r.svc.TicketsShowMany(snap, ids)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

// handleTicketComments implements GET /api/v2/tickets/:id/comments.
func (r *Router) handleTicketComments(c *gin.Context) {
	ticketID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || ticketID <= 0 {
		apierrors.ErrorWithMessage(c, apierrors.CodeValidationFailed, "no ticket id given")
		return
	}

	snap := r.store.Copy()
	page, err := r.svc.TicketComments(snap, ticketID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
