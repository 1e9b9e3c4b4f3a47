// Package api registers the emulated platform's HTTP surface. Every versioned
// endpoint is reachable with and without a .json suffix, because real client
// libraries use both forms interchangeably.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goatkit/mockdesk/internal/config"
	"github.com/goatkit/mockdesk/internal/core"
	"github.com/goatkit/mockdesk/internal/middleware"
	"github.com/goatkit/mockdesk/internal/store"
)

// Router wires handlers to the snapshot store and the core service.
type Router struct {
	cfg   *config.Config
	store *store.Store
	svc   *core.Service
}

// NewRouter creates the API router.
func NewRouter(cfg *config.Config, st *store.Store, svc *core.Service) *Router {
	return &Router{cfg: cfg, store: st, svc: svc}
}

// RegisterRoutes attaches all endpoints to the engine.
func (r *Router) RegisterRoutes(engine *gin.Engine) {
	engine.Use(middleware.Metrics())
	engine.Use(middleware.RateLimit(r.cfg.RateLimitPerMinute))

	r.dual(engine, http.MethodGet, "/api/v2/users/search", r.handleUsersSearch)
	r.dual(engine, http.MethodPost, "/api/v2/users/create_many", r.handleUsersCreateMany)
	r.dual(engine, http.MethodGet, "/api/v2/users/show_many", r.handleUsersShowMany)

	r.dual(engine, http.MethodPost, "/api/v2/imports/tickets/create_many", r.handleTicketsImportMany)
	r.dual(engine, http.MethodPost, "/api/v2/tickets/update_many", r.handleTicketsUpdateMany)
	r.dual(engine, http.MethodGet, "/api/v2/tickets/show_many", r.handleTicketsShowMany)
	r.dual(engine, http.MethodGet, "/api/v2/tickets/:id/comments", r.handleTicketComments)

	// The :id parameter swallows a .json suffix; the handler strips it.
	engine.GET("/api/v2/job_statuses/:id", r.handleGetJob)
	if prefix := r.cfg.JobStatusURLPrefix; prefix != "" {
		engine.GET(prefix+"/api/v2/job_statuses/:id", r.handleGetJob)
	}

	engine.POST("/api/delete_all_tickets", r.handleDeleteAllTickets)
	engine.POST("/api/delete_all", r.handleDeleteAll)

	engine.GET("/metrics", middleware.MetricsHandler())
}

// dual registers path and its .json alias.
func (r *Router) dual(engine *gin.Engine, method, path string, handler gin.HandlerFunc) {
	engine.Handle(method, path, handler)
	engine.Handle(method, path+".json", handler)
}
