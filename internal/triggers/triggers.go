// Package triggers implements the automation hook collaborator. Hooks fire
// after specific state transitions and may mutate the working snapshot before
// it is persisted. Currently the only transition that fires is a new comment
// posted through the update path; the bulk import path deliberately skips
// triggers, matching the emulated platform.
package triggers

import (
	"log"
	"sync"

	"github.com/goatkit/mockdesk/internal/models"
)

// CommentPosted is invoked with the working snapshot, the updated ticket and
// the freshly attached comment.
type CommentPosted func(snap *models.Snapshot, ticket *models.Ticket, comment *models.Comment)

// Runner holds registered hooks and fires them in registration order.
type Runner struct {
	mu            sync.RWMutex
	commentPosted []CommentPosted
}

// NewRunner creates an empty trigger runner.
func NewRunner() *Runner {
	return &Runner{}
}

// OnCommentPosted registers a hook for the new-comment transition.
func (r *Runner) OnCommentPosted(hook CommentPosted) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commentPosted = append(r.commentPosted, hook)
}

// FireCommentPosted runs all registered new-comment hooks.
func (r *Runner) FireCommentPosted(snap *models.Snapshot, ticket *models.Ticket, comment *models.Comment) {
	r.mu.RLock()
	hooks := append([]CommentPosted(nil), r.commentPosted...)
	r.mu.RUnlock()

	for _, hook := range hooks {
		hook(snap, ticket, comment)
	}
	if len(hooks) > 0 {
		log.Printf("ran %d trigger(s) for new comment %d on ticket %d", len(hooks), comment.ID, ticket.ID)
	}
}
