// Package core implements the ticket/comment/user mutation pipeline of the
// emulator: payload validation and normalization into canonical records,
// update-merge semantics matching the emulated platform's observed behavior,
// inline entity resolution, and the asynchronous job emulation.
//
// Every operation receives a working snapshot copy from the store, mutates
// it, and leaves persistence to the caller. An error from any operation
// aborts the whole batch; nothing is partially committed.
package core

import (
	"github.com/goatkit/mockdesk/internal/config"
	"github.com/goatkit/mockdesk/internal/triggers"
	"github.com/goatkit/mockdesk/internal/utils"
)

// Service carries the configuration and collaborators the operations need.
type Service struct {
	cfg       *config.Config
	sanitizer *utils.HTMLSanitizer
	triggers  *triggers.Runner
}

// NewService creates the core service.
func NewService(cfg *config.Config, runner *triggers.Runner) *Service {
	return &Service{
		cfg:       cfg,
		sanitizer: utils.NewHTMLSanitizer(),
		triggers:  runner,
	}
}

// DefaultAdminID returns the configured fallback actor id.
func (s *Service) DefaultAdminID() int64 {
	return s.cfg.DefaultAdminID
}
