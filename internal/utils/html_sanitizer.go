// Package utils provides small shared helpers.
package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// HTMLSanitizer cleans comment bodies. The UGC policy keeps safe formatting
// for html_body; the strict policy strips every tag for plain_body.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
	strict *bluemonday.Policy
}

// NewHTMLSanitizer creates a sanitizer with user-generated-content defaults.
func NewHTMLSanitizer() *HTMLSanitizer {
	return &HTMLSanitizer{
		policy: bluemonday.UGCPolicy(),
		strict: bluemonday.StrictPolicy(),
	}
}

// Sanitize returns body with unsafe HTML removed.
func (s *HTMLSanitizer) Sanitize(body string) string {
	return s.policy.Sanitize(body)
}

// StripTags returns body with all HTML removed, for plain_body.
func (s *HTMLSanitizer) StripTags(body string) string {
	return strings.TrimSpace(s.strict.Sanitize(body))
}
