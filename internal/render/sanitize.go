package render

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans provider-supplied rich text before it is embedded.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer returns a sanitizer on the UGC policy: basic formatting and
// links survive, scripts, styles and event handlers do not.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return &Sanitizer{policy: p}
}

// Sanitize returns html stripped of anything outside the policy.
func (s *Sanitizer) Sanitize(html string) string {
	return strings.TrimSpace(s.policy.Sanitize(html))
}
