package sanitize

import "github.com/microcosm-cc/bluemonday"

// HTMLSanitizer strips scripts, event handlers and other active content
// from backend-rendered proposal bodies while keeping ordinary markup.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

func NewHTMLSanitizer() *HTMLSanitizer {
	return &HTMLSanitizer{policy: bluemonday.UGCPolicy()}
}

// SanitizeHTML is safe for concurrent use.
func (s *HTMLSanitizer) SanitizeHTML(html string) string {
	return s.policy.Sanitize(html)
}
