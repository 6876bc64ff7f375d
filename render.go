package chatmark

import (
	"github.com/dmitrymomot/chatmark/pkg/markdown"
	"github.com/dmitrymomot/chatmark/pkg/sanitizer"
)

// Render translates raw and sanitizes the result with the default policy
// merged with opts. Empty input renders to "". It fails only when the merged
// policy is invalid, with a *sanitizer.ConfigError.
func Render(raw string, opts ...sanitizer.Option) (string, error) {
	cfg := sanitizer.Merge(sanitizer.DefaultConfig(), opts...)
	return sanitizer.Sanitize(markdown.Translate(raw), cfg)
}

// Fallback renders raw as escaped plain text inside one paragraph.
func Fallback(raw string) string {
	if raw == "" {
		return ""
	}
	return "<p>" + sanitizer.EscapeHTML(raw) + "</p>"
}
