package chatmark

import "github.com/dmitrymomot/chatmark/pkg/sanitizer"

// SetSanitizeFunc swaps the sanitizer stage of r.
func SetSanitizeFunc(r *Renderer, fn func(string, sanitizer.Config) (string, error)) {
	r.sanitize = fn
}

var CacheKey = cacheKey
