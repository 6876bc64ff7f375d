package chatmark

import "errors"

var (
	// ErrCacheUnavailable marks cache failures. They are logged, never returned.
	ErrCacheUnavailable = errors.New("chatmark: render cache unavailable")
	ErrRenderPanic      = errors.New("chatmark: render panicked")
)
