// Package chatmark renders chat-message markup to HTML that is safe to mount
// into a page.
//
// Rendering is two stages. The markdown translator (pkg/markdown) turns raw
// message text into intermediate HTML with a small, forgiving dialect:
// headings, emphasis, lists, links, images, code and quotes. The sanitizer
// (pkg/sanitizer) then reduces that HTML to an allow-list. Raw HTML typed by
// the author is passed through the translator untouched, so the sanitizer
// alone decides what survives.
//
// Render is the only entry point collaborators need:
//
//	html, err := chatmark.Render("**Hello** *world*")
//	// html == "<p><strong>Hello</strong> <em>world</em></p>"
//
// Sanitizer overrides are merged onto sanitizer.DefaultConfig per call:
//
//	html, err := chatmark.Render(text, sanitizer.WithDataAttributes(true))
//
// The only error is an invalid sanitizer configuration.
//
// # Renderer
//
// Renderer wraps Render for long-running services. It logs through slog,
// can cache results in any Cache (cache.MemoryStore, redis.Store), audits
// every result with sanitizer.Verify and never hands a view a blank or
// unsafe result: if translation panics or the audit fails it returns
// Fallback, the escaped raw text in a single paragraph.
//
//	r := chatmark.NewRenderer(
//		chatmark.WithLogger(log),
//		chatmark.WithCache(store),
//		chatmark.WithCacheTTL(10*time.Minute),
//	)
//	html, err := r.Render(ctx, text)
package chatmark
