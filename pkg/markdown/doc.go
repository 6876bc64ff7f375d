// Package markdown translates the small chat markup dialect into intermediate
// HTML.
//
// The dialect is intentionally flat: headings (# … ######), **bold** / __bold__,
// *italic* / _italic_, ~~strike~~, `inline code`, fenced ``` code blocks,
// [links](url "title"), ![images](src), "-" / "*" and "1." list items,
// "> " block quotes and --- / *** horizontal rules. Blank lines separate
// paragraphs.
//
// Translation is a fixed, ordered list of independent Rule passes composed
// left to right. Every rule is a best-effort substitution over whatever it
// matches, so Translate is total: malformed, unbalanced or adversarial input
// never fails, it simply stays literal text.
//
// The output is NOT safe to display. Raw HTML typed by the author is passed
// through unchanged and must go through the sanitizer package before it reaches
// a document:
//
//	html := markdown.Translate("**Hello** *world*")
//	// html == "<p><strong>Hello</strong> <em>world</em></p>"
//
// Trace exposes the intermediate text after every rule, which is handy when
// debugging why a message rendered the way it did.
package markdown
