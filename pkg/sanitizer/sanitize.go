package sanitizer

import (
	"strings"

	"golang.org/x/net/html"
)

// Sanitize removes every element and attribute that cfg does not allow and
// returns the remaining markup. Every surviving tag and attribute is on the
// allow-list, and sanitizing the output again with the same cfg returns it
// unchanged. Tags are filtered one by one and never rebalanced, so unclosed
// or stray tags in the input stay unbalanced in the output.
//
// Self-closing tags are written as `<img ... />`, matching the translator.
//
// The only error is an invalid cfg.
func Sanitize(markup string, cfg Config) (string, error) {
	p, err := policyFor(cfg)
	if err != nil {
		return "", err
	}
	if markup == "" {
		return "", nil
	}
	return spaceSelfClosing(p.Sanitize(markup)), nil
}

// spaceSelfClosing turns `<img a="b"/>` into `<img a="b" />`. Text and
// attribute values in sanitized output always have '>' escaped, so "/>" only
// occurs at the end of a self-closing tag.
func spaceSelfClosing(s string) string {
	return strings.ReplaceAll(s, "/>", " />")
}

// SanitizeDefault sanitizes markup with DefaultConfig.
func SanitizeDefault(markup string) string {
	out, _ := Sanitize(markup, DefaultConfig())
	return out
}

// EscapeHTML escapes <, >, &, ' and " so that s renders as literal text.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}
