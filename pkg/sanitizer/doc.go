// Package sanitizer reduces untrusted HTML to an allow-listed subset that is
// safe to mount into a page.
//
// Sanitization is driven by a Config: the element names that may survive, the
// attribute names that may survive on any surviving element, and whether
// data-* attributes are kept. Everything else is removed. Text content of a
// stripped element is kept, except for script and style whose content is
// dropped entirely.
//
// A fixed set of elements and attributes can never be allowed, whatever the
// Config says:
//
//   - script, style, iframe, frame, frameset, object, embed, applet, base,
//     meta, link, noscript and template elements;
//   - event handler attributes (on*), style, srcdoc and formaction.
//
// URL-bearing attributes (href, src, action, cite, poster and friends) only
// survive with an http, https or mailto scheme or a relative reference, so
// javascript:, vbscript: and data: URLs are removed.
//
// # Usage
//
//	safe, err := sanitizer.Sanitize(markup, sanitizer.DefaultConfig())
//
// Per-call overrides are merged onto a base config with options:
//
//	cfg := sanitizer.Merge(sanitizer.DefaultConfig(),
//	    sanitizer.WithExtraTags("span"),
//	    sanitizer.WithDataAttributes(true),
//	)
//	safe, err := sanitizer.Sanitize(markup, cfg)
//
// Configs can also be decoded from loosely typed maps or YAML documents
// (ConfigFromMap, ParseConfigYAML, LoadConfigFile); the keys mirror the
// familiar DOMPurify names ALLOWED_TAGS, ALLOWED_ATTR and ALLOW_DATA_ATTR.
//
// # Errors
//
// The only failure is a malformed Config, reported as a *ConfigError that
// matches ErrInvalidConfig with errors.Is. Verify audits already sanitized
// markup against a Config and reports ErrPolicyViolation.
//
// # Concurrency
//
// All functions are safe for concurrent use. Compiled policies are memoized
// by config fingerprint.
package sanitizer
