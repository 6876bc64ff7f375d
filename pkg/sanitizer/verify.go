package sanitizer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

const maxReportedViolations = 10

// Verify walks markup and reports every element or attribute that cfg would
// not let through, joined with ErrPolicyViolation. It returns nil for markup
// that Sanitize could have produced with cfg, and the *ConfigError from
// Validate for an invalid cfg.
func Verify(markup string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	tags := make(map[string]struct{})
	for _, tag := range permittedTags(cfg) {
		tags[tag] = struct{}{}
	}
	plain, urls := permittedAttrs(cfg)
	attrs := make(map[string]struct{}, len(plain)+len(urls))
	for _, a := range plain {
		attrs[a] = struct{}{}
	}
	for _, a := range urls {
		attrs[a] = struct{}{}
	}

	var violations []error
	report := func(format string, args ...any) {
		if len(violations) < maxReportedViolations {
			violations = append(violations, fmt.Errorf(format, args...))
		}
	}

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != nil && !errors.Is(err, io.EOF) {
				report("tokenize: %w", err)
			}
			break
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		tok := z.Token()
		name := strings.ToLower(tok.Data)
		if _, ok := tags[name]; !ok {
			report("element <%s> is not allowed", name)
			continue
		}
		for _, attr := range tok.Attr {
			key := strings.ToLower(attr.Key)
			switch {
			case attrForbidden(key):
				report("attribute %s on <%s> is forbidden", key, name)
			case isDataAttr(key):
				if !cfg.AllowDataAttributes {
					report("data attribute %s on <%s> is not allowed", key, name)
				}
			default:
				if _, ok := attrs[key]; !ok {
					report("attribute %s on <%s> is not allowed", key, name)
					continue
				}
				if _, ok := urlAttrs[key]; ok && !safeURLRegex.MatchString(attr.Val) {
					report("attribute %s on <%s> has an unsafe url", key, name)
				}
			}
		}
	}

	if len(violations) == 0 {
		return nil
	}
	return errors.Join(ErrPolicyViolation, errors.Join(violations...))
}
