package sanitizer

import (
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/chatmark/pkg/cache"
)

// Elements that are stripped even when a Config lists them.
var forbiddenTags = map[string]struct{}{
	"script": {}, "style": {}, "iframe": {}, "frame": {}, "frameset": {},
	"object": {}, "embed": {}, "applet": {}, "base": {}, "meta": {},
	"link": {}, "noscript": {}, "template": {},
}

// Attributes that are stripped even when a Config lists them. Every on*
// attribute is stripped as well.
var forbiddenAttrs = map[string]struct{}{
	"style": {}, "srcdoc": {}, "formaction": {},
}

// Attributes whose value is a URL and must pass safeURLRegex.
var urlAttrs = map[string]struct{}{
	"href": {}, "src": {}, "action": {}, "cite": {}, "background": {},
	"poster": {}, "longdesc": {}, "usemap": {}, "xlink:href": {},
	"codebase": {}, "manifest": {}, "profile": {},
}

var allowedSchemes = []string{"http", "https", "mailto"}

// safeURLRegex accepts http, https and mailto URLs and relative references.
// A relative reference has no colon before its first '/', '?' or '#'.
var safeURLRegex = regexp.MustCompile(`(?i)^\s*(?:(?:https?|mailto):|[^:/?#]*(?:[/?#]|$))`)

const policyCacheSize = 64

var (
	policiesOnce sync.Once
	policies     *cache.LRU[string, *bluemonday.Policy]
)

// policyFor returns the compiled policy for cfg, building it on first use.
func policyFor(cfg Config) (*bluemonday.Policy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	policiesOnce.Do(func() {
		policies = cache.MustNewLRU[string, *bluemonday.Policy](policyCacheSize)
	})

	key := cfg.Fingerprint()
	if p, ok := policies.Get(key); ok {
		return p, nil
	}
	p := newPolicy(cfg)
	policies.Set(key, p, 0)
	return p, nil
}

func newPolicy(cfg Config) *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	if tags := permittedTags(cfg); len(tags) > 0 {
		p.AllowElements(tags...)
		p.AllowNoAttrs().OnElements(tags...)
	}

	plain, urls := permittedAttrs(cfg)
	if len(plain) > 0 {
		p.AllowAttrs(plain...).Globally()
	}
	if len(urls) > 0 {
		p.AllowAttrs(urls...).Matching(safeURLRegex).Globally()
	}
	if cfg.AllowDataAttributes {
		p.AllowDataAttributes()
	}

	p.AllowURLSchemes(allowedSchemes...)
	p.AllowRelativeURLs(true)
	p.RequireParseableURLs(true)
	p.SkipElementsContent("script", "style")

	return p
}

// permittedTags is the normalized allow-list minus the forbidden elements.
func permittedTags(cfg Config) []string {
	var out []string
	for _, tag := range normalizeNames(cfg.AllowedTags) {
		if !tagForbidden(tag) {
			out = append(out, tag)
		}
	}
	return out
}

// permittedAttrs splits the normalized allow-list into plain and URL-bearing
// attributes, minus the forbidden ones. data-* names are only kept when the
// config allows data attributes.
func permittedAttrs(cfg Config) (plain, urls []string) {
	for _, attr := range normalizeNames(cfg.AllowedAttributes) {
		if attrForbidden(attr) {
			continue
		}
		if isDataAttr(attr) && !cfg.AllowDataAttributes {
			continue
		}
		if _, ok := urlAttrs[attr]; ok {
			urls = append(urls, attr)
			continue
		}
		plain = append(plain, attr)
	}
	return plain, urls
}

func tagForbidden(name string) bool {
	_, ok := forbiddenTags[name]
	return ok
}

func attrForbidden(name string) bool {
	if strings.HasPrefix(name, "on") {
		return true
	}
	_, ok := forbiddenAttrs[name]
	return ok
}

func isDataAttr(name string) bool {
	return strings.HasPrefix(name, "data-") && len(name) > len("data-")
}
