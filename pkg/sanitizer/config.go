package sanitizer

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Config is an allow-list policy. A nil AllowedTags or AllowedAttributes is
// invalid; an empty, non-nil list allows nothing. Names are matched
// case-insensitively.
type Config struct {
	AllowedTags         []string `yaml:"allowed_tags" json:"allowed_tags"`
	AllowedAttributes   []string `yaml:"allowed_attributes" json:"allowed_attributes"`
	AllowDataAttributes bool     `yaml:"allow_data_attributes" json:"allow_data_attributes"`
}

var (
	defaultTags = []string{
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "br", "strong", "em", "u", "s", "del",
		"ul", "ol", "li", "blockquote", "hr",
		"a", "img", "code", "pre",
		"table", "thead", "tbody", "tfoot", "tr", "th", "td",
		"div", "span",
	}
	defaultAttributes = []string{
		"href", "target", "rel", "src", "alt", "title",
		"width", "height", "class", "id",
	}
)

var (
	tagNameRegex  = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	attrNameRegex = regexp.MustCompile(`^[a-z_:][a-z0-9_:.-]*$`)
)

// DefaultConfig returns the policy used when the caller supplies none. It
// covers every element and attribute the markdown translator emits and a few
// harmless structural tags; data-* attributes are not allowed.
func DefaultConfig() Config {
	return Config{
		AllowedTags:         slices.Clone(defaultTags),
		AllowedAttributes:   slices.Clone(defaultAttributes),
		AllowDataAttributes: false,
	}
}

// Option modifies a Config.
type Option func(*Config)

// WithAllowedTags replaces the allowed element list. A nil list keeps the
// current one; an empty, non-nil list allows no elements at all:
//
//	sanitizer.WithAllowedTags([]string{}...)
func WithAllowedTags(tags ...string) Option {
	return func(c *Config) {
		if tags != nil {
			c.AllowedTags = append(make([]string, 0, len(tags)), tags...)
		}
	}
}

// WithAllowedAttributes replaces the allowed attribute list. A nil list
// keeps the current one.
func WithAllowedAttributes(attrs ...string) Option {
	return func(c *Config) {
		if attrs != nil {
			c.AllowedAttributes = append(make([]string, 0, len(attrs)), attrs...)
		}
	}
}

// WithExtraTags adds element names to the allowed list.
func WithExtraTags(tags ...string) Option {
	return func(c *Config) {
		c.AllowedTags = append(c.AllowedTags, tags...)
	}
}

// WithExtraAttributes adds attribute names to the allowed list.
func WithExtraAttributes(attrs ...string) Option {
	return func(c *Config) {
		c.AllowedAttributes = append(c.AllowedAttributes, attrs...)
	}
}

// WithDataAttributes toggles data-* attributes.
func WithDataAttributes(allow bool) Option {
	return func(c *Config) {
		c.AllowDataAttributes = allow
	}
}

// WithConfig replaces the whole config.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg.clone()
	}
}

// Merge applies opts to a copy of base. Options overwrite whole fields, they
// do not union lists, except for the WithExtra* options.
func Merge(base Config, opts ...Option) Config {
	cfg := base.clone()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate reports the first problem with c as a *ConfigError.
func (c Config) Validate() error {
	if c.AllowedTags == nil {
		return &ConfigError{Field: "allowed_tags", Reason: "is required"}
	}
	if c.AllowedAttributes == nil {
		return &ConfigError{Field: "allowed_attributes", Reason: "is required"}
	}
	for _, tag := range c.AllowedTags {
		if !tagNameRegex.MatchString(normalizeName(tag)) {
			return &ConfigError{Field: "allowed_tags", Reason: fmt.Sprintf("invalid element name %q", tag)}
		}
	}
	for _, attr := range c.AllowedAttributes {
		if !attrNameRegex.MatchString(normalizeName(attr)) {
			return &ConfigError{Field: "allowed_attributes", Reason: fmt.Sprintf("invalid attribute name %q", attr)}
		}
	}
	return nil
}

// Fingerprint returns a canonical string for c: two configs with the same
// fingerprint sanitize identically.
func (c Config) Fingerprint() string {
	var b strings.Builder
	b.WriteString(strings.Join(normalizeNames(c.AllowedTags), ","))
	b.WriteByte('|')
	b.WriteString(strings.Join(normalizeNames(c.AllowedAttributes), ","))
	b.WriteByte('|')
	b.WriteString(strconv.FormatBool(c.AllowDataAttributes))
	return b.String()
}

func (c Config) clone() Config {
	return Config{
		AllowedTags:         slices.Clone(c.AllowedTags),
		AllowedAttributes:   slices.Clone(c.AllowedAttributes),
		AllowDataAttributes: c.AllowDataAttributes,
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// normalizeNames lowercases, sorts and deduplicates names.
func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, normalizeName(n))
	}
	slices.Sort(out)
	return slices.Compact(out)
}
