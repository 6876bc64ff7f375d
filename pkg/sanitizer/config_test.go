package sanitizer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/chatmark/pkg/sanitizer"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := sanitizer.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.AllowDataAttributes)

	for _, tag := range []string{
		"h1", "h2", "h3", "h4", "h5", "h6", "p", "br", "strong", "em", "u", "s",
		"ul", "ol", "li", "blockquote", "hr", "a", "img", "code", "pre",
		"table", "thead", "tbody", "tr", "th", "td",
	} {
		assert.Contains(t, cfg.AllowedTags, tag)
	}
	for _, attr := range []string{"href", "target", "rel", "src", "alt", "title", "class"} {
		assert.Contains(t, cfg.AllowedAttributes, attr)
	}

	cfg.AllowedTags[0] = "mutated"
	assert.NotEqual(t, "mutated", sanitizer.DefaultConfig().AllowedTags[0], "callers get a copy")
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := sanitizer.DefaultConfig()

	t.Run("override replaces the list", func(t *testing.T) {
		cfg := sanitizer.Merge(base, sanitizer.WithAllowedTags("p", "a"))
		assert.Equal(t, []string{"p", "a"}, cfg.AllowedTags)
		assert.Equal(t, base.AllowedAttributes, cfg.AllowedAttributes)
	})

	t.Run("extra tags are appended", func(t *testing.T) {
		cfg := sanitizer.Merge(base, sanitizer.WithExtraTags("sup"))
		assert.Len(t, cfg.AllowedTags, len(base.AllowedTags)+1)
		assert.Contains(t, cfg.AllowedTags, "sup")
	})

	t.Run("base is not mutated", func(t *testing.T) {
		before := base.Fingerprint()
		_ = sanitizer.Merge(base, sanitizer.WithExtraTags("sup"), sanitizer.WithExtraAttributes("lang"))
		assert.Equal(t, before, base.Fingerprint())
	})

	t.Run("nil override keeps the base list", func(t *testing.T) {
		var none []string
		cfg := sanitizer.Merge(base, sanitizer.WithAllowedTags(none...), sanitizer.WithAllowedAttributes())
		assert.Equal(t, base.AllowedTags, cfg.AllowedTags)
		assert.Equal(t, base.AllowedAttributes, cfg.AllowedAttributes)
	})

	t.Run("empty override allows nothing", func(t *testing.T) {
		cfg := sanitizer.Merge(base, sanitizer.WithAllowedTags([]string{}...))
		assert.NotNil(t, cfg.AllowedTags)
		assert.Empty(t, cfg.AllowedTags)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("nil options are ignored", func(t *testing.T) {
		cfg := sanitizer.Merge(base, nil, sanitizer.WithDataAttributes(true))
		assert.True(t, cfg.AllowDataAttributes)
	})

	t.Run("with config replaces everything", func(t *testing.T) {
		other := sanitizer.Config{AllowedTags: []string{"p"}, AllowedAttributes: []string{}}
		cfg := sanitizer.Merge(base, sanitizer.WithConfig(other))
		assert.Equal(t, other.Fingerprint(), cfg.Fingerprint())
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cfg   sanitizer.Config
		field string
	}{
		{name: "missing tags", cfg: sanitizer.Config{AllowedAttributes: []string{}}, field: "allowed_tags"},
		{name: "missing attributes", cfg: sanitizer.Config{AllowedTags: []string{}}, field: "allowed_attributes"},
		{name: "bad tag name", cfg: sanitizer.Config{AllowedTags: []string{"<p>"}, AllowedAttributes: []string{}}, field: "allowed_tags"},
		{name: "empty tag name", cfg: sanitizer.Config{AllowedTags: []string{""}, AllowedAttributes: []string{}}, field: "allowed_tags"},
		{name: "bad attribute name", cfg: sanitizer.Config{AllowedTags: []string{"p"}, AllowedAttributes: []string{"a b"}}, field: "allowed_attributes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			require.ErrorIs(t, err, sanitizer.ErrInvalidConfig)

			var cfgErr *sanitizer.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestConfig_Fingerprint(t *testing.T) {
	t.Parallel()

	a := sanitizer.Config{AllowedTags: []string{"p", "A", "p"}, AllowedAttributes: []string{"href"}}
	b := sanitizer.Config{AllowedTags: []string{"a", "p"}, AllowedAttributes: []string{"HREF"}}
	c := sanitizer.Config{AllowedTags: []string{"a", "p"}, AllowedAttributes: []string{"href"}, AllowDataAttributes: true}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, b.Fingerprint(), c.Fingerprint())
}

func TestConfigFromMap(t *testing.T) {
	t.Parallel()

	t.Run("dompurify style keys", func(t *testing.T) {
		cfg, err := sanitizer.ConfigFromMap(map[string]any{
			"ALLOWED_TAGS":    []any{"p", "a"},
			"ALLOWED_ATTR":    []any{"href"},
			"ALLOW_DATA_ATTR": true,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"p", "a"}, cfg.AllowedTags)
		assert.Equal(t, []string{"href"}, cfg.AllowedAttributes)
		assert.True(t, cfg.AllowDataAttributes)
	})

	t.Run("snake case keys with string slices", func(t *testing.T) {
		cfg, err := sanitizer.ConfigFromMap(map[string]any{
			"allowed_tags":       []string{"p"},
			"allowed_attributes": []string{},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"p"}, cfg.AllowedTags)
		assert.False(t, cfg.AllowDataAttributes)
	})

	errorCases := []struct {
		name  string
		input map[string]any
		field string
	}{
		{name: "nil map", input: nil, field: "config"},
		{name: "missing tags", input: map[string]any{"allowed_attributes": []any{}}, field: "allowed_tags"},
		{name: "null tags", input: map[string]any{"allowed_tags": nil, "allowed_attributes": []any{}}, field: "allowed_tags"},
		{name: "tags not a list", input: map[string]any{"allowed_tags": "p", "allowed_attributes": []any{}}, field: "allowed_tags"},
		{name: "non-string tag", input: map[string]any{"allowed_tags": []any{1}, "allowed_attributes": []any{}}, field: "allowed_tags"},
		{name: "missing attributes", input: map[string]any{"allowed_tags": []any{"p"}}, field: "allowed_attributes"},
		{name: "flag not a bool", input: map[string]any{"allowed_tags": []any{}, "allowed_attributes": []any{}, "allow_data_attributes": "yes"}, field: "allow_data_attributes"},
		{name: "invalid tag name", input: map[string]any{"allowed_tags": []any{"a b"}, "allowed_attributes": []any{}}, field: "allowed_tags"},
	}

	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sanitizer.ConfigFromMap(tt.input)
			var cfgErr *sanitizer.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestParseConfigYAML(t *testing.T) {
	t.Parallel()

	cfg, err := sanitizer.ParseConfigYAML([]byte(`
allowed_tags: [p, a, code]
allowed_attributes:
  - href
allow_data_attributes: false
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "a", "code"}, cfg.AllowedTags)
	assert.Equal(t, []string{"href"}, cfg.AllowedAttributes)

	_, err = sanitizer.ParseConfigYAML([]byte("allowed_tags: [p"))
	assert.ErrorIs(t, err, sanitizer.ErrInvalidConfig)

	_, err = sanitizer.ParseConfigYAML([]byte("- p\n- a\n"))
	assert.ErrorIs(t, err, sanitizer.ErrInvalidConfig, "a list is not a mapping")
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ALLOWED_TAGS: [p]\nALLOWED_ATTR: []\n"), 0o600))

	cfg, err := sanitizer.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"p"}, cfg.AllowedTags)
	assert.Empty(t, cfg.AllowedAttributes)

	_, err = sanitizer.LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, sanitizer.ErrInvalidConfig)
}
