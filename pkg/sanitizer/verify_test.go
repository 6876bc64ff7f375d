package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/chatmark/pkg/sanitizer"
)

func TestVerify(t *testing.T) {
	t.Parallel()

	cfg := sanitizer.DefaultConfig()

	tests := []struct {
		name    string
		markup  string
		wantErr bool
	}{
		{name: "empty", markup: "", wantErr: false},
		{name: "text only", markup: "hello", wantErr: false},
		{name: "allowed markup", markup: `<p><a href="https://x.io" rel="noopener">x</a></p>`, wantErr: false},
		{name: "relative image", markup: `<img src="a/b.png" alt="x"/>`, wantErr: false},
		{name: "disallowed element", markup: "<b>x</b>", wantErr: true},
		{name: "forbidden element", markup: "<script>x</script>", wantErr: true},
		{name: "event handler", markup: `<p onclick="x">x</p>`, wantErr: true},
		{name: "unknown attribute", markup: `<p lang="en">x</p>`, wantErr: true},
		{name: "unsafe url", markup: `<a href="javascript:x">x</a>`, wantErr: true},
		{name: "data attribute", markup: `<p data-x="1">x</p>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := sanitizer.Verify(tt.markup, cfg)
			if tt.wantErr {
				assert.ErrorIs(t, err, sanitizer.ErrPolicyViolation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestVerify_DataAttributesAllowed(t *testing.T) {
	t.Parallel()

	cfg := sanitizer.Merge(sanitizer.DefaultConfig(), sanitizer.WithDataAttributes(true))
	assert.NoError(t, sanitizer.Verify(`<p data-x="1">x</p>`, cfg))
}

func TestVerify_ReportsEveryViolation(t *testing.T) {
	t.Parallel()

	err := sanitizer.Verify(`<b>x</b><p onclick="y">z</p>`, sanitizer.DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "element <b>")
	assert.Contains(t, err.Error(), "attribute onclick")
}

func TestVerify_InvalidConfig(t *testing.T) {
	t.Parallel()

	err := sanitizer.Verify("<p>x</p>", sanitizer.Config{AllowedTags: []string{"p"}})
	assert.ErrorIs(t, err, sanitizer.ErrInvalidConfig)
	assert.NotErrorIs(t, err, sanitizer.ErrPolicyViolation)
}
