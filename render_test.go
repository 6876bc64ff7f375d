package chatmark_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/chatmark"
	"github.com/dmitrymomot/chatmark/pkg/markdown"
	"github.com/dmitrymomot/chatmark/pkg/sanitizer"
)

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "emphasis", input: "**Hello** *world*", expected: "<p><strong>Hello</strong> <em>world</em></p>"},
		{name: "heading and paragraph", input: "# Title\n\nBody text", expected: "<h1>Title</h1><p>Body text</p>"},
		{name: "unordered list", input: "- a\n- b", expected: "<ul><li>a</li><li>b</li></ul>"},
		{name: "script is stripped", input: "<script>alert(1)</script>hi", expected: "<p>hi</p>"},
		{name: "image", input: "![alt](http://x/y.png)", expected: `<img src="http://x/y.png" alt="alt" />`},
		{name: "inline image", input: "see ![a](b.png) here", expected: `<p>see <img src="b.png" alt="a" /> here</p>`},
		{name: "empty", input: "", expected: ""},
		{name: "strikethrough", input: "~~old~~ new", expected: "<p><s>old</s> new</p>"},
		{name: "deep headings", input: "#### four\n##### five\n###### six", expected: "<h4>four</h4><h5>five</h5><h6>six</h6>"},
		{name: "fenced code language", input: "```go\nx := 1\n```", expected: `<pre><code class="language-go">x := 1</code></pre>`},
		{
			name:     "link",
			input:    "[Go](https://go.dev)",
			expected: `<p><a href="https://go.dev" target="_blank" rel="noopener noreferrer">Go</a></p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := chatmark.Render(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestRender_Image(t *testing.T) {
	t.Parallel()

	out, err := chatmark.Render("![alt](http://x/y.png)")
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)

	img := doc.Find("img")
	require.Equal(t, 1, img.Length())
	src, _ := img.Attr("src")
	alt, _ := img.Attr("alt")
	assert.Equal(t, "http://x/y.png", src)
	assert.Equal(t, "alt", alt)
	assert.Zero(t, doc.Find("p").Length(), "a standalone image is not wrapped")
	assert.Equal(t, markdown.Translate("![alt](http://x/y.png)"), out, "sanitizing keeps the translated image as is")
}

func TestRender_PlainTextIsPreserved(t *testing.T) {
	t.Parallel()

	out, err := chatmark.Render("What's on my calendar today?")
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "What's on my calendar today?", doc.Find("p").Text())
}

func TestRender_IsSafe(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"[x](javascript:alert(1))",
		"![x](javascript:alert(1))",
		"<img src=x onerror=alert(1)>",
		`<a href="&#106;avascript:alert(1)">x</a>`,
		"**<script>alert(1)</script>**",
		"- <iframe src=https://evil.example></iframe>",
		"> <svg onload=alert(1)>",
		"`<script>` is literal code",
		"[x](data:text/html;base64,PHNjcmlwdD4=)",
		`<p style="background:url(javascript:alert(1))">x</p>`,
	}

	for _, in := range inputs {
		out, err := chatmark.Render(in)
		require.NoError(t, err)

		lower := strings.ToLower(out)
		assert.NotContains(t, lower, "<script", "input %q", in)
		assert.NotContains(t, lower, "javascript:", "input %q", in)
		assert.NotContains(t, lower, "onerror", "input %q", in)
		assert.NotContains(t, lower, "onload", "input %q", in)
		assert.NotContains(t, lower, "<iframe", "input %q", in)
		assert.NotContains(t, lower, "data:text", "input %q", in)
		assert.NoError(t, sanitizer.Verify(out, sanitizer.DefaultConfig()), "input %q", in)
	}
}

func TestRender_Totality(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"", "*", "#", "[", "!", "`", ">", "-", "1.", "~", "_", "<", "&",
		strings.Repeat("**a** _b_ [c](d) ", 4_000),
		strings.Repeat("x", 60_000),
		strings.Repeat("<div>", 2_000),
	}

	for _, in := range inputs {
		assert.NotPanics(t, func() {
			_, err := chatmark.Render(in)
			assert.NoError(t, err)
		})
	}
}

func TestRender_Idempotent(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"**a** <b>b</b>", "- [x](/y)\n- ![i](i.png)", "```\n<tag>\n```"} {
		once, err := chatmark.Render(in)
		require.NoError(t, err)
		again, err := sanitizer.Sanitize(once, sanitizer.DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, once, again)
	}
}

func TestRender_Options(t *testing.T) {
	t.Parallel()

	t.Run("narrower policy", func(t *testing.T) {
		out, err := chatmark.Render("# T\n\n**b**", sanitizer.WithAllowedTags("p"))
		require.NoError(t, err)
		assert.Equal(t, "T<p>b</p>", out)
	})

	t.Run("invalid policy", func(t *testing.T) {
		_, err := chatmark.Render("x", sanitizer.WithAllowedTags("not a tag"))
		assert.ErrorIs(t, err, sanitizer.ErrInvalidConfig)
	})
}

func TestFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", chatmark.Fallback(""))
	assert.Equal(t, "<p>a &lt;b&gt; &amp; c</p>", chatmark.Fallback("a <b> & c"))
}
