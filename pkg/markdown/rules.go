package markdown

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Pre-compiled patterns, one group per rule.
var (
	lineEndingRegex = regexp.MustCompile(`\r\n?`)

	fencedCodeRegex = regexp.MustCompile("(?s)```(?:([\\w+#.-]+)[ \\t]*\\n)?\\n?(.*?)```")
	inlineCodeRegex = regexp.MustCompile("`([^`\\n]+)`")

	headingRegex   = regexp.MustCompile(`(?m)^(#{1,6}) (.*\S)[ \t]*$`)
	hrRegex        = regexp.MustCompile(`(?m)^(?:---|\*\*\*)$`)
	quoteRegex     = regexp.MustCompile(`(?m)^> (.+)$`)
	ulItemRegex    = regexp.MustCompile(`^[*-][ \t]+(\S.*)$`)
	olItemRegex    = regexp.MustCompile(`^[0-9]+\.[ \t]+(\S.*)$`)
	blankLineRegex = regexp.MustCompile(`\n(?:[ \t]*\n)+`)

	// A URL is a run of non-space characters that may contain one level of
	// balanced parentheses, e.g. https://en.wikipedia.org/wiki/Go_(language).
	imageRegex = regexp.MustCompile(`!\[([^\]\n]*)\]\(((?:[^\s()]|\([^\s()]*\))+)(?:[ \t]+"([^"\n]*)")?\)`)
	linkRegex  = regexp.MustCompile(`\[([^\]\n]+)\]\(((?:[^\s()]|\([^\s()]*\))+)(?:[ \t]+"([^"\n]*)")?\)`)

	boldStarRegex   = regexp.MustCompile(`\*\*(\S(?:.*?\S)?)\*\*`)
	boldUnderRegex  = regexp.MustCompile(`__(\S(?:.*?\S)?)__`)
	strikeRegex     = regexp.MustCompile(`~~(\S(?:.*?\S)?)~~`)
	italicStarRegex = regexp.MustCompile(`\*([^*\s](?:[^*\n]*[^*\s])?)\*`)
	italicUndRegex  = regexp.MustCompile(`_([^_\s](?:[^_\n]*[^_\s])?)_`)

	emptyParagraphRegex = regexp.MustCompile(`<p>\s*</p>`)
	blockOpenInPRegex   = regexp.MustCompile(`<p>(<(?:h[1-6]|ul|ol|blockquote|hr|pre)[\s>])`)
	blockCloseInPRegex  = regexp.MustCompile(`(</(?:h[1-6]|ul|ol|blockquote|pre)>|<hr>)</p>`)
)

// blockPrefixes are the opening tags that make a line block-level, which keeps
// it out of paragraph wrapping.
var blockPrefixes = []string{
	"<h1>", "<h2>", "<h3>", "<h4>", "<h5>", "<h6>",
	"<ul>", "<ol>", "<blockquote>", "<hr>", "<pre>",
}

func normalize(s string) string {
	s = strings.ReplaceAll(s, stashDelim, "")
	return lineEndingRegex.ReplaceAllString(s, "\n")
}

func fencedCode(st *stash) Rule {
	return func(s string) string {
		return fencedCodeRegex.ReplaceAllStringFunc(s, func(m string) string {
			parts := fencedCodeRegex.FindStringSubmatch(m)
			lang, code := parts[1], strings.TrimSuffix(parts[2], "\n")

			var b strings.Builder
			b.WriteString("<pre><code")
			if lang != "" {
				b.WriteString(` class="language-`)
				b.WriteString(html.EscapeString(lang))
				b.WriteString(`"`)
			}
			b.WriteString(">")
			b.WriteString(html.EscapeString(code))
			b.WriteString("</code></pre>")
			return st.put(b.String(), blockFragment)
		})
	}
}

func inlineCode(st *stash) Rule {
	return func(s string) string {
		return inlineCodeRegex.ReplaceAllStringFunc(s, func(m string) string {
			code := m[1 : len(m)-1]
			return st.put("<code>"+html.EscapeString(code)+"</code>", inlineFragment)
		})
	}
}

func headings(s string) string {
	return headingRegex.ReplaceAllStringFunc(s, func(m string) string {
		parts := headingRegex.FindStringSubmatch(m)
		tag := "h" + string(rune('0'+len(parts[1])))
		return "<" + tag + ">" + parts[2] + "</" + tag + ">"
	})
}

func horizontalRules(s string) string {
	return hrRegex.ReplaceAllString(s, "<hr>")
}

func blockquotes(s string) string {
	return quoteRegex.ReplaceAllString(s, "<blockquote>$1</blockquote>")
}

// lists turns list-item lines into <li> elements and wraps every run of
// consecutive same-kind items in a single <ul> or <ol>. A line already tagged
// as markup never matches an item pattern, so re-applying the rule to its own
// output cannot wrap a list twice.
func lists(s string) string {
	if !strings.ContainsAny(s, "*-0123456789") {
		return s
	}

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))

	var (
		run  strings.Builder
		kind string
	)
	flush := func() {
		if kind == "" {
			return
		}
		out = append(out, "<"+kind+">"+run.String()+"</"+kind+">")
		run.Reset()
		kind = ""
	}

	for _, line := range lines {
		itemKind, text := listItem(line)
		if itemKind == "" {
			flush()
			out = append(out, line)
			continue
		}
		if itemKind != kind {
			flush()
			kind = itemKind
		}
		run.WriteString("<li>")
		run.WriteString(text)
		run.WriteString("</li>")
	}
	flush()

	return strings.Join(out, "\n")
}

func listItem(line string) (kind, text string) {
	if m := ulItemRegex.FindStringSubmatch(line); m != nil {
		return "ul", strings.TrimRight(m[1], " \t")
	}
	if m := olItemRegex.FindStringSubmatch(line); m != nil {
		return "ol", strings.TrimRight(m[1], " \t")
	}
	return "", ""
}

// images must run before links: the link pattern would otherwise consume the
// bracketed part of the image syntax.
func images(st *stash) Rule {
	return func(s string) string {
		return imageRegex.ReplaceAllStringFunc(s, func(m string) string {
			parts := imageRegex.FindStringSubmatch(m)
			alt, src, title := parts[1], parts[2], parts[3]

			var b strings.Builder
			b.WriteString(`<img src="`)
			b.WriteString(html.EscapeString(st.restore(src)))
			b.WriteString(`" alt="`)
			b.WriteString(html.EscapeString(st.restore(alt)))
			b.WriteString(`"`)
			if title != "" {
				b.WriteString(` title="`)
				b.WriteString(html.EscapeString(st.restore(title)))
				b.WriteString(`"`)
			}
			b.WriteString(" />")
			return st.put(b.String(), imageFragment)
		})
	}
}

// links stashes only the opening tag; the link text stays in the working
// string so emphasis rules still apply to it.
func links(st *stash) Rule {
	return func(s string) string {
		return linkRegex.ReplaceAllStringFunc(s, func(m string) string {
			parts := linkRegex.FindStringSubmatch(m)
			text, href, title := parts[1], parts[2], parts[3]

			var b strings.Builder
			b.WriteString(`<a href="`)
			b.WriteString(html.EscapeString(st.restore(href)))
			b.WriteString(`" target="_blank" rel="noopener noreferrer"`)
			if title != "" {
				b.WriteString(` title="`)
				b.WriteString(html.EscapeString(st.restore(title)))
				b.WriteString(`"`)
			}
			b.WriteString(">")
			return st.put(b.String(), inlineFragment) + text + "</a>"
		})
	}
}

func bold(s string) string {
	s = boldStarRegex.ReplaceAllString(s, "<strong>$1</strong>")
	return wrapDelimited(s, boldUnderRegex, "strong")
}

func strikethrough(s string) string {
	return strikeRegex.ReplaceAllString(s, "<s>$1</s>")
}

func italic(s string) string {
	s = italicStarRegex.ReplaceAllString(s, "<em>$1</em>")
	return wrapDelimited(s, italicUndRegex, "em")
}

// wrapDelimited wraps matches of re in tag, skipping matches glued to a letter
// or digit on either side so that snake_case_names stay literal.
func wrapDelimited(s string, re *regexp.Regexp, tag string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		if wordBefore(s, m[0]) || wordAfter(s, m[1]) {
			continue
		}
		b.WriteString(s[last:m[0]])
		b.WriteString("<" + tag + ">")
		b.WriteString(s[m[2]:m[3]])
		b.WriteString("</" + tag + ">")
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func wordBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func wordAfter(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// paragraphs splits the text on blank lines and wraps every run of inline
// lines in <p>. Block-level lines are emitted as they are, so a block element
// never ends up as a paragraph child.
func paragraphs(st *stash) Rule {
	return func(s string) string {
		var (
			b    strings.Builder
			para []string
		)
		flush := func() {
			text := strings.TrimSpace(strings.Join(para, "\n"))
			if text != "" {
				b.WriteString("<p>")
				b.WriteString(text)
				b.WriteString("</p>")
			}
			para = para[:0]
		}

		for _, chunk := range blankLineRegex.Split(s, -1) {
			for _, line := range strings.Split(chunk, "\n") {
				if isBlockLine(line) || st.standalone(line) {
					flush()
					b.WriteString(strings.TrimSpace(line))
					continue
				}
				para = append(para, line)
			}
			flush()
		}
		return b.String()
	}
}

func isBlockLine(line string) bool {
	line = strings.TrimLeft(line, " \t")
	for _, p := range blockPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

func restore(st *stash) Rule {
	return st.restore
}

// cleanup removes empty paragraphs and unwraps paragraph tags sitting directly
// around block elements, which can still appear when the author typed raw
// block HTML inside a paragraph.
func cleanup(s string) string {
	s = emptyParagraphRegex.ReplaceAllString(s, "")
	s = blockOpenInPRegex.ReplaceAllString(s, "$1")
	s = blockCloseInPRegex.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}
