package markdown

// Rule is a single translation pass over the whole working text.
type Rule func(string) string

// Compose chains rules left to right into a single Rule.
func Compose(rules ...Rule) Rule {
	return func(s string) string {
		for _, rule := range rules {
			s = rule(s)
		}
		return s
	}
}

type step struct {
	name string
	rule Rule
}

// pipeline returns the ordered rule list bound to a fresh per-call stash.
//
// Order matters: code is stashed before anything can touch its content,
// line-level block rules run before inline emphasis so list and rule markers
// are consumed first, images run before links, and paragraph wrapping runs
// after every block element is already tagged.
func pipeline(st *stash) []step {
	return []step{
		{"normalize", normalize},
		{"fenced_code", fencedCode(st)},
		{"inline_code", inlineCode(st)},
		{"headings", headings},
		{"horizontal_rules", horizontalRules},
		{"blockquotes", blockquotes},
		{"lists", lists},
		{"images", images(st)},
		{"links", links(st)},
		{"bold", bold},
		{"strikethrough", strikethrough},
		{"italic", italic},
		{"paragraphs", paragraphs(st)},
		{"restore", restore(st)},
		{"cleanup", cleanup},
	}
}

// Translate converts raw chat markup into intermediate HTML. It never fails:
// anything the rules do not recognise is left as literal text. Empty input
// yields an empty string.
func Translate(raw string) string {
	if raw == "" {
		return ""
	}
	steps := pipeline(&stash{})
	rules := make([]Rule, len(steps))
	for i, s := range steps {
		rules[i] = s.rule
	}
	return Compose(rules...)(raw)
}

// Trace translates raw like Translate and calls visit with the working text
// after every rule. Stashed fragments show up as NUL-delimited references
// until the "restore" rule runs.
func Trace(raw string, visit func(rule, text string)) string {
	if raw == "" {
		return ""
	}
	text := raw
	for _, s := range pipeline(&stash{}) {
		text = s.rule(text)
		if visit != nil {
			visit(s.name, text)
		}
	}
	return text
}

// Rules returns the names of the translation rules in the order they run.
func Rules() []string {
	steps := pipeline(&stash{})
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.name
	}
	return names
}
