package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

// fragmentKind tells the paragraph rule how a stashed fragment behaves when it
// is the only thing on a line.
type fragmentKind uint8

const (
	inlineFragment fragmentKind = iota
	blockFragment
	imageFragment
)

// stash holds finished HTML fragments that later rules must not rewrite: code
// content, link and image tags with their attribute values. Each fragment is
// replaced in the working text by a NUL-delimited reference which no rule
// pattern can match. A stash lives for exactly one Translate call.
type stash struct {
	frags []fragment
}

type fragment struct {
	html string
	kind fragmentKind
}

const stashDelim = "\x00"

var stashRefRegex = regexp.MustCompile("\x00([0-9]+)\x00")

func (s *stash) put(html string, kind fragmentKind) string {
	s.frags = append(s.frags, fragment{html: html, kind: kind})
	return stashDelim + strconv.Itoa(len(s.frags)-1) + stashDelim
}

// lookup resolves a single reference such as "\x003\x00".
func (s *stash) lookup(ref string) (fragment, bool) {
	i, err := strconv.Atoi(strings.Trim(ref, stashDelim))
	if err != nil || i < 0 || i >= len(s.frags) {
		return fragment{}, false
	}
	return s.frags[i], true
}

// restore replaces every reference with its fragment. Fragments may embed
// references to earlier fragments (an inline code span inside a link title),
// so resolution recurses; indexes only ever point backwards, which bounds it.
func (s *stash) restore(text string) string {
	if !strings.Contains(text, stashDelim) {
		return text
	}
	return stashRefRegex.ReplaceAllStringFunc(text, func(ref string) string {
		f, ok := s.lookup(ref)
		if !ok {
			return ""
		}
		return s.restore(f.html)
	})
}

// standalone reports whether line consists of a single block or image
// fragment and nothing else.
func (s *stash) standalone(line string) bool {
	line = strings.TrimSpace(line)
	loc := stashRefRegex.FindStringIndex(line)
	if loc == nil || loc[0] != 0 || loc[1] != len(line) {
		return false
	}
	f, ok := s.lookup(line)
	return ok && f.kind != inlineFragment
}
