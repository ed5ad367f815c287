package portconfig

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// text holds a piece of the source text along with its
// byte offsets within the whole source.
type text struct {
	s      string
	p0, p1 int
}

// newText returns the whole of s as text.
func newText(s string) text {
	return text{
		s:  s,
		p1: len(s),
	}
}

// slice returns t.s[p0:p1] with its source offsets.
func (t text) slice(p0, p1 int) text {
	return text{
		s:  t.s[p0:p1],
		p0: t.p0 + p0,
		p1: t.p0 + p1,
	}
}

// eqFold reports whether t is s, ignoring case.
func (t text) eqFold(s string) bool {
	return strings.EqualFold(t.s, s)
}

// word splits off the first space-separated word of t, such as one
// word of an assumption name or the "is" separating name and value.
// It returns the word and the text that follows it. If t holds only
// space, both results are empty and the rest is positioned at the
// end of t.
func (t text) word() (text, text) {
	start := strings.IndexFunc(t.s, notSpace)
	if start == -1 {
		return t.slice(0, 0), t.slice(len(t.s), len(t.s))
	}
	t = t.slice(start, len(t.s))
	end := strings.IndexFunc(t.s, unicode.IsSpace)
	if end == -1 {
		end = len(t.s)
	}
	return t.slice(0, end), t.slice(end, len(t.s))
}

// line returns the first line of t, without its newline,
// and the text following it.
func (t text) line() (text, text) {
	i := strings.Index(t.s, "\n")
	if i == -1 {
		return t, t.slice(len(t.s), len(t.s))
	}
	return t.slice(0, i), t.slice(i+1, len(t.s))
}

// trimSpace returns t without leading and trailing space,
// keeping its offsets into the source.
func (t text) trimSpace() text {
	start := strings.IndexFunc(t.s, notSpace)
	if start == -1 {
		return t.slice(0, 0)
	}
	end := strings.LastIndexFunc(t.s, notSpace)
	_, size := utf8.DecodeRuneInString(t.s[end:])
	return t.slice(start, end+size)
}

func notSpace(r rune) bool {
	return !unicode.IsSpace(r)
}

// trimSuffix returns t without the given suffix, reporting
// whether it was there.
func (t text) trimSuffix(suffix string) (text, bool) {
	if !strings.HasSuffix(t.s, suffix) {
		return t, false
	}
	return t.slice(0, len(t.s)-len(suffix)), true
}

// span returns the text from the start of t0 to the end of t1,
// which must both be slices of t.
func (t text) span(t0, t1 text) text {
	return t.slice(t0.p0-t.p0, t1.p1-t.p0)
}
