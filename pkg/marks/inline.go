package marks

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// Escape is the character that makes the next character literal.
const Escape = '`'

// ParamChar separates link parameters.
const ParamChar = '|'

// Outcome classifies an attempted match at a text position.
type Outcome uint8

const (
	// NoMatch means nothing of interest starts at the position.
	NoMatch Outcome = iota
	// Matched means a valid mark starts at the position.
	Matched
	// Literal means mark characters sit at the position but are not valid
	// there; they are kept as text.
	Literal
)

// Placement is the spacing contract of an inline mark pair.
type Placement uint8

const (
	// Tight marks touch their content: *bold*.
	Tight Placement = iota
	// Spaced marks are surrounded by whitespace: ** bold **.
	Spaced
)

func (p Placement) String() string {
	if p == Spaced {
		return "spaced"
	}
	return "tight"
}

// InlineMark describes the delimiters of an inline element. MaxRun caps the
// length of the opening run; zero leaves it unbounded.
type InlineMark struct {
	Start  byte
	End    byte
	MaxRun int
}

// Opening is a matched start mark.
type Opening struct {
	Run       int
	Placement Placement
	// Len is the number of bytes consumed, including the space that follows
	// a spaced mark.
	Len int
}

// Closer returns the end mark an opening requires.
func (m InlineMark) Closer(o Opening) EndMark {
	return EndMark{Char: m.End, Run: o.Run, Placement: o.Placement}
}

// Params returns the parameter separator an opening requires.
func (m InlineMark) Params(o Opening) ParamMark {
	return ParamMark{Run: o.Run, Placement: o.Placement}
}

// MatchStart tests for an opening mark at text[i]. boundary is the position
// right after the most recent mark, escape or element start; a mark there
// is always well placed.
func (m InlineMark) MatchStart(text string, i, boundary int) (Opening, int, Outcome) {
	if text[i] != m.Start {
		return Opening{}, 0, NoMatch
	}
	n := runLength(text, i, m.Start)
	after := i + n
	if (m.MaxRun > 0 && n > m.MaxRun) || after >= len(text) || text[after] == '\n' {
		return Opening{}, n, Literal
	}
	atBoundary := i == boundary
	lineStart := i == 0 || text[i-1] == '\n'
	preSpace := i > 0 && isSpace(text[i-1])

	if isSpace(text[after]) {
		if (atBoundary || lineStart || preSpace) && n > 1 {
			return Opening{Run: n, Placement: Spaced, Len: n + 1}, n + 1, Matched
		}
		return Opening{}, n + 1, Literal
	}
	if atBoundary || lineStart || preSpace || !wordBefore(text, i) {
		return Opening{Run: n, Placement: Tight, Len: n}, n, Matched
	}
	return Opening{}, n, Literal
}

// EndMark closes an inline element opened with the same run and placement.
type EndMark struct {
	Char      byte
	Run       int
	Placement Placement
}

// MatchAt tests for the end mark at text[i] and returns the bytes it spans.
func (e EndMark) MatchAt(text string, i, boundary int) (int, Outcome) {
	if e.Placement == Spaced {
		return spacedRun(text, i, e.Char, e.Run)
	}
	if text[i] != e.Char {
		return 0, NoMatch
	}
	n := runLength(text, i, e.Char)
	if n != e.Run {
		return n, Literal
	}
	if i > 0 && text[i-1] == '\n' {
		return n, Literal
	}
	if i > boundary && (isSpace(text[i-1]) || text[i-1] == e.Char) {
		return n, Literal
	}
	return n, Matched
}

// ParamMark separates the parameters of a link.
type ParamMark struct {
	Run       int
	Placement Placement
}

// MatchAt tests for a parameter separator at text[i].
func (p ParamMark) MatchAt(text string, i, _ int) (int, Outcome) {
	if p.Placement == Spaced {
		if text[i] == ParamChar && (i == 0 || text[i-1] == '\n') {
			n := runLength(text, i, ParamChar)
			if n == p.Run && (i+n == len(text) || isSpaceOrNewline(text[i+n])) {
				return n + trailingSpace(text, i+n), Matched
			}
			return 0, NoMatch
		}
		n, out := spacedRun(text, i, ParamChar, p.Run)
		if out == Matched {
			n += trailingSpace(text, i+n)
		}
		return n, out
	}
	if text[i] != ParamChar {
		return 0, NoMatch
	}
	n := runLength(text, i, ParamChar)
	if n != p.Run {
		return n, Literal
	}
	return n, Matched
}

// MatchEscape tests for an escape at text[i] and returns the escaped
// character.
func MatchEscape(text string, i int) (string, int, Outcome) {
	if text[i] != Escape || i+1 >= len(text) || text[i+1] == '\n' {
		return "", 0, NoMatch
	}
	_, size := utf8.DecodeRuneInString(text[i+1:])
	return text[i+1 : i+1+size], 1 + size, Matched
}

// SelfClosing is a mark that forms a complete element on its own.
type SelfClosing interface {
	Trigger() []byte
	MatchAt(text string, i int) (int, Outcome)
}

// LineBreak is a space or tab followed by '+' at the end of a line.
type LineBreak struct{}

// Trigger implements SelfClosing.
func (LineBreak) Trigger() []byte { return []byte{' ', '\t'} }

// MatchAt implements SelfClosing.
func (LineBreak) MatchAt(text string, i int) (int, Outcome) {
	if !isSpace(text[i]) || i+1 >= len(text) || text[i+1] != '+' {
		return 0, NoMatch
	}
	if i+2 < len(text) && text[i+2] != '\n' {
		return 0, NoMatch
	}
	return 2, Matched
}

//nolint:gochecknoglobals // Read-only compiled matcher.
var htmlTag = regexp.MustCompile(`^</?[a-zA-Z][a-zA-Z0-9]*(?:\s[^>]*)?>`)

// HTMLTag is an inline opening or closing HTML tag passed through verbatim.
type HTMLTag struct{}

// Trigger implements SelfClosing.
func (HTMLTag) Trigger() []byte { return []byte{'<'} }

// MatchAt implements SelfClosing.
func (HTMLTag) MatchAt(text string, i int) (int, Outcome) {
	if text[i] != '<' {
		return 0, NoMatch
	}
	loc := htmlTag.FindStringIndex(text[i:])
	if loc == nil {
		return 0, NoMatch
	}
	return loc[1], Matched
}

func spacedRun(text string, i int, c byte, run int) (int, Outcome) {
	if !isSpace(text[i]) || i+1 >= len(text) || text[i+1] != c {
		return 0, NoMatch
	}
	n := runLength(text, i+1, c)
	if n != run {
		return 0, NoMatch
	}
	if end := i + 1 + n; end < len(text) && !isSpaceOrNewline(text[end]) {
		return 0, NoMatch
	}
	return 1 + n, Matched
}

func trailingSpace(text string, i int) int {
	if i < len(text) && isSpace(text[i]) {
		return 1
	}
	return 0
}

func runLength(text string, i int, c byte) int {
	n := 0
	for i+n < len(text) && text[i+n] == c {
		n++
	}
	return n
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' }

func isSpaceOrNewline(c byte) bool { return isSpace(c) || c == '\n' }

func wordBefore(text string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
