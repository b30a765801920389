package marks

import (
	"regexp"
	"strings"
)

// MinFenceRun is the shortest run of fence characters that opens a block.
const MinFenceRun = 3

// Fence recognizes a line made only of a run of Char.
type Fence struct {
	Char byte
}

// FenceMatch is an opened fence. Run is the literal delimiter; only a line
// holding exactly the same run closes the block.
type FenceMatch struct {
	Indent string
	Run    string
}

// Match reports whether line opens a fenced block.
func (f Fence) Match(line string) (FenceMatch, bool) {
	indent := LeadingWhitespace(line)
	rest := line[len(indent):]
	n := 0
	for n < len(rest) && rest[n] == f.Char {
		n++
	}
	if n < MinFenceRun || strings.TrimRight(rest[n:], " \t") != "\n" {
		return FenceMatch{}, false
	}
	return FenceMatch{Indent: indent, Run: rest[:n]}, true
}

// Closes reports whether line, already stripped to the block's indentation,
// ends the block.
func (m FenceMatch) Closes(line string) bool {
	rest, ok := strings.CutPrefix(line, m.Run)
	return ok && strings.TrimRight(rest, " \t") == "\n"
}

// Prefix recognizes a line marker such as a list bullet or a quote marker.
type Prefix struct {
	Name string
	re   *regexp.Regexp
}

// NewPrefix compiles a prefix matcher. When compact is set the whitespace
// after the marker is optional.
func NewPrefix(name, pattern string, compact bool) Prefix {
	ws := `[ \t]+`
	if compact {
		ws = `[ \t]*`
	}
	return Prefix{
		Name: name,
		re:   regexp.MustCompile(`^([ \t]*)(` + pattern + ws + `)(.*\n)$`),
	}
}

//nolint:gochecknoglobals // Read-only compiled matchers.
var (
	BulletPrefix   = NewPrefix("bullet", `\*`, false)
	NumberedPrefix = NewPrefix("numbered", `(?:[0-9]+|#)\.`, false)
	LatinPrefix    = NewPrefix("latin", `[a-zA-Z&]\.`, false)
	QuotePrefix    = NewPrefix("quote", `>`, true)
)

// PrefixMatch is a matched line prefix.
type PrefixMatch struct {
	Indent string
	Marker string
	Rest   string
	Line   string
}

// Match reports whether line starts with the prefix.
func (p Prefix) Match(line string) (PrefixMatch, bool) {
	sub := p.re.FindStringSubmatch(line)
	if sub == nil {
		return PrefixMatch{}, false
	}
	return PrefixMatch{Indent: sub[1], Marker: sub[2], Rest: sub[3], Line: line}, true
}

// External is the column where the marker starts.
func (m PrefixMatch) External(tabWidth int) int {
	return Columns(m.Indent, tabWidth)
}

// Internal is the column where the content after the marker starts.
func (m PrefixMatch) Internal(tabWidth int) int {
	return Columns(m.Indent+blankOut(m.Marker), tabWidth)
}

// Adapted returns the line with the marker replaced by the spaces it
// occupied, so the content sits at the internal indentation.
func (m PrefixMatch) Adapted(tabWidth int) string {
	return strings.Repeat(" ", m.Internal(tabWidth)) + m.Rest
}

// Unquoted returns the line with its first quote marker replaced by a space.
// Any whitespace around the marker is kept as written.
func (m PrefixMatch) Unquoted() string {
	return strings.Replace(m.Line, ">", " ", 1)
}

func blankOut(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return r
		}
		return ' '
	}, s)
}

// OneLineHeading matches "== Title ==" style headings. The opening run sets
// the level, capped at 6; a closing run is optional.
func OneLineHeading(line string) (int, string, bool) {
	n := 0
	for n < len(line) && line[n] == '=' {
		n++
	}
	if n == 0 {
		return 0, "", false
	}
	body := strings.TrimSpace(strings.TrimSuffix(line[n:], "\n"))
	if body == "" {
		return 0, "", false
	}
	title := strings.TrimRight(strings.TrimRight(body, "="), " \t")
	if title == "" {
		title = body
	}
	return min(n, 6), title, true
}

//nolint:gochecknoglobals // Read-only compiled matchers.
var (
	ruleH1      = regexp.MustCompile(`^={3,}[ \t]*\n$`)
	ruleH2      = regexp.MustCompile(`^[=-]{3,}[ \t]*\n$`)
	titleLine   = regexp.MustCompile(`^[ \t]*(.*?\S)[ \t]*\n$`)
	linkDefLine = regexp.MustCompile(
		`^[ \t]*\[(.+?)\]:[ \t]+(.+?)(?:[ \t]+(?:'(.+?)'|"(.+?)"|\((.+?)\)|(.+?)))?[ \t]*\n$`)
	htmlOpenLine = regexp.MustCompile(
		`^([ \t]*)<(([a-zA-Z][a-zA-Z0-9]*)(?:[ \t][^>]*[^>/]|[ \t]*))>[ \t]*\n$`)
)

// RuleLevel returns 1 for a "===" rule, 2 for a rule mixing '=' and '-',
// and 0 when line is not a heading rule.
func RuleLevel(line string) int {
	switch {
	case ruleH1.MatchString(line):
		return 1
	case ruleH2.MatchString(line):
		return 2
	default:
		return 0
	}
}

// Title returns the trimmed text of a heading title line.
func Title(line string) (string, bool) {
	sub := titleLine.FindStringSubmatch(line)
	if sub == nil {
		return "", false
	}
	return sub[1], true
}

// LinkDefinition is a parsed "[id]: url title" line.
type LinkDefinition struct {
	ID    string
	URL   string
	Title string
}

// MatchLinkDefinition parses a link definition line.
func MatchLinkDefinition(line string) (LinkDefinition, bool) {
	sub := linkDefLine.FindStringSubmatch(line)
	if sub == nil {
		return LinkDefinition{}, false
	}
	def := LinkDefinition{ID: sub[1], URL: sub[2]}
	for _, title := range sub[3:] {
		if title != "" {
			def.Title = title
			break
		}
	}
	return def, true
}

// HTMLOpen is a line opening an HTML block.
type HTMLOpen struct {
	Indent   string
	OpenTag  string
	CloseTag string
}

// MatchHTMLOpen reports whether line is a lone opening HTML tag.
func MatchHTMLOpen(line string) (HTMLOpen, bool) {
	sub := htmlOpenLine.FindStringSubmatch(line)
	if sub == nil {
		return HTMLOpen{}, false
	}
	return HTMLOpen{
		Indent:   sub[1],
		OpenTag:  "<" + sub[2] + ">",
		CloseTag: "</" + sub[3] + ">",
	}, true
}

// Closes reports whether line, stripped to the block's indentation, is the
// matching closing tag.
func (h HTMLOpen) Closes(line string) bool {
	rest, ok := strings.CutPrefix(line, h.CloseTag)
	return ok && strings.TrimRight(rest, " \t") == "\n"
}
