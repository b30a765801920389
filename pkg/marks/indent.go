// Package marks recognizes the delimiters of langmark constructs.
//
// Block marks work on whole lines: fences (a line holding only a run of one
// character), prefixes (a list bullet or quote marker followed by content),
// and the handful of fixed line shapes used by headings, link definitions and
// HTML blocks. Inline marks work on character positions inside a block's text
// and decide whether a run of delimiter characters opens, closes or is plain
// text at that position.
package marks

import "strings"

// DefaultTabWidth is the distance between tab stops.
const DefaultTabWidth = 4

// Columns returns the equivalent indentation of a run of spaces and tabs.
func Columns(ws string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	col := 0
	for i := 0; i < len(ws); i++ {
		if ws[i] == '\t' {
			col = (col/tabWidth + 1) * tabWidth
			continue
		}
		col++
	}
	return col
}

// LeadingWhitespace returns the leading run of spaces and tabs of line.
func LeadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// Indentation returns the column at which the content of line starts.
func Indentation(line string, tabWidth int) int {
	return Columns(LeadingWhitespace(line), tabWidth)
}

// IsBlank reports whether line holds nothing but whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// StripColumns removes leading whitespace from line up to column n. A tab
// straddling column n is replaced by the spaces that remain past n.
func StripColumns(line string, n, tabWidth int) string {
	if n <= 0 {
		return line
	}
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	col := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			col++
		case '\t':
			col = (col/tabWidth + 1) * tabWidth
		default:
			return line[i:]
		}
		if col == n {
			return line[i+1:]
		}
		if col > n {
			return strings.Repeat(" ", col-n) + line[i+1:]
		}
	}
	return ""
}

// Normalize returns line with CRLF folded to LF and a trailing newline
// guaranteed.
func Normalize(line string) string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line + "\n"
}
