package marks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/langmark/pkg/marks"
)

func TestInlineMark_MatchStart(t *testing.T) {
	t.Parallel()

	strong := marks.InlineMark{Start: '*', End: '*', MaxRun: 3}

	tests := []struct {
		name      string
		text      string
		pos       int
		boundary  int
		outcome   marks.Outcome
		length    int
		placement marks.Placement
	}{
		{"text start", "*bold*", 0, 0, marks.Matched, 1, marks.Tight},
		{"after space", "a *b*", 2, 0, marks.Matched, 1, marks.Tight},
		{"after newline", "a\n*b*", 2, 0, marks.Matched, 1, marks.Tight},
		{"after punctuation", "(*b*)", 1, 0, marks.Matched, 1, marks.Tight},
		{"after mark boundary", "_*b*_", 1, 1, marks.Matched, 1, marks.Tight},
		{"inside word", "word*not*", 4, 0, marks.Literal, 1, marks.Tight},
		{"after digit", "1*2", 1, 0, marks.Literal, 1, marks.Tight},
		{"run too long", "****x", 0, 0, marks.Literal, 4, marks.Tight},
		{"at end of line", "a *\nb", 2, 0, marks.Literal, 1, marks.Tight},
		{"at end of text", "a **", 2, 0, marks.Literal, 2, marks.Tight},
		{"spaced", "** b **", 0, 0, marks.Matched, 3, marks.Spaced},
		{"spaced after space", "a ** b **", 2, 0, marks.Matched, 3, marks.Spaced},
		{"spaced single char", "a * b", 2, 0, marks.Literal, 2, marks.Tight},
		{"spaced inside word", "a** b", 1, 0, marks.Literal, 3, marks.Tight},
		{"other char", "x", 0, 0, marks.NoMatch, 0, marks.Tight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opening, n, outcome := strong.MatchStart(tc.text, tc.pos, tc.boundary)
			assert.Equal(t, tc.outcome, outcome)
			assert.Equal(t, tc.length, n)
			if outcome == marks.Matched {
				assert.Equal(t, tc.placement, opening.Placement)
				assert.Equal(t, n, opening.Len)
			}
		})
	}
}

func TestInlineMark_UnboundedRun(t *testing.T) {
	t.Parallel()

	code := marks.InlineMark{Start: '#', End: '#'}
	opening, n, outcome := code.MatchStart("#####x#####", 0, 0)

	assert.Equal(t, marks.Matched, outcome)
	assert.Equal(t, 5, n)
	assert.Equal(t, marks.EndMark{Char: '#', Run: 5}, code.Closer(opening))
}

func TestEndMark_Tight(t *testing.T) {
	t.Parallel()

	end := marks.EndMark{Char: '*', Run: 1}

	tests := []struct {
		name     string
		text     string
		pos      int
		boundary int
		outcome  marks.Outcome
	}{
		{"after word", "*bold*", 5, 1, marks.Matched},
		{"right after boundary", "*_x_*", 4, 4, marks.Matched},
		{"after space", "*bold *", 6, 1, marks.Literal},
		{"longer run", "*bold**", 5, 1, marks.Literal},
		{"at line start", "*bold\n*", 6, 1, marks.Literal},
		{"other char", "*bold_", 5, 1, marks.NoMatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, outcome := end.MatchAt(tc.text, tc.pos, tc.boundary)
			assert.Equal(t, tc.outcome, outcome)
		})
	}
}

func TestEndMark_Spaced(t *testing.T) {
	t.Parallel()

	end := marks.EndMark{Char: '*', Run: 2, Placement: marks.Spaced}

	n, outcome := end.MatchAt("** bold ** tail", 7, 3)
	assert.Equal(t, marks.Matched, outcome)
	assert.Equal(t, 3, n)

	_, outcome = end.MatchAt("** bold **tail", 7, 3)
	assert.Equal(t, marks.NoMatch, outcome, "must be followed by whitespace")

	_, outcome = end.MatchAt("** bold*** ", 7, 3)
	assert.Equal(t, marks.NoMatch, outcome)

	n, outcome = end.MatchAt("** bold **", 7, 3)
	assert.Equal(t, marks.Matched, outcome, "end of text counts as whitespace")
	assert.Equal(t, 3, n)
}

func TestParamMark(t *testing.T) {
	t.Parallel()

	tight := marks.ParamMark{Run: 1}
	n, outcome := tight.MatchAt("[a|b]", 2, 1)
	assert.Equal(t, marks.Matched, outcome)
	assert.Equal(t, 1, n)

	_, outcome = tight.MatchAt("[a||b]", 2, 1)
	assert.Equal(t, marks.Literal, outcome)

	spaced := marks.ParamMark{Run: 2, Placement: marks.Spaced}
	n, outcome = spaced.MatchAt("[[ a || b ]]", 4, 3)
	assert.Equal(t, marks.Matched, outcome)
	assert.Equal(t, 4, n, "leading and trailing space are part of the separator")

	_, outcome = spaced.MatchAt("[[ a||b ]]", 4, 3)
	assert.Equal(t, marks.NoMatch, outcome)
}

func TestMatchEscape(t *testing.T) {
	t.Parallel()

	char, n, outcome := marks.MatchEscape("`*", 0)
	assert.Equal(t, marks.Matched, outcome)
	assert.Equal(t, "*", char)
	assert.Equal(t, 2, n)

	char, n, outcome = marks.MatchEscape("`é", 0)
	assert.Equal(t, marks.Matched, outcome)
	assert.Equal(t, "é", char)
	assert.Equal(t, 3, n)

	_, _, outcome = marks.MatchEscape("`", 0)
	assert.Equal(t, marks.NoMatch, outcome)

	_, _, outcome = marks.MatchEscape("`\n", 0)
	assert.Equal(t, marks.NoMatch, outcome)
}

func TestSelfClosing(t *testing.T) {
	t.Parallel()

	var br marks.LineBreak
	n, outcome := br.MatchAt("a +\nb", 1)
	assert.Equal(t, marks.Matched, outcome)
	assert.Equal(t, 2, n)

	_, outcome = br.MatchAt("a + b", 1)
	assert.Equal(t, marks.NoMatch, outcome)

	var tag marks.HTMLTag
	n, outcome = tag.MatchAt(`x <span class="a">y`, 2)
	assert.Equal(t, marks.Matched, outcome)
	assert.Equal(t, len(`<span class="a">`), n)

	_, outcome = tag.MatchAt("a < b", 2)
	assert.Equal(t, marks.NoMatch, outcome)
}
