package marks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/langmark/pkg/marks"
)

func TestFence(t *testing.T) {
	t.Parallel()

	fence := marks.Fence{Char: '#'}

	m, ok := fence.Match("  ####  \n")
	require.True(t, ok)
	assert.Equal(t, "  ", m.Indent)
	assert.Equal(t, "####", m.Run)

	assert.True(t, m.Closes("####\n"))
	assert.True(t, m.Closes("#### \t\n"))
	assert.False(t, m.Closes("###\n"), "shorter run does not close")
	assert.False(t, m.Closes("#####\n"), "longer run does not close")
	assert.False(t, m.Closes("#### x\n"))

	for _, line := range []string{"##\n", "### x\n", "x###\n", "\n"} {
		_, ok := fence.Match(line)
		assert.False(t, ok, "Match(%q)", line)
	}
}

func TestPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		prefix   marks.Prefix
		line     string
		ok       bool
		external int
		internal int
		adapted  string
	}{
		{"bullet", marks.BulletPrefix, "* item\n", true, 0, 2, "  item\n"},
		{"indented bullet", marks.BulletPrefix, "  *   item\n", true, 2, 6, "      item\n"},
		{"bullet needs space", marks.BulletPrefix, "*item\n", false, 0, 0, ""},
		{"bullet tab", marks.BulletPrefix, "*\titem\n", true, 0, 4, "    item\n"},
		{"numbered", marks.NumberedPrefix, "12. item\n", true, 0, 4, "    item\n"},
		{"hash numbered", marks.NumberedPrefix, "#. item\n", true, 0, 3, "   item\n"},
		{"latin", marks.LatinPrefix, "b. item\n", true, 0, 3, "   item\n"},
		{"latin ampersand", marks.LatinPrefix, "&. item\n", true, 0, 3, "   item\n"},
		{"latin two letters", marks.LatinPrefix, "ab. item\n", false, 0, 0, ""},
		{"quote compact", marks.QuotePrefix, ">text\n", true, 0, 1, " text\n"},
		{"quote spaced", marks.QuotePrefix, "> text\n", true, 0, 2, "  text\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m, ok := tc.prefix.Match(tc.line)
			require.Equal(t, tc.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tc.external, m.External(4))
			assert.Equal(t, tc.internal, m.Internal(4))
			assert.Equal(t, tc.adapted, m.Adapted(4))
		})
	}
}

func TestPrefixMatch_Unquoted(t *testing.T) {
	t.Parallel()

	m, ok := marks.QuotePrefix.Match("> > nested\n")
	require.True(t, ok)
	assert.Equal(t, "  > nested\n", m.Unquoted())
}

func TestOneLineHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line  string
		ok    bool
		level int
		title string
	}{
		{"= Title\n", true, 1, "Title"},
		{"== Title ==\n", true, 2, "Title"},
		{"=======Deep\n", true, 6, "Deep"},
		{"=Tight=\n", true, 1, "Tight"},
		{"===\n", false, 0, ""},
		{"=   \n", false, 0, ""},
		{" = Title\n", false, 0, ""},
	}

	for _, tc := range tests {
		level, title, ok := marks.OneLineHeading(tc.line)
		assert.Equal(t, tc.ok, ok, "OneLineHeading(%q)", tc.line)
		assert.Equal(t, tc.level, level, "OneLineHeading(%q)", tc.line)
		assert.Equal(t, tc.title, title, "OneLineHeading(%q)", tc.line)
	}
}

func TestRuleLevelAndTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, marks.RuleLevel("=====\n"))
	assert.Equal(t, 2, marks.RuleLevel("-----\n"))
	assert.Equal(t, 2, marks.RuleLevel("=-=-=\n"))
	assert.Equal(t, 0, marks.RuleLevel("--\n"))

	title, ok := marks.Title("   Spaced out  \n")
	assert.True(t, ok)
	assert.Equal(t, "Spaced out", title)

	_, ok = marks.Title("  \n")
	assert.False(t, ok)
}

func TestMatchLinkDefinition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		ok   bool
		want marks.LinkDefinition
	}{
		{"[home]: https://example.com\n", true, marks.LinkDefinition{ID: "home", URL: "https://example.com"}},
		{"[d]: /docs \"The docs\"\n", true, marks.LinkDefinition{ID: "d", URL: "/docs", Title: "The docs"}},
		{"[d]: /docs 'Single'\n", true, marks.LinkDefinition{ID: "d", URL: "/docs", Title: "Single"}},
		{"[d]: /docs (Paren)\n", true, marks.LinkDefinition{ID: "d", URL: "/docs", Title: "Paren"}},
		{"  [d]: /docs bare words\n", true, marks.LinkDefinition{ID: "d", URL: "/docs", Title: "bare words"}},
		{"[d]:/docs\n", false, marks.LinkDefinition{}},
		{"[d] /docs\n", false, marks.LinkDefinition{}},
	}

	for _, tc := range tests {
		got, ok := marks.MatchLinkDefinition(tc.line)
		assert.Equal(t, tc.ok, ok, "MatchLinkDefinition(%q)", tc.line)
		assert.Equal(t, tc.want, got, "MatchLinkDefinition(%q)", tc.line)
	}
}

func TestMatchHTMLOpen(t *testing.T) {
	t.Parallel()

	open, ok := marks.MatchHTMLOpen("<div class=\"note\">\n")
	require.True(t, ok)
	assert.Equal(t, "<div class=\"note\">", open.OpenTag)
	assert.Equal(t, "</div>", open.CloseTag)
	assert.True(t, open.Closes("</div>  \n"))
	assert.False(t, open.Closes("</span>\n"))

	for _, line := range []string{"<br/>\n", "<div>text\n", "<1>\n", "text <b>\n"} {
		_, ok := marks.MatchHTMLOpen(line)
		assert.False(t, ok, "MatchHTMLOpen(%q)", line)
	}
}
