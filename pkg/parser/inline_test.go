package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/langmark/pkg/lmast"
)

// inlines parses src as a single paragraph and returns it.
func inlines(t *testing.T, src string) *lmast.Node {
	t.Helper()

	doc := parse(t, src)
	require.Equal(t, []lmast.NodeKind{lmast.NodeParagraph}, kinds(doc.Root))
	return doc.Root.FirstChild
}

func TestInline_TightMarks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		kind lmast.NodeKind
	}{
		{"_em_", lmast.NodeEmphasis},
		{"*strong*", lmast.NodeStrong},
		{"^sup^", lmast.NodeSuperscript},
		{";sub;", lmast.NodeSubscript},
		{":small:", lmast.NodeSmall},
		{"~del~", lmast.NodeStrikethrough},
		{"|code|", lmast.NodeCodeSpan},
		{"#plain#", lmast.NodeCodeSpan},
		{"\\raw\\", lmast.NodeRawSpan},
	}

	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			t.Parallel()

			para := inlines(t, tc.src)
			require.Equal(t, []lmast.NodeKind{tc.kind, lmast.NodeText}, kinds(para))
			assert.Equal(t, tc.src+"\n", lmast.PlainText(para))
		})
	}
}

func TestInline_WordInteriorIsLiteral(t *testing.T) {
	t.Parallel()

	para := inlines(t, "word*not bold*word")

	assert.Equal(t, []lmast.NodeKind{lmast.NodeText}, kinds(para))
	assert.Equal(t, "word*not bold*word\n", para.FirstChild.Inline.Text)
}

func TestInline_Spaced(t *testing.T) {
	t.Parallel()

	para := inlines(t, "a ** b c ** d")

	require.Equal(t, []lmast.NodeKind{lmast.NodeText, lmast.NodeStrong, lmast.NodeText}, kinds(para))
	strong := para.Children()[1]
	assert.True(t, strong.Inline.Spaced)
	assert.Equal(t, "** ", strong.Inline.StartMark)
	assert.Equal(t, " **", strong.Inline.EndMark)
	assert.Equal(t, "b c", lmast.PlainText(strong))
	assert.Equal(t, " d\n", para.LastChild.Inline.Text)
}

func TestInline_SingleSpacedMarkIsLiteral(t *testing.T) {
	t.Parallel()

	para := inlines(t, "a * b * c")

	assert.Equal(t, []lmast.NodeKind{lmast.NodeText}, kinds(para))
}

func TestInline_Nesting(t *testing.T) {
	t.Parallel()

	para := inlines(t, "*bold _and em_*")

	require.Equal(t, []lmast.NodeKind{lmast.NodeStrong, lmast.NodeText}, kinds(para))
	strong := para.FirstChild
	assert.Equal(t, []lmast.NodeKind{lmast.NodeText, lmast.NodeEmphasis}, kinds(strong))
}

func TestInline_Escape(t *testing.T) {
	t.Parallel()

	para := inlines(t, "`*not strong`*")

	assert.Equal(t, []lmast.NodeKind{lmast.NodeText}, kinds(para))
	assert.Equal(t, "*not strong*\n", para.FirstChild.Inline.Text)
}

func TestInline_EscapeIgnoredInPlainCode(t *testing.T) {
	t.Parallel()

	para := inlines(t, "#a`b#")

	code := para.FirstChild
	require.Equal(t, lmast.NodeCodeSpan, code.Kind)
	assert.Equal(t, lmast.CodePlain, code.Inline.Code)
	assert.Equal(t, "a`b", code.Inline.Text)
	assert.False(t, code.HasChildren())
}

func TestInline_LongerRunEscapesShorter(t *testing.T) {
	t.Parallel()

	para := inlines(t, "##a # b##")

	code := para.FirstChild
	require.Equal(t, lmast.NodeCodeSpan, code.Kind)
	assert.Equal(t, "a # b", code.Inline.Text)
}

func TestInline_UnclosedIsLiteral(t *testing.T) {
	t.Parallel()

	para := inlines(t, "*open _em_ text")

	require.Equal(t, []lmast.NodeKind{lmast.NodeText, lmast.NodeEmphasis, lmast.NodeText}, kinds(para))
	assert.Equal(t, "*open ", para.FirstChild.Inline.Text)
	assert.Equal(t, "*open _em_ text\n", lmast.PlainText(para))
}

func TestInline_RunTooLong(t *testing.T) {
	t.Parallel()

	para := inlines(t, "****x****")

	assert.Equal(t, []lmast.NodeKind{lmast.NodeText}, kinds(para))
}

func TestInline_Links(t *testing.T) {
	t.Parallel()

	para := inlines(t, "see [the *docs*|http://x.io] now")

	require.Equal(t, []lmast.NodeKind{lmast.NodeText, lmast.NodeLink, lmast.NodeText}, kinds(para))
	link := para.Children()[1]
	params := link.Children()
	require.Len(t, params, 2)
	assert.Equal(t, []lmast.NodeKind{lmast.NodeText, lmast.NodeStrong}, kinds(params[0]))
	assert.Equal(t, "http://x.io", lmast.PlainText(params[1]))
	assert.Equal(t, "|", params[1].Inline.StartMark)
}

func TestInline_LinkRegistersDefinition(t *testing.T) {
	t.Parallel()

	doc := parse(t, "[Docs|docs|http://d.io|The docs] and [again|docs]\n")

	def, ok := doc.Links.Resolve("docs")
	require.True(t, ok)
	assert.Equal(t, "http://d.io", def.URL)
	assert.Equal(t, "The docs", def.Title)
}

func TestInline_SpacedLink(t *testing.T) {
	t.Parallel()

	para := inlines(t, "[[ a b || http://x.io ]]")

	link := para.FirstChild
	require.Equal(t, lmast.NodeLink, link.Kind)
	params := link.Children()
	require.Len(t, params, 2)
	assert.Equal(t, "a b", lmast.PlainText(params[0]))
	assert.Equal(t, "http://x.io", lmast.PlainText(params[1]))
}

func TestInline_LineBreak(t *testing.T) {
	t.Parallel()

	para := inlines(t, "one +\ntwo")

	assert.Equal(t, []lmast.NodeKind{lmast.NodeText, lmast.NodeLineBreak, lmast.NodeText}, kinds(para))
	assert.Equal(t, "one +\ntwo\n", lmast.PlainText(para))
}

func TestInline_HTML(t *testing.T) {
	t.Parallel()

	para := inlines(t, "a <b>bold</b> word")

	assert.Equal(t, []lmast.NodeKind{
		lmast.NodeText, lmast.NodeHTMLInline, lmast.NodeText, lmast.NodeHTMLInline, lmast.NodeText,
	}, kinds(para))
	assert.Equal(t, "<b>", para.Children()[1].Inline.Text)
}

func TestInline_MultiLine(t *testing.T) {
	t.Parallel()

	para := inlines(t, "a *b\nc* d")

	require.Equal(t, []lmast.NodeKind{lmast.NodeText, lmast.NodeStrong, lmast.NodeText}, kinds(para))
	assert.Equal(t, "b\nc", lmast.PlainText(para.Children()[1]))
}
