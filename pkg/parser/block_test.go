package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/langmark/pkg/grammar"
	"github.com/yaklabco/langmark/pkg/lmast"
	"github.com/yaklabco/langmark/pkg/parser"
)

func parse(t *testing.T, src string) *lmast.Document {
	t.Helper()

	doc, err := parser.New().ParseString(context.Background(), src)
	require.NoError(t, err)
	return doc
}

func kinds(n *lmast.Node) []lmast.NodeKind {
	var out []lmast.NodeKind
	for child := n.FirstChild; child != nil; child = child.Next {
		out = append(out, child.Kind)
	}
	return out
}

func TestParse_FenceRunMustMatchExactly(t *testing.T) {
	t.Parallel()

	doc := parse(t, "####\ntext\n###\nmore\n####\n")

	require.Equal(t, []lmast.NodeKind{lmast.NodeCodeBlock}, kinds(doc.Root))
	code := doc.Root.FirstChild
	assert.Equal(t, lmast.CodePlain, code.Block.Code.Kind)
	assert.Equal(t, "####", code.Block.Code.Fence)
	assert.Equal(t, "text\n###\nmore\n", code.Block.Raw.String())
}

func TestParse_FenceKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		kind lmast.CodeKind
	}{
		{"formattable", "|||\n*x*\n|||\n", lmast.CodeFormattable},
		{"plain", "###\n*x*\n###\n", lmast.CodePlain},
		{"raw", "\\\\\\\n<b>x</b>\n\\\\\\\n", lmast.CodeRaw},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			doc := parse(t, tc.src)
			require.Equal(t, []lmast.NodeKind{lmast.NodeCodeBlock}, kinds(doc.Root))
			code := doc.Root.FirstChild
			assert.Equal(t, tc.kind, code.Block.Code.Kind)
			if tc.kind == lmast.CodeFormattable {
				assert.Equal(t, []lmast.NodeKind{lmast.NodeStrong, lmast.NodeText}, kinds(code))
			} else {
				assert.False(t, code.HasChildren())
			}
		})
	}
}

func TestParse_UnclosedFenceRunsToEnd(t *testing.T) {
	t.Parallel()

	doc := parse(t, "###\nline one\nline two")

	require.Equal(t, []lmast.NodeKind{lmast.NodeCodeBlock}, kinds(doc.Root))
	assert.Equal(t, "line one\nline two\n", doc.Root.FirstChild.Block.Raw.String())
}

func TestParse_DedentReparents(t *testing.T) {
	t.Parallel()

	doc := parse(t, "* Item A\n  Still item A (indented)\nNot indented, new paragraph\n")

	require.Equal(t, []lmast.NodeKind{lmast.NodeListItem, lmast.NodeParagraph}, kinds(doc.Root))

	item := doc.Root.FirstChild
	require.Equal(t, []lmast.NodeKind{lmast.NodeParagraph}, kinds(item))
	assert.Equal(t, "Item A\nStill item A (indented)\n", lmast.PlainText(item.FirstChild))
	assert.Equal(t, "Not indented, new paragraph\n", lmast.PlainText(doc.Root.LastChild))
}

func TestParse_ListGrouping(t *testing.T) {
	t.Parallel()

	doc := parse(t, "* a\n* b\n* c\n")

	items := doc.Root.Children()
	require.Len(t, items, 3)
	for i, item := range items {
		require.Equal(t, lmast.NodeListItem, item.Kind)
		assert.Equal(t, i, item.Block.List.GroupIndex)
		assert.Equal(t, i == 2, item.Block.List.LastInGroup)
		assert.Equal(t, lmast.ListBullet, item.Block.List.Kind)
	}
}

func TestParse_ListKindsStartNewGroups(t *testing.T) {
	t.Parallel()

	doc := parse(t, "* a\n1. b\n#. c\na. d\n")

	items := doc.Root.Children()
	require.Len(t, items, 4)
	assert.Equal(t, lmast.ListBullet, items[0].Block.List.Kind)
	assert.Equal(t, lmast.ListNumbered, items[1].Block.List.Kind)
	assert.Equal(t, lmast.ListNumbered, items[2].Block.List.Kind)
	assert.Equal(t, lmast.ListLatin, items[3].Block.List.Kind)

	assert.True(t, items[0].Block.List.LastInGroup)
	assert.Equal(t, 0, items[1].Block.List.GroupIndex)
	assert.Equal(t, 1, items[2].Block.List.GroupIndex)
	assert.Equal(t, 0, items[3].Block.List.GroupIndex)
}

func TestParse_NestedList(t *testing.T) {
	t.Parallel()

	doc := parse(t, "* a\n  * b\n  * c\n* d\n")

	require.Equal(t, []lmast.NodeKind{lmast.NodeListItem, lmast.NodeListItem}, kinds(doc.Root))
	first := doc.Root.FirstChild
	require.Equal(t,
		[]lmast.NodeKind{lmast.NodeParagraph, lmast.NodeListItem, lmast.NodeListItem},
		kinds(first))

	nested := first.Children()[1:]
	assert.Equal(t, 0, nested[0].Block.List.GroupIndex)
	assert.True(t, nested[1].Block.List.LastInGroup)
	assert.Equal(t, 1, doc.Root.LastChild.Block.List.GroupIndex)
}

func TestParse_ParagraphEndsAtBlankLine(t *testing.T) {
	t.Parallel()

	doc := parse(t, "one\ntwo\n\n\nthree")

	require.Equal(t, []lmast.NodeKind{lmast.NodeParagraph, lmast.NodeParagraph}, kinds(doc.Root))
	assert.Equal(t, "one\ntwo\n", lmast.PlainText(doc.Root.FirstChild))
	assert.Equal(t, "three\n", lmast.PlainText(doc.Root.LastChild), "unterminated paragraph is kept")
}

func TestParse_ParagraphContinuationToleratesOneSpace(t *testing.T) {
	t.Parallel()

	doc := parse(t, "one\n two\n")

	require.Equal(t, []lmast.NodeKind{lmast.NodeParagraph}, kinds(doc.Root))
	assert.Equal(t, "one\ntwo\n", lmast.PlainText(doc.Root.FirstChild))
}

func TestParse_ParagraphYieldsToBlockStart(t *testing.T) {
	t.Parallel()

	doc := parse(t, "text\n* item\n")

	assert.Equal(t, []lmast.NodeKind{lmast.NodeParagraph, lmast.NodeListItem}, kinds(doc.Root))
}

func TestParse_Headings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		level int
		title string
	}{
		{"one line", "== Title ==\n", 2, "Title"},
		{"one line open", "=== Deep\n", 3, "Deep"},
		{"one line capped", "======== Max\n", 6, "Max"},
		{"underlined", "Title\n=====\n", 1, "Title"},
		{"underlined level two", "Title\n-----\n", 2, "Title"},
		{"framed", "=====\nTitle\n=====\n", 1, "Title"},
		{"framed mixed", "=====\nTitle\n-----\n", 2, "Title"},
		{"after paragraph", "para\n\nTitle\n=====\n", 1, "Title"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			doc := parse(t, tc.src)
			headings := lmast.FindByKind(doc.Root, lmast.NodeHeading)
			require.Len(t, headings, 1)
			assert.Equal(t, tc.level, headings[0].Block.Heading.Level)
			assert.Equal(t, tc.title, lmast.PlainText(headings[0]))
		})
	}
}

func TestParse_UnderlineNeedsBlankLineAbove(t *testing.T) {
	t.Parallel()

	doc := parse(t, "para\nTitle\n=====\n")

	assert.Empty(t, lmast.FindByKind(doc.Root, lmast.NodeHeading))
}

func TestParse_HeadingInlineContent(t *testing.T) {
	t.Parallel()

	doc := parse(t, "= A *bold* title\n")

	require.Equal(t, []lmast.NodeKind{lmast.NodeHeading}, kinds(doc.Root))
	assert.Equal(t,
		[]lmast.NodeKind{lmast.NodeText, lmast.NodeStrong, lmast.NodeText},
		kinds(doc.Root.FirstChild))
}

func TestParse_Quotes(t *testing.T) {
	t.Parallel()

	t.Run("continued", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "> a\n> b\n")
		require.Equal(t, []lmast.NodeKind{lmast.NodeQuote}, kinds(doc.Root))
		quote := doc.Root.FirstChild
		require.Equal(t, []lmast.NodeKind{lmast.NodeParagraph}, kinds(quote))
		assert.Equal(t, "a\nb\n", lmast.PlainText(quote.FirstChild))
	})

	t.Run("nested", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "> > x\n")
		require.Equal(t, []lmast.NodeKind{lmast.NodeQuote}, kinds(doc.Root))
		outer := doc.Root.FirstChild
		require.Equal(t, []lmast.NodeKind{lmast.NodeQuote}, kinds(outer))
		inner := outer.FirstChild
		require.Equal(t, []lmast.NodeKind{lmast.NodeParagraph}, kinds(inner))
		assert.Equal(t, "x\n", lmast.PlainText(inner.FirstChild))
	})

	t.Run("nested continued", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "> > x\n> > y\n")
		outer := doc.Root.FirstChild
		require.Equal(t, []lmast.NodeKind{lmast.NodeQuote}, kinds(outer))
		inner := outer.FirstChild
		require.Equal(t, []lmast.NodeKind{lmast.NodeParagraph}, kinds(inner))
		assert.Equal(t, "x\ny\n", lmast.PlainText(inner.FirstChild))
	})

	t.Run("paragraphs", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "> a\n\n> b\n")
		require.Equal(t, []lmast.NodeKind{lmast.NodeQuote}, kinds(doc.Root))
		assert.Equal(t,
			[]lmast.NodeKind{lmast.NodeParagraph, lmast.NodeParagraph},
			kinds(doc.Root.FirstChild))
	})

	t.Run("fence inside", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "> ###\n> code\n> ###\n")
		quote := doc.Root.FirstChild
		require.Equal(t, []lmast.NodeKind{lmast.NodeCodeBlock}, kinds(quote))
		assert.Equal(t, "code\n", quote.FirstChild.Block.Raw.String())
	})
}

func TestParse_IndentedBlocks(t *testing.T) {
	t.Parallel()

	t.Run("formattable code", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "para\n\n  code line\n  more\n\nafter\n")
		require.Equal(t,
			[]lmast.NodeKind{lmast.NodeParagraph, lmast.NodeCodeBlock, lmast.NodeParagraph},
			kinds(doc.Root))
		code := doc.Root.Children()[1]
		assert.Equal(t, lmast.CodeFormattable, code.Block.Code.Kind)
		assert.Equal(t, "code line\nmore\n", code.Block.Raw.String())
	})

	t.Run("plain code", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "   a < b\n\n    deeper\n")
		require.Equal(t, []lmast.NodeKind{lmast.NodeCodeBlock}, kinds(doc.Root))
		code := doc.Root.FirstChild
		assert.Equal(t, lmast.CodePlain, code.Block.Code.Kind)
		assert.Equal(t, "a < b\n\n deeper\n", code.Block.Raw.String())
	})

	t.Run("trailing blanks dropped", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "  code\n\n\n")
		assert.Equal(t, "code\n", doc.Root.FirstChild.Block.Raw.String())
	})

	t.Run("container", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "    indented text\n    * item\n")
		require.Equal(t, []lmast.NodeKind{lmast.NodeIndented}, kinds(doc.Root))
		box := doc.Root.FirstChild
		assert.Equal(t, 4, box.Block.Internal)
		assert.Equal(t, []lmast.NodeKind{lmast.NodeParagraph, lmast.NodeListItem}, kinds(box))
	})
}

func TestParse_LinkDefinitions(t *testing.T) {
	t.Parallel()

	doc := parse(t, "[home]: http://example.org \"Home page\"\nSee [site|home].\n")

	def, ok := doc.Links.Resolve("home")
	require.True(t, ok)
	assert.Equal(t, "http://example.org", def.URL)
	assert.Equal(t, "Home page", def.Title)

	require.Equal(t, []lmast.NodeKind{lmast.NodeParagraph}, kinds(doc.Root))
}

func TestParse_HTMLBlock(t *testing.T) {
	t.Parallel()

	doc := parse(t, "<div class=\"note\">\nSome *text*\n</div>\nafter\n")

	require.Equal(t, []lmast.NodeKind{lmast.NodeHTMLBlock, lmast.NodeParagraph}, kinds(doc.Root))
	block := doc.Root.FirstChild
	assert.Equal(t, `<div class="note">`, block.Block.HTML.OpenTag)
	assert.Equal(t, "</div>", block.Block.HTML.CloseTag)
	assert.Equal(t, "Some *text*\n", block.Block.Raw.String())
}

func TestParse_Header(t *testing.T) {
	t.Parallel()

	doc := parse(t, "::title Hello world\n::draft\nText\n")

	title, ok := doc.Header.Get("title")
	require.True(t, ok)
	assert.Equal(t, "Hello world", title)
	_, ok = doc.Header.Get("draft")
	assert.True(t, ok)

	require.Equal(t, []lmast.NodeKind{lmast.NodeParagraph}, kinds(doc.Root))
	assert.Equal(t, "Text\n", lmast.PlainText(doc.Root.FirstChild))
}

func TestParse_HeaderThenUnderlinedHeading(t *testing.T) {
	t.Parallel()

	doc := parse(t, "::title x\nTitle\n=====\n")

	assert.Equal(t, []lmast.NodeKind{lmast.NodeHeading}, kinds(doc.Root))
}

func TestParse_HeaderOnly(t *testing.T) {
	t.Parallel()

	doc := parse(t, "::key value\n")

	assert.Equal(t, 1, doc.Header.Len())
	assert.False(t, doc.Root.HasChildren())
}

func TestParse_DisabledBlocks(t *testing.T) {
	t.Parallel()

	g := grammar.MustNew(grammar.Without("lists", "quotes"))
	doc, err := parser.New(parser.WithGrammar(g)).ParseString(context.Background(), "* a\n> b\n")
	require.NoError(t, err)

	require.Equal(t, []lmast.NodeKind{lmast.NodeParagraph}, kinds(doc.Root))
	assert.Equal(t, "* a\n> b\n", lmast.PlainText(doc.Root.FirstChild))
}

func TestParse_TabWidth(t *testing.T) {
	t.Parallel()

	g := grammar.MustNew(grammar.WithTabWidth(2))
	doc, err := parser.New(parser.WithGrammar(g)).ParseString(context.Background(), "\tcode\n")
	require.NoError(t, err)

	require.Equal(t, []lmast.NodeKind{lmast.NodeCodeBlock}, kinds(doc.Root))
	assert.Equal(t, lmast.CodeFormattable, doc.Root.FirstChild.Block.Code.Kind)
}

func TestParse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := parser.New().ParseString(ctx, "text\n")
	require.ErrorIs(t, err, context.Canceled)
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	doc := parse(t, "")
	assert.False(t, doc.Root.HasChildren())
	assert.Equal(t, 0, doc.Header.Len())
}
