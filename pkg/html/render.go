// Package html renders a langmark document as an HTML fragment.
//
// Output has no document scaffolding: no doctype, head or body. Blocks are
// separated by newlines, a paragraph that is the only child of its
// container is not wrapped in <p>, and consecutive list items of one kind
// share a single <ul> or <ol>.
package html

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/langmark/pkg/links"
	"github.com/yaklabco/langmark/pkg/lmast"
)

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	defaultTags = map[lmast.NodeKind]string{
		lmast.NodeEmphasis:      "em",
		lmast.NodeStrong:        "strong",
		lmast.NodeSuperscript:   "sup",
		lmast.NodeSubscript:     "sub",
		lmast.NodeSmall:         "small",
		lmast.NodeStrikethrough: "del",
		lmast.NodeCodeSpan:      "code",
		lmast.NodeRawSpan:       "span",
		lmast.NodeListItem:      "li",
		lmast.NodeQuote:         "blockquote",
		lmast.NodeIndented:      "div",
	}
	listTags = map[lmast.ListKind][2]string{
		lmast.ListBullet:   {"<ul>", "</ul>"},
		lmast.ListNumbered: {"<ol>", "</ol>"},
		lmast.ListLatin:    {`<ol class="langmark-latin">`, "</ol>"},
	}
)

// Render returns the HTML fragment for doc.
func Render(doc *lmast.Document) string {
	r := renderer{links: doc.Links}
	return r.render(doc.Root)
}

// Write renders doc to w.
func Write(w io.Writer, doc *lmast.Document) error {
	if _, err := io.WriteString(w, Render(doc)); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}

type renderer struct {
	links *links.Registry
}

func (r renderer) render(n *lmast.Node) string {
	switch n.Kind {
	case lmast.NodeDocument:
		return r.joinBlocks(n)
	case lmast.NodeListItem, lmast.NodeQuote, lmast.NodeIndented:
		return r.container(n)
	case lmast.NodeParagraph:
		content := trimBreak(r.inlines(n))
		if n.Parent != nil && n.Parent.ChildCount() > 1 {
			return wrap("p", content)
		}
		return content
	case lmast.NodeHeading:
		return wrap("h"+strconv.Itoa(n.Block.Heading.Level), trimBreak(r.inlines(n)))
	case lmast.NodeCodeBlock:
		return r.codeBlock(n)
	case lmast.NodeHTMLBlock:
		return n.Block.HTML.OpenTag + trimBreak(r.inlines(n)) + n.Block.HTML.CloseTag
	case lmast.NodeText:
		return EscapeText(n.Inline.Text)
	case lmast.NodeCodeSpan:
		if n.Inline.Code == lmast.CodePlain {
			return wrap(tagOf(n), EscapeText(n.Inline.Text))
		}
		return wrap(tagOf(n), trimBreak(r.inlines(n)))
	case lmast.NodeRawSpan:
		return wrap(tagOf(n), n.Inline.Text)
	case lmast.NodeLink:
		return r.link(n)
	case lmast.NodeLinkParam:
		return r.inlines(n)
	case lmast.NodeLineBreak:
		return "<br>"
	case lmast.NodeHTMLInline:
		return n.Inline.Text
	default:
		return wrap(tagOf(n), trimBreak(r.inlines(n)))
	}
}

func (r renderer) inlines(n *lmast.Node) string {
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.Next {
		sb.WriteString(r.render(child))
	}
	return sb.String()
}

func (r renderer) joinBlocks(n *lmast.Node) string {
	parts := make([]string, 0, n.ChildCount())
	for child := n.FirstChild; child != nil; child = child.Next {
		parts = append(parts, r.render(child))
	}
	return strings.Join(parts, "\n")
}

// container renders a block holding blocks. A single child is wrapped
// tightly; several children go on their own lines.
func (r renderer) container(n *lmast.Node) string {
	tag := tagOf(n)
	var html string
	switch n.ChildCount() {
	case 0:
		html = wrap(tag, "")
	case 1:
		html = wrap(tag, r.render(n.FirstChild))
	default:
		html = "<" + tag + ">\n" + r.joinBlocks(n) + "\n</" + tag + ">"
	}

	if n.Kind != lmast.NodeListItem {
		return html
	}
	outer := listTags[n.Block.List.Kind]
	if n.Block.List.GroupIndex == 0 {
		html = outer[0] + "\n" + html
	}
	if n.Block.List.LastInGroup {
		html += "\n" + outer[1]
	}
	return html
}

func (r renderer) codeBlock(n *lmast.Node) string {
	switch n.Block.Code.Kind {
	case lmast.CodePlain:
		return wrap("pre", EscapeText(trimBreak(n.Block.Raw.String())))
	case lmast.CodeRaw:
		return wrap("div", trimBreak(n.Block.Raw.String()))
	default:
		return wrap("pre", trimBreak(r.inlines(n)))
	}
}

// link renders [text], [text|id or url] and the longer forms. An id is
// looked up in the document's definitions; anything else is used as the
// address itself.
func (r renderer) link(n *lmast.Node) string {
	params := n.Children()
	if len(params) == 0 {
		return ""
	}
	text := r.render(params[0])

	target := params[0]
	if len(params) > 1 {
		target = params[1]
	}
	href := quoteAttr(r.render(target))
	title := ""
	if def, ok := r.links.Resolve(lmast.PlainText(target)); ok {
		href = escapeAttr(def.URL)
		title = escapeAttr(def.Title)
	}

	if title != "" {
		return `<a href="` + href + `" title="` + title + `">` + text + "</a>"
	}
	return `<a href="` + href + `">` + text + "</a>"
}

func tagOf(n *lmast.Node) string {
	if n.Inline != nil && n.Inline.Tag != "" {
		return n.Inline.Tag
	}
	return defaultTags[n.Kind]
}

func wrap(tag, content string) string {
	return "<" + tag + ">" + content + "</" + tag + ">"
}
