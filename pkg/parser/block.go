package parser

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/langmark/pkg/grammar"
	"github.com/yaklabco/langmark/pkg/lmast"
	"github.com/yaklabco/langmark/pkg/marks"
)

// stepKind is the outcome of feeding one line to an open leaf block.
type stepKind uint8

const (
	// stepNext keeps feeding the same leaf.
	stepNext stepKind = iota
	// stepEndConsumed closes the leaf; its closing line was part of it.
	stepEndConsumed
	// stepEndNotConsumed closes the leaf and hands lines back to the stream.
	stepEndNotConsumed
	// stepStart closes the leaf because another block starts here.
	stepStart
	// stepEOF closes everything.
	stepEOF
)

type step struct {
	kind  stepKind
	lines []string
	start *frame
}

// startKind is the outcome of testing the block matchers.
type startKind uint8

const (
	noStart startKind = iota
	// started carries a new block to attach.
	started
	// consumed means the lines were taken by a metadata block; test again.
	consumed
	// continued means the current element goes on with a rewritten line.
	continued
)

type start struct {
	kind  startKind
	frame *frame
	line  string
}

// leaf consumes the lines of a block whose content is text.
type leaf interface {
	next(p *blockParser, f *frame) step
}

// frame is an open block. Containers have a nil leaf.
type frame struct {
	node *lmast.Node
	leaf leaf
}

//nolint:gochecknoglobals // Read-only tables.
var (
	fenceKinds = []struct {
		fence marks.Fence
		kind  lmast.CodeKind
	}{
		{marks.Fence{Char: '|'}, lmast.CodeFormattable},
		{marks.Fence{Char: '#'}, lmast.CodePlain},
		{marks.Fence{Char: '\\'}, lmast.CodeRaw},
	}
	listKinds = []struct {
		prefix marks.Prefix
		kind   lmast.ListKind
	}{
		{marks.BulletPrefix, lmast.ListBullet},
		{marks.NumberedPrefix, lmast.ListNumbered},
		{marks.LatinPrefix, lmast.ListLatin},
	}
)

// blockParser builds the block tree. Open blocks live on an explicit stack
// from the document root to the innermost block; the loop in run drives
// them one line at a time.
type blockParser struct {
	g      *grammar.Grammar
	blocks []grammar.BlockKind
	tab    int
	in     *Stream
	doc    *lmast.Document
	inline *inlineParser
	logger *log.Logger
	stack  []*frame
}

func newBlockParser(g *grammar.Grammar, in *Stream, doc *lmast.Document, logger *log.Logger) *blockParser {
	return &blockParser{
		g:      g,
		blocks: g.Blocks(),
		tab:    g.TabWidth(),
		in:     in,
		doc:    doc,
		inline: newInlineParser(g, doc.Links),
		logger: logger,
		stack:  []*frame{{node: doc.Root}},
	}
}

func (p *blockParser) top() *frame {
	return p.stack[len(p.stack)-1]
}

func (p *blockParser) run() {
	for {
		top := p.top()
		if top.leaf != nil {
			st := top.leaf.next(p, top)
			switch st.kind {
			case stepNext:
			case stepEndConsumed:
				p.pop()
			case stepEndNotConsumed:
				p.pop()
				p.in.Rewind(st.lines...)
			case stepStart:
				p.pop()
				p.attach(st.start)
			case stepEOF:
				p.closeAll()
				return
			}
			continue
		}

		s := p.findStart()
		switch s.kind {
		case started:
			p.attach(s.frame)
			continue
		case continued:
			p.in.Rewind(s.line)
			continue
		case noStart, consumed:
		}

		f, more := p.startParagraph()
		if !more {
			p.closeAll()
			return
		}
		if f != nil {
			p.attach(f)
		}
	}
}

// attach adds a new block under the innermost open container whose content
// indentation it reaches, closing every container it falls short of.
func (p *blockParser) attach(f *frame) {
	external := f.node.Block.External
	for len(p.stack) > 1 && external < p.top().node.Block.Internal {
		p.pop()
	}
	parent := p.top().node
	groupListItem(parent, f.node)
	lmast.AppendChild(parent, f.node)
	p.stack = append(p.stack, f)
}

func (p *blockParser) pop() {
	f := p.top()
	p.stack = p.stack[:len(p.stack)-1]
	if f.leaf != nil {
		p.finalize(f.node)
	}
}

func (p *blockParser) closeAll() {
	for len(p.stack) > 1 {
		p.pop()
	}
}

// finalize runs the inline parser over a finished leaf.
func (p *blockParser) finalize(n *lmast.Node) {
	switch n.Kind {
	case lmast.NodeParagraph, lmast.NodeHeading, lmast.NodeHTMLBlock:
		p.inline.parse(n, n.Block.Raw.String())
	case lmast.NodeCodeBlock:
		if n.Block.Code.Kind == lmast.CodeFormattable {
			p.inline.parse(n, n.Block.Raw.String())
		}
	default:
	}
	p.logger.Debug("block finalized", "kind", n.Kind, "indent", n.Block.External, "bytes", n.Block.Raw.Len())
}

// frameFor returns the innermost open container whose content indentation
// is not deeper than indent.
func (p *blockParser) frameFor(indent int) *frame {
	for i := len(p.stack) - 1; i > 0; i-- {
		f := p.stack[i]
		if f.leaf == nil && indent >= f.node.Block.Internal {
			return f
		}
	}
	return p.stack[0]
}

// innermostQuote returns the deepest open quote, or nil.
func (p *blockParser) innermostQuote() *lmast.Node {
	for i := len(p.stack) - 1; i >= 0; i-- {
		if p.stack[i].node.Kind == lmast.NodeQuote {
			return p.stack[i].node
		}
	}
	return nil
}

// unquote blanks the quote markers in the part of line that lies inside
// the innermost open quote's prefix, so quoted leaf content reads like
// indented content.
func (p *blockParser) unquote(line string) string {
	quote := p.innermostQuote()
	if quote == nil || !strings.HasPrefix(strings.TrimLeft(line, " \t"), ">") {
		return line
	}
	var sb strings.Builder
	col := 0
	for i := 0; i < len(line); i++ {
		c := line[i]
		if col >= quote.Block.Internal || (c != ' ' && c != '\t' && c != '>') {
			sb.WriteString(line[i:])
			break
		}
		switch c {
		case '>':
			sb.WriteByte(' ')
			col++
		case '\t':
			sb.WriteByte(c)
			col = (col/p.tab + 1) * p.tab
		default:
			sb.WriteByte(c)
			col++
		}
	}
	return sb.String()
}

// findStart tests the installed block matchers in priority order.
func (p *blockParser) findStart() start {
	for {
		again := false
		for _, kind := range p.blocks {
			s := p.tryBlock(kind)
			if s.kind == consumed {
				again = true
				break
			}
			if s.kind != noStart {
				return s
			}
		}
		if !again {
			return start{}
		}
	}
}

func (p *blockParser) tryBlock(kind grammar.BlockKind) start {
	switch kind {
	case grammar.BlockHeadings:
		return p.matchHeading()
	case grammar.BlockLinkDefinitions:
		return p.matchLinkDefinition()
	case grammar.BlockIndented:
		return p.matchIndented()
	case grammar.BlockFences:
		return p.matchFence()
	case grammar.BlockLists:
		return p.matchListItem()
	case grammar.BlockQuotes:
		return p.matchQuote()
	case grammar.BlockHTML:
		return p.matchHTMLBlock()
	default:
		return start{}
	}
}

func (p *blockParser) peekLine() (string, bool) {
	lines := p.in.Peek(1)
	if len(lines) == 0 {
		return "", false
	}
	return lines[0], true
}

func opened(node *lmast.Node, l leaf) start {
	return start{kind: started, frame: &frame{node: node, leaf: l}}
}

func (p *blockParser) matchHeading() start {
	lines := p.in.Peek(3)
	if len(lines) == 0 {
		return start{}
	}
	if level, title, ok := marks.OneLineHeading(lines[0]); ok {
		p.in.Skip(1)
		return p.heading(level, title)
	}
	if len(lines) < 3 {
		return start{}
	}
	title, ok := marks.Title(lines[1])
	if !ok {
		return start{}
	}
	top, bottom := marks.RuleLevel(lines[0]), marks.RuleLevel(lines[2])
	level := 0
	switch {
	case marks.IsBlank(lines[0]):
		level = bottom
	case top == 1 && bottom > 0:
		level = bottom
	case top == 2 && bottom > 0:
		level = 2
	}
	if level == 0 {
		return start{}
	}
	p.in.Skip(3)
	return p.heading(level, title)
}

func (p *blockParser) heading(level int, title string) start {
	node := lmast.NewBlock(lmast.NodeHeading, 0, 0)
	node.Block.Heading = &lmast.HeadingAttrs{Level: level}
	node.Block.Raw.Append(title)
	return opened(node, headingLeaf{})
}

func (p *blockParser) matchLinkDefinition() start {
	line, ok := p.peekLine()
	if !ok {
		return start{}
	}
	def, ok := marks.MatchLinkDefinition(line)
	if !ok {
		return start{}
	}
	p.in.Skip(1)
	p.doc.Links.Register(def.ID, def.URL, def.Title)
	return start{kind: consumed}
}

func (p *blockParser) matchIndented() start {
	line, ok := p.peekLine()
	if !ok || marks.IsBlank(line) {
		return start{}
	}
	indent := marks.Indentation(line, p.tab)
	base := p.frameFor(indent).node.Block.Internal
	slot, stepWidth := p.g.Indented(indent - base)
	content := base + stepWidth

	switch slot {
	case grammar.IndentFormattableCode, grammar.IndentPlainCode:
		kind := lmast.CodeFormattable
		if slot == grammar.IndentPlainCode {
			kind = lmast.CodePlain
		}
		node := lmast.NewBlock(lmast.NodeCodeBlock, base, content)
		node.Block.Code = &lmast.CodeAttrs{Kind: kind}
		p.in.Skip(1)
		node.Block.Raw.Append(marks.StripColumns(line, content, p.tab))
		return opened(node, &indentedLeaf{content: content})
	case grammar.IndentContainer:
		return opened(lmast.NewBlock(lmast.NodeIndented, base, content), nil)
	default:
		return start{}
	}
}

func (p *blockParser) matchFence() start {
	line, ok := p.peekLine()
	if !ok {
		return start{}
	}
	for _, fk := range fenceKinds {
		m, ok := fk.fence.Match(line)
		if !ok {
			continue
		}
		indent := marks.Columns(m.Indent, p.tab)
		node := lmast.NewBlock(lmast.NodeCodeBlock, indent, indent)
		node.Block.Code = &lmast.CodeAttrs{Kind: fk.kind, Fence: m.Run}
		p.in.Skip(1)
		return opened(node, &fencedLeaf{closes: m.Closes, content: indent})
	}
	return start{}
}

func (p *blockParser) matchListItem() start {
	line, ok := p.peekLine()
	if !ok {
		return start{}
	}
	for _, lk := range listKinds {
		m, ok := lk.prefix.Match(line)
		if !ok {
			continue
		}
		node := lmast.NewBlock(lmast.NodeListItem, m.External(p.tab), m.Internal(p.tab))
		node.Block.List = &lmast.ListAttrs{
			Kind:        lk.kind,
			Marker:      strings.TrimSpace(m.Marker),
			LastInGroup: true,
		}
		p.in.Skip(1)
		p.in.Rewind(m.Adapted(p.tab))
		return opened(node, nil)
	}
	return start{}
}

// matchQuote opens a quote or, when the line's markers only restate quotes
// that are already open, strips one marker per open level and lets the
// innermost of them continue with the rewritten line.
func (p *blockParser) matchQuote() start {
	line, ok := p.peekLine()
	if !ok {
		return start{}
	}
	m, ok := marks.QuotePrefix.Match(line)
	if !ok {
		return start{}
	}
	for {
		external := m.External(p.tab)
		prev := lastBlockChild(p.frameFor(external).node)
		if prev == nil || prev.Kind != lmast.NodeQuote || external < prev.Block.External {
			break
		}
		adapted := m.Unquoted()
		nested, ok := marks.QuotePrefix.Match(adapted)
		if !ok {
			p.in.Skip(1)
			return start{kind: continued, line: adapted}
		}
		m = nested
	}
	node := lmast.NewBlock(lmast.NodeQuote, m.External(p.tab), m.Internal(p.tab))
	p.in.Skip(1)
	p.in.Rewind(m.Unquoted())
	return opened(node, nil)
}

func (p *blockParser) matchHTMLBlock() start {
	line, ok := p.peekLine()
	if !ok {
		return start{}
	}
	open, ok := marks.MatchHTMLOpen(line)
	if !ok {
		return start{}
	}
	indent := marks.Columns(open.Indent, p.tab)
	node := lmast.NewBlock(lmast.NodeHTMLBlock, indent, indent)
	node.Block.HTML = &lmast.HTMLBlockAttrs{OpenTag: open.OpenTag, CloseTag: open.CloseTag}
	p.in.Skip(1)
	return opened(node, &fencedLeaf{closes: open.Closes, content: indent})
}

// startParagraph is the fallback for a line no matcher claims. A blank line
// is discarded. It reports false at end of input.
func (p *blockParser) startParagraph() (*frame, bool) {
	line, ok := p.in.Next()
	if !ok {
		return nil, false
	}
	if marks.IsBlank(line) {
		return nil, true
	}
	indent := marks.Indentation(line, p.tab)
	node := lmast.NewBlock(lmast.NodeParagraph, indent, indent)
	node.Block.Raw.Append(strings.TrimLeft(line, " \t"))
	return &frame{node: node, leaf: &paragraphLeaf{content: indent}}, true
}

func lastBlockChild(n *lmast.Node) *lmast.Node {
	if !n.IsContainer() {
		return nil
	}
	return n.LastChild
}

// groupListItem links item to a preceding list item of the same kind so
// they render inside one list tag.
func groupListItem(parent, item *lmast.Node) {
	if item.Kind != lmast.NodeListItem {
		return
	}
	prev := parent.LastChild
	if prev == nil || prev.Kind != lmast.NodeListItem ||
		prev.Block.List.Kind != item.Block.List.Kind ||
		item.Block.External < prev.Block.External {
		return
	}
	item.Block.List.GroupIndex = prev.Block.List.GroupIndex + 1
	prev.Block.List.LastInGroup = false
}
