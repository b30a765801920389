package parser

import (
	"strings"

	"github.com/yaklabco/langmark/pkg/grammar"
	"github.com/yaklabco/langmark/pkg/links"
	"github.com/yaklabco/langmark/pkg/lmast"
	"github.com/yaklabco/langmark/pkg/marks"
)

const rootKind = -1

// inlineParser turns the raw text of a finished block into inline nodes.
type inlineParser struct {
	g     *grammar.Grammar
	links *links.Registry

	// starts maps, per open kind, a trigger byte to the kinds that may start
	// on it. The last entry is for the block level.
	starts []map[byte][]int
}

func newInlineParser(g *grammar.Grammar, registry *links.Registry) *inlineParser {
	inlines := g.Inlines()
	p := &inlineParser{g: g, links: registry, starts: make([]map[byte][]int, len(inlines)+1)}
	for ctx := range p.starts {
		kind := ctx
		if ctx == len(inlines) {
			kind = rootKind
		}
		table := make(map[byte][]int)
		for _, k := range g.Competitors(kind) {
			for _, c := range inlines[k].Triggers() {
				table[c] = append(table[c], k)
			}
		}
		p.starts[ctx] = table
	}
	return p
}

// inlineFrame is an open inline element.
type inlineFrame struct {
	kind int
	node *lmast.Node
	// target receives text and children: the node itself or, for links,
	// the current parameter.
	target    *lmast.Node
	end       marks.EndMark
	param     marks.ParamMark
	escapable bool

	// pos and boundary restore the scan when the element never closes.
	pos      int
	boundary int
}

// scan is the state of one inline parse.
type scan struct {
	p        *inlineParser
	text     string
	stack    []*inlineFrame
	rejected map[int]bool

	i        int
	pending  int
	boundary int
}

// parse appends the inline content of text to block.
func (p *inlineParser) parse(block *lmast.Node, text string) {
	s := &scan{
		p:        p,
		text:     text,
		stack:    []*inlineFrame{{kind: rootKind, node: block, target: block, escapable: true}},
		rejected: make(map[int]bool),
	}
	s.run()
}

func (s *scan) top() *inlineFrame {
	return s.stack[len(s.stack)-1]
}

func (s *scan) run() {
	for {
		for s.i < len(s.text) {
			if !s.step() {
				s.i++
			}
		}
		s.flush(len(s.text))
		if len(s.stack) == 1 {
			return
		}
		s.revert()
	}
}

// flush moves the pending literal text up to end into the current target.
func (s *scan) flush(end int) {
	if end > s.pending {
		lmast.AppendText(s.top().target, s.text[s.pending:end])
	}
	s.pending = end
}

// advance skips n bytes that form a mark event.
func (s *scan) advance(n int) {
	s.i += n
	s.pending = s.i
	s.boundary = s.i
}

// step handles the byte at s.i. It reports false when nothing starts there.
func (s *scan) step() bool {
	top := s.top()
	c := s.text[s.i]

	if top.escapable && c == marks.Escape {
		if char, n, out := marks.MatchEscape(s.text, s.i); out == marks.Matched {
			s.flush(s.i)
			lmast.AppendText(top.target, char)
			s.advance(n)
			return true
		}
	}

	if top.kind != rootKind {
		n, out := top.end.MatchAt(s.text, s.i, s.boundary)
		switch out {
		case marks.Matched:
			s.flush(s.i)
			s.close(s.text[s.i : s.i+n])
			s.advance(n)
			return true
		case marks.Literal:
			s.i += n
			return true
		case marks.NoMatch:
		}
	}

	if top.node.Kind == lmast.NodeLink {
		n, out := top.param.MatchAt(s.text, s.i, s.boundary)
		switch out {
		case marks.Matched:
			s.flush(s.i)
			param := lmast.NewNode(lmast.NodeLinkParam)
			param.Inline.StartMark = s.text[s.i : s.i+n]
			lmast.AppendChild(top.node, param)
			top.target = param
			s.advance(n)
			return true
		case marks.Literal:
			s.i += n
			return true
		case marks.NoMatch:
		}
	}

	ctx := top.kind
	if ctx == rootKind {
		ctx = len(s.p.starts) - 1
	}
	for _, k := range s.p.starts[ctx][c] {
		if s.tryStart(k) {
			return true
		}
	}
	return false
}

// tryStart attempts to open kind k at s.i.
func (s *scan) tryStart(k int) bool {
	kind := s.p.g.Inline(k)
	top := s.top()

	if kind.Self != nil {
		n, out := kind.Self.MatchAt(s.text, s.i)
		if out != marks.Matched {
			return false
		}
		s.flush(s.i)
		node := lmast.NewNode(kind.Node)
		node.Inline.Tag = kind.Tag
		literal := s.text[s.i : s.i+n]
		if kind.Node == lmast.NodeLineBreak {
			node.Inline.StartMark = literal
		} else {
			node.Inline.Text = literal
		}
		lmast.AppendChild(top.target, node)
		s.advance(n)
		return true
	}

	opening, n, out := kind.Mark.MatchStart(s.text, s.i, s.boundary)
	switch {
	case out == marks.NoMatch:
		return false
	case out == marks.Literal || s.rejected[s.i]:
		s.i += n
		return true
	}

	s.flush(s.i)
	node := lmast.NewNode(kind.Node)
	node.Inline.Tag = kind.Tag
	node.Inline.StartMark = s.text[s.i : s.i+n]
	node.Inline.Spaced = opening.Placement == marks.Spaced
	if kind.Content == grammar.ContentText {
		node.Inline.Code = lmast.CodePlain
	}
	lmast.AppendChild(top.target, node)

	f := &inlineFrame{
		kind:      k,
		node:      node,
		target:    node,
		end:       kind.Mark.Closer(opening),
		param:     kind.Mark.Params(opening),
		escapable: kind.Escapable(),
		pos:       s.i,
		boundary:  s.boundary,
	}
	if kind.Content == grammar.ContentParams {
		first := lmast.NewNode(lmast.NodeLinkParam)
		lmast.AppendChild(node, first)
		f.target = first
	}
	s.stack = append(s.stack, f)
	s.advance(n)
	return true
}

// close ends the innermost open element with the given end mark.
func (s *scan) close(endMark string) {
	f := s.top()
	s.stack = s.stack[:len(s.stack)-1]
	f.node.Inline.EndMark = endMark

	switch s.p.g.Inline(f.kind).Content {
	case grammar.ContentText, grammar.ContentRaw:
		var sb strings.Builder
		for f.node.HasChildren() {
			child := f.node.FirstChild
			sb.WriteString(child.Inline.Text)
			lmast.RemoveChild(f.node, child)
		}
		f.node.Inline.Text = sb.String()
	case grammar.ContentParams:
		s.register(f.node)
	case grammar.ContentInline, grammar.ContentNone:
	}
}

// register records the definition carried by a link written with an id, a
// url and optionally a title.
func (s *scan) register(link *lmast.Node) {
	params := link.Children()
	if len(params) < 3 {
		return
	}
	title := ""
	if len(params) > 3 {
		title = lmast.PlainText(params[3])
	}
	s.p.links.Register(lmast.PlainText(params[1]), lmast.PlainText(params[2]), title)
}

// revert drops the innermost element, which never closed, and rescans
// from its start mark with that mark taken as text.
func (s *scan) revert() {
	f := s.top()
	s.stack = s.stack[:len(s.stack)-1]
	lmast.RemoveChild(f.node.Parent, f.node)
	s.rejected[f.pos] = true
	s.i = f.pos
	s.pending = f.pos
	s.boundary = f.boundary
}
