package parser

import "github.com/yaklabco/langmark/pkg/marks"

// paragraphLeaf gathers lines until a blank line, a dedent or the start of
// another block.
type paragraphLeaf struct {
	content int
}

func (l *paragraphLeaf) next(p *blockParser, f *frame) step {
	s := p.findStart()
	switch s.kind {
	case started:
		return step{kind: stepStart, start: s.frame}
	case continued:
		p.in.Rewind(s.line)
		return step{}
	case noStart, consumed:
	}

	line, ok := p.in.Next()
	if !ok {
		return step{kind: stepEOF}
	}
	if marks.IsBlank(line) {
		return step{kind: stepEndConsumed}
	}
	indent := marks.Indentation(line, p.tab)
	if indent < l.content {
		return step{kind: stepEndNotConsumed, lines: []string{line}}
	}
	f.node.Block.Raw.Append(marks.StripColumns(line, min(indent, l.content+1), p.tab))
	return step{}
}

// headingLeaf holds a title collected by the matcher.
type headingLeaf struct{}

func (headingLeaf) next(*blockParser, *frame) step {
	return step{kind: stepEndConsumed}
}

// fencedLeaf takes every line verbatim until its closing line.
type fencedLeaf struct {
	closes  func(line string) bool
	content int
}

func (l *fencedLeaf) next(p *blockParser, f *frame) step {
	line, ok := p.in.Next()
	if !ok {
		return step{kind: stepEOF}
	}
	stripped := marks.StripColumns(p.unquote(line), l.content, p.tab)
	if l.closes(stripped) {
		return step{kind: stepEndConsumed}
	}
	f.node.Block.Raw.Append(stripped)
	return step{}
}

// indentedLeaf takes lines indented at least to its content column. Blank
// lines are held back until a content line follows, so trailing blanks
// are not part of the block.
type indentedLeaf struct {
	content int
	blanks  []string
}

func (l *indentedLeaf) next(p *blockParser, f *frame) step {
	line, ok := p.in.Next()
	if !ok {
		return step{kind: stepEOF}
	}
	unquoted := p.unquote(line)
	if marks.IsBlank(unquoted) {
		l.blanks = append(l.blanks, line)
		return step{}
	}
	if marks.Indentation(unquoted, p.tab) < l.content {
		lines := append(l.blanks, line)
		l.blanks = nil
		return step{kind: stepEndNotConsumed, lines: lines}
	}
	for range l.blanks {
		f.node.Block.Raw.Append("\n")
	}
	l.blanks = nil
	f.node.Block.Raw.Append(marks.StripColumns(unquoted, l.content, p.tab))
	return step{}
}
