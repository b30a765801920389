// Package parser builds a langmark document tree from source text.
//
// Parsing happens in two passes over each block. The block pass reads the
// input line by line and decides which block each line belongs to, opening
// and closing blocks as indentation and line marks dictate. When a leaf
// block is finished its text goes through the inline pass, which finds
// emphasis, links, code spans and other inline elements.
//
// A Parser holds no per-document state and may be used concurrently.
package parser

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/langmark/pkg/grammar"
	"github.com/yaklabco/langmark/pkg/header"
	"github.com/yaklabco/langmark/pkg/lmast"
)

// Parser converts langmark source into a Document.
type Parser struct {
	grammar *grammar.Grammar
	logger  *log.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithGrammar sets the grammar. The default grammar is used otherwise.
func WithGrammar(g *grammar.Grammar) Option {
	return func(p *Parser) { p.grammar = g }
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *log.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// New creates a parser.
func New(opts ...Option) *Parser {
	p := &Parser{grammar: grammar.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = log.New(io.Discard)
	}
	return p
}

// Grammar returns the grammar the parser recognizes.
func (p *Parser) Grammar() *grammar.Grammar {
	return p.grammar
}

// Parse reads a document from r.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*lmast.Document, error) {
	src := NewReaderSource(r)
	doc, err := p.ParseLines(ctx, src)
	if err != nil {
		return nil, err
	}
	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return doc, nil
}

// ParseString parses a document held in memory.
func (p *Parser) ParseString(ctx context.Context, text string) (*lmast.Document, error) {
	return p.ParseLines(ctx, NewStringSource(text))
}

// ParseLines parses the lines delivered by src. A leading header is read
// into Document.Header; the rest forms the document tree.
func (p *Parser) ParseLines(ctx context.Context, src LineSource) (*lmast.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	doc := lmast.NewDocument()
	in := NewStream(src)

	doc.Header = header.Read(in)
	// Constructs that need a blank line above them may open the document.
	in.Rewind("\n")

	newBlockParser(p.grammar, in, doc, p.logger).run()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	p.logger.Debug("document parsed",
		"blocks", doc.Root.ChildCount(),
		"header", doc.Header.Len(),
		"links", doc.Links.Len(),
	)
	return doc, nil
}
