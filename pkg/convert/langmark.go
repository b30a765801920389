package convert

import (
	"context"
	"fmt"

	"github.com/yaklabco/langmark/pkg/html"
	"github.com/yaklabco/langmark/pkg/lmast"
	"github.com/yaklabco/langmark/pkg/parser"
)

// Langmark converts langmark sources.
type Langmark struct {
	parser *parser.Parser
}

// NewLangmark creates a converter using p. A nil p uses the default grammar.
func NewLangmark(p *parser.Parser) *Langmark {
	if p == nil {
		p = parser.New()
	}
	return &Langmark{parser: p}
}

// Name implements Converter.
func (c *Langmark) Name() string { return "langmark" }

// Parse returns the document tree for src.
func (c *Langmark) Parse(ctx context.Context, src []byte) (*lmast.Document, error) {
	doc, err := c.parser.ParseString(ctx, string(src))
	if err != nil {
		return nil, fmt.Errorf("parse langmark: %w", err)
	}
	return doc, nil
}

// Convert implements Converter.
func (c *Langmark) Convert(ctx context.Context, src []byte) ([]byte, error) {
	doc, err := c.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	out := html.Render(doc)
	if out == "" {
		return nil, nil
	}
	return []byte(out + "\n"), nil
}
