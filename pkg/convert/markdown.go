package convert

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/yaklabco/langmark/pkg/config"
)

// Markdown converts markdown sources through goldmark.
type Markdown struct {
	flavor config.Flavor
	md     goldmark.Markdown
}

// NewMarkdown creates a markdown converter. Unknown flavors fall back to
// CommonMark.
func NewMarkdown(flavor config.Flavor) *Markdown {
	f := flavorOrDefault(flavor)
	return &Markdown{flavor: f, md: newGoldmarkInstance(f)}
}

// Name implements Converter.
func (c *Markdown) Name() string { return "markdown" }

// Flavor returns the configured markdown flavor.
func (c *Markdown) Flavor() config.Flavor { return c.flavor }

// Convert implements Converter.
func (c *Markdown) Convert(ctx context.Context, src []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("convert cancelled: %w", err)
	}

	var buf bytes.Buffer
	if err := c.md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

func flavorOrDefault(flavor config.Flavor) config.Flavor {
	if flavor.IsValid() {
		return flavor
	}
	return config.FlavorCommonMark
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor config.Flavor) goldmark.Markdown {
	var opts []goldmark.Option

	switch flavor {
	case config.FlavorGFM:
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	case config.FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
}
