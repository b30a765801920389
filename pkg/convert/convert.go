// Package convert turns source files into HTML. A Set maps file extensions
// to converters so one build can mix langmark and markdown sources.
package convert

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/langmark/pkg/config"
	"github.com/yaklabco/langmark/pkg/grammar"
	"github.com/yaklabco/langmark/pkg/parser"
)

// ErrExtensionConflict is returned when two converters claim one extension.
var ErrExtensionConflict = errors.New("extension claimed by two converters")

// Converter renders one source document as HTML.
type Converter interface {
	// Name identifies the source language, such as "langmark".
	Name() string

	// Convert returns the HTML for src. Output ends with a newline unless
	// it is empty.
	Convert(ctx context.Context, src []byte) ([]byte, error)
}

// Set holds converters keyed by lowercase file extension.
type Set struct {
	byExt map[string]Converter
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{byExt: make(map[string]Converter)}
}

// Register maps each extension to c. It fails if another converter already
// owns one of them.
func (s *Set) Register(c Converter, exts ...string) error {
	for _, ext := range exts {
		ext = config.NormalizeExtension(ext)
		if ext == "" {
			continue
		}
		if owner, ok := s.byExt[ext]; ok && owner != c {
			return fmt.Errorf("%w: %s (%s and %s)", ErrExtensionConflict, ext, owner.Name(), c.Name())
		}
		s.byExt[ext] = c
	}
	return nil
}

// Lookup returns the converter for path's extension.
//
//nolint:ireturn // Converter is the package's extension point.
func (s *Set) Lookup(path string) (Converter, bool) {
	c, ok := s.byExt[strings.ToLower(filepath.Ext(path))]
	return c, ok
}

// Extensions returns the registered extensions in sorted order.
func (s *Set) Extensions() []string {
	exts := make([]string, 0, len(s.byExt))
	for ext := range s.byExt {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Grammar builds the langmark grammar described by cfg.
func Grammar(cfg config.GrammarConfig) (*grammar.Grammar, error) {
	g, err := grammar.New(
		grammar.WithTabWidth(cfg.TabWidth),
		grammar.WithMarkLimit(cfg.MarkLimit),
		grammar.Without(cfg.Disable...),
	)
	if err != nil {
		return nil, fmt.Errorf("build grammar: %w", err)
	}
	return g, nil
}

// FromConfig builds the set for a configuration: langmark for the input
// extensions and markdown for the markdown extensions.
func FromConfig(cfg *config.Config, logger *log.Logger) (*Set, error) {
	g, err := Grammar(cfg.Grammar)
	if err != nil {
		return nil, err
	}

	set := NewSet()
	lm := NewLangmark(parser.New(parser.WithGrammar(g), parser.WithLogger(logger)))
	if err := set.Register(lm, cfg.Input.Extensions...); err != nil {
		return nil, err
	}
	if len(cfg.Input.MarkdownExtensions) > 0 {
		md := NewMarkdown(cfg.Input.MarkdownFlavor)
		if err := set.Register(md, cfg.Input.MarkdownExtensions...); err != nil {
			return nil, err
		}
	}

	if logger != nil {
		logger.Debug("converters ready", "extensions", set.Extensions())
	}
	return set, nil
}
