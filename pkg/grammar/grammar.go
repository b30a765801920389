// Package grammar describes which langmark elements a parser recognizes and
// in which order it tries them.
//
// A Grammar is built once with New and is read-only afterwards, so one value
// can be shared by any number of concurrent parses.
package grammar

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/langmark/pkg/lmast"
	"github.com/yaklabco/langmark/pkg/marks"
)

// ErrConflict reports a contradictory grammar.
var ErrConflict = errors.New("grammar conflict")

// DefaultMarkLimit caps the run length of escapable inline marks.
const DefaultMarkLimit = 3

// BlockKind identifies a family of block elements.
type BlockKind uint8

const (
	BlockHeadings BlockKind = iota
	BlockLinkDefinitions
	BlockIndented
	BlockFences
	BlockLists
	BlockQuotes
	BlockHTML
)

//nolint:gochecknoglobals // Read-only lookup table.
var blockNames = map[BlockKind]string{
	BlockHeadings:        "headings",
	BlockLinkDefinitions: "link-definitions",
	BlockIndented:        "indented",
	BlockFences:          "fences",
	BlockLists:           "lists",
	BlockQuotes:          "quotes",
	BlockHTML:            "html-blocks",
}

func (k BlockKind) String() string {
	if name, ok := blockNames[k]; ok {
		return name
	}
	return fmt.Sprintf("BlockKind(%d)", k)
}

// DefaultBlocks is the standard priority order. Indented blocks follow link
// definitions and precede the fence, list, quote and HTML factories, whose
// elements may themselves sit inside an indented block.
//
//nolint:gochecknoglobals // Read-only default.
var DefaultBlocks = []BlockKind{
	BlockHeadings,
	BlockLinkDefinitions,
	BlockIndented,
	BlockFences,
	BlockLists,
	BlockQuotes,
	BlockHTML,
}

// IndentedSlot is what a line indented past its container's content starts.
type IndentedSlot uint8

const (
	IndentNone IndentedSlot = iota
	IndentFormattableCode
	IndentPlainCode
	IndentContainer
)

// Content is how an inline element treats the text between its marks.
type Content uint8

const (
	// ContentInline is parsed for nested inline elements.
	ContentInline Content = iota
	// ContentParams is split into parameters, each parsed for inline elements.
	ContentParams
	// ContentText is escaped text.
	ContentText
	// ContentRaw is emitted verbatim.
	ContentRaw
	// ContentNone marks a self-closing element.
	ContentNone
)

// Inline describes one inline element kind.
type Inline struct {
	Name    string
	Node    lmast.NodeKind
	Tag     string
	Content Content
	Mark    marks.InlineMark
	Self    marks.SelfClosing
}

// Escapable reports whether the escape character works inside the element.
func (k Inline) Escapable() bool {
	return k.Content == ContentInline || k.Content == ContentParams
}

// Triggers returns the characters that can start the element.
func (k Inline) Triggers() []byte {
	if k.Self != nil {
		return k.Self.Trigger()
	}
	return []byte{k.Mark.Start}
}

// DefaultInlines returns the standard inline element kinds with the given
// run limit for escapable marks.
func DefaultInlines(limit int) []Inline {
	delimited := func(name string, node lmast.NodeKind, tag string, c byte) Inline {
		return Inline{
			Name: name, Node: node, Tag: tag, Content: ContentInline,
			Mark: marks.InlineMark{Start: c, End: c, MaxRun: limit},
		}
	}
	return []Inline{
		delimited("emphasis", lmast.NodeEmphasis, "em", '_'),
		delimited("strong", lmast.NodeStrong, "strong", '*'),
		delimited("superscript", lmast.NodeSuperscript, "sup", '^'),
		delimited("subscript", lmast.NodeSubscript, "sub", ';'),
		delimited("small", lmast.NodeSmall, "small", ':'),
		delimited("strikethrough", lmast.NodeStrikethrough, "del", '~'),
		delimited("code", lmast.NodeCodeSpan, "code", '|'),
		{
			Name: "plain-code", Node: lmast.NodeCodeSpan, Tag: "code", Content: ContentText,
			Mark: marks.InlineMark{Start: '#', End: '#'},
		},
		{
			Name: "raw-text", Node: lmast.NodeRawSpan, Tag: "span", Content: ContentRaw,
			Mark: marks.InlineMark{Start: '\\', End: '\\'},
		},
		{
			Name: "link", Node: lmast.NodeLink, Tag: "a", Content: ContentParams,
			Mark: marks.InlineMark{Start: '[', End: ']', MaxRun: limit},
		},
		{Name: "line-break", Node: lmast.NodeLineBreak, Tag: "br", Content: ContentNone, Self: marks.LineBreak{}},
		{Name: "html-inline", Node: lmast.NodeHTMLInline, Content: ContentNone, Self: marks.HTMLTag{}},
	}
}

// Grammar is an immutable parser configuration.
type Grammar struct {
	tabWidth  int
	markLimit int
	blocks    []BlockKind
	indented  []IndentedSlot
	inlines   []Inline

	// competitors[i] lists the inline kinds that may start while kind i is
	// open; the last entry is for the document level.
	competitors [][]int
}

// Option configures a Grammar under construction.
type Option func(*builder)

type builder struct {
	tabWidth  int
	markLimit int
	blocks    []BlockKind
	inlines   []Inline
	disabled  []string
}

// WithTabWidth sets the distance between tab stops.
func WithTabWidth(width int) Option {
	return func(b *builder) { b.tabWidth = width }
}

// WithMarkLimit sets the longest run of an escapable inline mark.
func WithMarkLimit(limit int) Option {
	return func(b *builder) { b.markLimit = limit }
}

// WithBlocks replaces the block priority order.
func WithBlocks(kinds ...BlockKind) Option {
	return func(b *builder) { b.blocks = kinds }
}

// WithInlines replaces the inline kinds.
func WithInlines(kinds ...Inline) Option {
	return func(b *builder) { b.inlines = kinds }
}

// Without drops elements by name: a block family name or an inline name.
func Without(names ...string) Option {
	return func(b *builder) { b.disabled = append(b.disabled, names...) }
}

// Names returns every element name accepted by Without.
func Names() []string {
	names := make([]string, 0, len(blockNames)+12)
	for _, kind := range DefaultBlocks {
		names = append(names, kind.String())
	}
	for _, kind := range DefaultInlines(DefaultMarkLimit) {
		names = append(names, kind.Name)
	}
	return names
}

// New builds a grammar. It fails with ErrConflict when two block entries
// share a kind, two inline kinds share a start character, an inline kind
// starts with the escape character, or a limit is out of range.
func New(opts ...Option) (*Grammar, error) {
	b := &builder{tabWidth: marks.DefaultTabWidth, markLimit: DefaultMarkLimit}
	for _, opt := range opts {
		opt(b)
	}
	if b.tabWidth < 1 {
		return nil, fmt.Errorf("%w: tab width %d must be positive", ErrConflict, b.tabWidth)
	}
	if b.markLimit < 1 {
		return nil, fmt.Errorf("%w: mark limit %d must be positive", ErrConflict, b.markLimit)
	}
	if b.blocks == nil {
		b.blocks = DefaultBlocks
	}
	if b.inlines == nil {
		b.inlines = DefaultInlines(b.markLimit)
	}
	if err := checkNames(b.disabled, b.inlines); err != nil {
		return nil, err
	}

	g := &Grammar{
		tabWidth:  b.tabWidth,
		markLimit: b.markLimit,
		indented:  []IndentedSlot{IndentNone, IndentFormattableCode, IndentPlainCode, IndentContainer},
	}

	seenBlocks := make(map[BlockKind]bool)
	for _, kind := range b.blocks {
		if seenBlocks[kind] {
			return nil, fmt.Errorf("%w: block kind %s installed twice", ErrConflict, kind)
		}
		seenBlocks[kind] = true
		if !slices.Contains(b.disabled, kind.String()) {
			g.blocks = append(g.blocks, kind)
		}
	}

	owners := make(map[byte]string)
	for _, kind := range b.inlines {
		if slices.Contains(b.disabled, kind.Name) {
			continue
		}
		if kind.Self == nil && kind.Mark.Start == marks.Escape {
			return nil, fmt.Errorf("%w: %s starts with the escape character", ErrConflict, kind.Name)
		}
		if kind.Self == nil {
			if owner, ok := owners[kind.Mark.Start]; ok {
				return nil, fmt.Errorf("%w: %s and %s both start with %q",
					ErrConflict, owner, kind.Name, kind.Mark.Start)
			}
			owners[kind.Mark.Start] = kind.Name
		}
		g.inlines = append(g.inlines, kind)
	}

	g.competitors = make([][]int, len(g.inlines)+1)
	for i := range g.inlines {
		for j := range g.inlines {
			if i != j {
				g.competitors[i] = append(g.competitors[i], j)
			}
		}
	}
	for j := range g.inlines {
		g.competitors[len(g.inlines)] = append(g.competitors[len(g.inlines)], j)
	}

	return g, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Grammar {
	g, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return g
}

//nolint:gochecknoglobals // Built once, read-only.
var defaultGrammar = MustNew()

// Default returns the standard grammar.
func Default() *Grammar {
	return defaultGrammar
}

func checkNames(names []string, inlines []Inline) error {
	known := Names()
	for _, kind := range inlines {
		known = append(known, kind.Name)
	}
	var unknown []string
	for _, name := range names {
		if !slices.Contains(known, name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: unknown element %s", ErrConflict, strings.Join(unknown, ", "))
	}
	return nil
}

// TabWidth returns the distance between tab stops.
func (g *Grammar) TabWidth() int { return g.tabWidth }

// MarkLimit returns the longest run of an escapable inline mark.
func (g *Grammar) MarkLimit() int { return g.markLimit }

// Blocks returns the block kinds in priority order.
func (g *Grammar) Blocks() []BlockKind { return slices.Clone(g.blocks) }

// Indented returns what a line indented diff columns past its container's
// content starts, and the indentation step that element consumes.
func (g *Grammar) Indented(diff int) (IndentedSlot, int) {
	if diff < 1 {
		return IndentNone, 0
	}
	step := min(diff, len(g.indented))
	return g.indented[step-1], step
}

// Inlines returns the installed inline kinds.
func (g *Grammar) Inlines() []Inline { return slices.Clone(g.inlines) }

// Inline returns the inline kind with index i.
func (g *Grammar) Inline(i int) Inline { return g.inlines[i] }

// Competitors returns the inline kinds that may start inside kind i. Pass
// -1 for the document level.
func (g *Grammar) Competitors(i int) []int {
	if i < 0 {
		return g.competitors[len(g.inlines)]
	}
	if g.inlines[i].Content == ContentText || g.inlines[i].Content == ContentRaw {
		return nil
	}
	return g.competitors[i]
}
