package lmast

// ListKind distinguishes the list item flavors.
type ListKind uint8

const (
	ListBullet ListKind = iota
	ListNumbered
	ListLatin
)

func (k ListKind) String() string {
	switch k {
	case ListNumbered:
		return "numbered"
	case ListLatin:
		return "latin"
	default:
		return "bullet"
	}
}

// CodeKind distinguishes how code content is treated.
type CodeKind uint8

const (
	// CodeFormattable content is parsed for inline marks.
	CodeFormattable CodeKind = iota
	// CodePlain content is escaped text.
	CodePlain
	// CodeRaw content is emitted verbatim.
	CodeRaw
)

func (k CodeKind) String() string {
	switch k {
	case CodePlain:
		return "plain"
	case CodeRaw:
		return "raw"
	default:
		return "formattable"
	}
}

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// External is the column where the element visually starts.
	External int
	// Internal is the column where its content starts. Internal >= External.
	Internal int

	// Raw accumulates the text of leaf blocks until they are finalized.
	Raw RawText

	Heading *HeadingAttrs
	List    *ListAttrs
	Code    *CodeAttrs
	HTML    *HTMLBlockAttrs
}

// HeadingAttrs holds heading-specific attributes.
type HeadingAttrs struct {
	Level int // 1-6
}

// ListAttrs holds list item attributes. Consecutive items of the same kind
// form a group rendered inside one list tag.
type ListAttrs struct {
	Kind        ListKind
	Marker      string
	GroupIndex  int
	LastInGroup bool
}

// CodeAttrs holds code block attributes.
type CodeAttrs struct {
	Kind CodeKind
	// Fence is the opening delimiter run; empty for indented blocks.
	Fence string
}

// HTMLBlockAttrs holds the tags wrapping an HTML block.
type HTMLBlockAttrs struct {
	OpenTag  string
	CloseTag string
}

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Text is the content of text, code, raw and HTML nodes.
	Text string

	// Tag is the HTML element name; empty selects the default for the kind.
	Tag string

	// StartMark and EndMark are the literal delimiters as written,
	// including the surrounding space of spaced marks.
	StartMark string
	EndMark   string
	Spaced    bool

	Code CodeKind
}
