// Package lmast defines the langmark document tree.
package lmast

//go:generate stringer -type=NodeKind -trimprefix=Node

// NodeKind classifies the type of a tree node.
type NodeKind uint16

// Node kinds for block-level and inline-level langmark elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeListItem
	NodeCodeBlock
	NodeQuote
	NodeHTMLBlock
	NodeIndented

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeSuperscript
	NodeSubscript
	NodeSmall
	NodeStrikethrough
	NodeCodeSpan
	NodeRawSpan
	NodeLink
	NodeLinkParam
	NodeLineBreak
	NodeHTMLInline
)

// Node is a single element of the document tree. Children are owned through
// the FirstChild/Next chain; Parent is a back-reference only.
type Node struct {
	Kind NodeKind

	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	return n.Kind <= NodeIndented
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	return n.Kind >= NodeText
}

// IsContainer reports whether the node holds block children.
func (n *Node) IsContainer() bool {
	switch n.Kind {
	case NodeDocument, NodeListItem, NodeQuote, NodeIndented:
		return true
	default:
		return false
	}
}

// HasChildren reports whether n has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

