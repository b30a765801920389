package lmast

// NewNode creates a detached node of the specified kind. Block kinds get an
// empty BlockAttrs, inline kinds an empty InlineAttrs.
func NewNode(kind NodeKind) *Node {
	n := &Node{Kind: kind}
	if n.IsBlock() {
		n.Block = &BlockAttrs{}
	} else {
		n.Inline = &InlineAttrs{}
	}
	return n
}

// NewBlock creates a block node with the given indentation.
func NewBlock(kind NodeKind, external, internal int) *Node {
	n := NewNode(kind)
	n.Block.External = external
	n.Block.Internal = internal
	return n
}

// NewText creates a text node.
func NewText(text string) *Node {
	n := NewNode(NodeText)
	n.Inline.Text = text
	return n
}

// AppendChild makes child the last child of parent, detaching it from any
// previous parent first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	detach(child)
	link(parent, child, parent.LastChild, nil)
}

// AppendText appends text to parent, extending a trailing text node instead
// of adding a new one.
func AppendText(parent *Node, text string) {
	if parent == nil || text == "" {
		return
	}
	if last := parent.LastChild; last != nil && last.Kind == NodeText {
		last.Inline.Text += text
		return
	}
	AppendChild(parent, NewText(text))
}

// RemoveChild detaches child when its parent is parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}
	detach(child)
}

// link splices n into parent between prev and next, which are adjacent
// children of parent or nil at either end.
func link(parent, n, prev, next *Node) {
	n.Parent, n.Prev, n.Next = parent, prev, next
	if prev == nil {
		parent.FirstChild = n
	} else {
		prev.Next = n
	}
	if next == nil {
		parent.LastChild = n
	} else {
		next.Prev = n
	}
}

// detach unlinks n from its parent and siblings. Detached nodes are left
// alone.
func detach(n *Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	if n.Prev == nil {
		parent.FirstChild = n.Next
	} else {
		n.Prev.Next = n.Next
	}
	if n.Next == nil {
		parent.LastChild = n.Prev
	} else {
		n.Next.Prev = n.Prev
	}
	n.Parent, n.Prev, n.Next = nil, nil, nil
}
