package lmast

import (
	"strconv"
	"strings"
)

// Outline is a serializable view of a subtree, used by tree dumps.
type Outline struct {
	Kind     string            `json:"kind"               yaml:"kind"`
	Attrs    map[string]string `json:"attrs,omitempty"    yaml:"attrs,omitempty"`
	Text     string            `json:"text,omitempty"     yaml:"text,omitempty"`
	Children []*Outline        `json:"children,omitempty" yaml:"children,omitempty"`

	// Node is the node the entry describes.
	Node *Node `json:"-" yaml:"-"`
}

// NewOutline describes n and its descendants. Inline children are included
// only when inlines is set; otherwise leaf blocks carry their plain text.
func NewOutline(n *Node, inlines bool) *Outline {
	o := &Outline{Kind: strings.ToLower(n.Kind.String()), Node: n}
	o.Attrs = attrsOf(n)

	switch {
	case n.IsInline():
		o.Text = n.Inline.Text
	case n.Kind == NodeCodeBlock && n.Block.Code.Kind != CodeFormattable:
		o.Text = n.Block.Raw.String()
	case !n.IsContainer() && !inlines:
		o.Text = PlainText(n)
	}

	if n.IsContainer() || inlines {
		for child := n.FirstChild; child != nil; child = child.Next {
			o.Children = append(o.Children, NewOutline(child, inlines))
		}
	}
	return o
}

// SetAttr records an extra attribute, such as a detected language.
func (o *Outline) SetAttr(key, value string) {
	if o.Attrs == nil {
		o.Attrs = make(map[string]string)
	}
	o.Attrs[key] = value
}

// Entry returns the entry that describes n, or nil when n is not below
// o's node or the outline left it out.
func (o *Outline) Entry(n *Node) *Outline {
	path := make([]*Node, 0, Depth(n)+1)
	for cur := n; cur != o.Node; cur = cur.Parent {
		if cur == nil {
			return nil
		}
		path = append(path, cur)
	}

	entry := o
	for i := len(path) - 1; i >= 0 && entry != nil; i-- {
		entry = entry.child(path[i])
	}
	return entry
}

func (o *Outline) child(n *Node) *Outline {
	for _, c := range o.Children {
		if c.Node == n {
			return c
		}
	}
	return nil
}

func attrsOf(n *Node) map[string]string {
	attrs := make(map[string]string)
	if b := n.Block; b != nil && n.Kind != NodeDocument {
		attrs["external"] = strconv.Itoa(b.External)
		attrs["internal"] = strconv.Itoa(b.Internal)
		if b.Heading != nil {
			attrs["level"] = strconv.Itoa(b.Heading.Level)
		}
		if b.List != nil {
			attrs["list"] = b.List.Kind.String()
			attrs["marker"] = b.List.Marker
			attrs["index"] = strconv.Itoa(b.List.GroupIndex)
		}
		if b.Code != nil {
			attrs["code"] = b.Code.Kind.String()
			if b.Code.Fence != "" {
				attrs["fence"] = b.Code.Fence
			}
		}
		if b.HTML != nil {
			attrs["tag"] = b.HTML.OpenTag
		}
	}
	if in := n.Inline; in != nil {
		if in.StartMark != "" {
			attrs["mark"] = in.StartMark
		}
		if in.Spaced {
			attrs["spaced"] = "true"
		}
	}
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}
