package lmast

import "strings"

// Walk calls visit for root and every descendant in document order. A
// non-nil error from visit ends the walk and is returned.
func Walk(root *Node, visit func(*Node) error) error {
	if root == nil {
		return nil
	}
	if err := visit(root); err != nil {
		return err
	}
	for child := root.FirstChild; child != nil; child = child.Next {
		if err := Walk(child, visit); err != nil {
			return err
		}
	}
	return nil
}

// FindAll returns the nodes under root, root included, for which match
// holds, in document order.
func FindAll(root *Node, match func(*Node) bool) []*Node {
	var found []*Node
	_ = Walk(root, func(n *Node) error {
		if match(n) {
			found = append(found, n)
		}
		return nil
	})
	return found
}

// FindByKind returns the nodes of one kind under root.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}

// Depth counts the ancestors of n.
func Depth(n *Node) int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// PlainText returns the source-equivalent text of the children of n: text
// content with escapes resolved and nested delimiters kept as written.
func PlainText(n *Node) string {
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.Next {
		writePlain(&sb, child)
	}
	return sb.String()
}

func writePlain(sb *strings.Builder, n *Node) {
	if n.Inline != nil {
		sb.WriteString(n.Inline.StartMark)
		sb.WriteString(n.Inline.Text)
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		writePlain(sb, child)
	}
	if n.Inline != nil {
		sb.WriteString(n.Inline.EndMark)
	}
}
