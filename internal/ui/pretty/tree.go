package pretty

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/yaklabco/langmark/pkg/lmast"
)

const (
	guideBranch = "├─ "
	guideLast   = "└─ "
	guidePipe   = "│  "
	guideSpace  = "   "
	ellipsis    = "…"

	// minPreview is the narrowest text preview worth printing.
	minPreview = 8
)

// FormatTree draws an outline as an indented tree. Text previews are cut
// so no line is wider than width columns.
func (s *Styles) FormatTree(root *lmast.Outline, width int) string {
	var sb strings.Builder
	s.writeNode(&sb, root, "", "", width)
	return sb.String()
}

func (s *Styles) writeNode(sb *strings.Builder, o *lmast.Outline, prefix, guide string, width int) {
	line := s.Guide.Render(prefix+guide) + s.NodeKind.Render(o.Kind)

	for _, key := range slices.Sorted(maps.Keys(o.Attrs)) {
		if key == "language" {
			continue
		}
		line += " " + s.Attr.Render(key+"="+strconv.Quote(o.Attrs[key]))
	}
	if lang, ok := o.Attrs["language"]; ok {
		line += " " + s.Label.Render("["+lang+"]")
	}

	if o.Text != "" {
		room := width - ansi.PrintableRuneWidth(line) - 1
		if room >= minPreview {
			preview := truncate.StringWithTail(strconv.Quote(o.Text), uint(room), ellipsis) //nolint:gosec // room is positive.
			line += " " + s.Preview.Render(preview)
		}
	}
	sb.WriteString(line)
	sb.WriteString("\n")

	childPrefix := prefix
	switch guide {
	case guideBranch:
		childPrefix += guidePipe
	case guideLast:
		childPrefix += guideSpace
	}
	for i, child := range o.Children {
		g := guideBranch
		if i == len(o.Children)-1 {
			g = guideLast
		}
		s.writeNode(sb, child, childPrefix, g, width)
	}
}
