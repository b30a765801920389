package pretty

import (
	"strings"

	"github.com/yaklabco/langmark/pkg/outdiff"
)

// FormatDiff renders d as a git-style unified diff labelled with path.
func (s *Styles) FormatDiff(d *outdiff.Diff, path string) string {
	if d == nil {
		return ""
	}
	path = strings.TrimPrefix(path, "/")

	var sb strings.Builder
	line := func(style func(...string) string, text string) {
		sb.WriteString(style(text))
		sb.WriteByte('\n')
	}

	line(s.DiffHeader.Render, "diff --git a/"+path+" b/"+path)
	line(s.DiffRemove.Render, "--- a/"+path)
	line(s.DiffAdd.Render, "+++ b/"+path)
	for _, h := range d.Hunks {
		line(s.DiffHunk.Render, h.Header())
		for _, l := range h.Lines {
			style := s.DiffContext.Render
			switch l.Kind {
			case outdiff.Added:
				style = s.DiffAdd.Render
			case outdiff.Removed:
				style = s.DiffRemove.Render
			}
			line(style, l.Kind.Prefix()+l.Text)
		}
	}
	return sb.String()
}
