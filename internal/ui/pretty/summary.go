package pretty

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/langmark/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatOutcome formats one build outcome as a single line. src and out are
// the paths to show, usually relative to the working directory.
// Example: "written   docs/guide.lm -> docs/guide.html".
func (s *Styles) FormatOutcome(outcome runner.FileOutcome, src, out string) string {
	if outcome.Error != nil {
		return fmt.Sprintf("%s %s: %s\n",
			s.Error.Render(fmt.Sprintf("%-9s", runner.ActionFailed)), s.FilePath.Render(src), outcome.Error)
	}

	var action string
	switch outcome.Action {
	case runner.ActionWritten:
		action = s.Written.Render(fmt.Sprintf("%-9s", outcome.Action))
	case runner.ActionPlanned:
		action = s.Planned.Render(fmt.Sprintf("%-9s", outcome.Action))
	default:
		action = s.Unchanged.Render(fmt.Sprintf("%-9s", outcome.Action))
	}
	return fmt.Sprintf("%s %s %s %s\n", action, s.FilePath.Render(src), s.Arrow.Render("->"), out)
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Converted 12 files: 3 written, 9 unchanged".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No source files found") + "\n"
	}

	parts := []string{fmt.Sprintf("%d written", stats.FilesWritten)}
	if stats.FilesUnchanged > 0 {
		parts = append(parts, fmt.Sprintf("%d unchanged", stats.FilesUnchanged))
	}
	if planned := stats.FilesProcessed - stats.FilesWritten - stats.FilesUnchanged; planned > 0 {
		parts = append(parts, s.Planned.Render(fmt.Sprintf("%d planned", planned)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	head := fmt.Sprintf("Converted %d %s", stats.FilesProcessed, plural(stats.FilesProcessed))
	if stats.FilesErrored > 0 {
		head = s.Failure.Render(head)
	} else {
		head = s.Success.Render(head)
	}
	return head + ": " + strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label string, value int) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label+":", s.SummaryValue.Render(strconv.Itoa(value)))
	}

	row("Files discovered", stats.FilesDiscovered)
	row("Files converted", stats.FilesProcessed)
	if stats.FilesWritten > 0 {
		fmt.Fprintf(&builder, "  %-19s%s\n", "Files written:", s.Success.Render(strconv.Itoa(stats.FilesWritten)))
	}
	if stats.FilesUnchanged > 0 {
		row("Files unchanged", stats.FilesUnchanged)
	}
	if stats.FilesErrored > 0 {
		fmt.Fprintf(&builder, "  %-19s%s\n", "Files failed:", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	row("Bytes generated", stats.BytesGenerated)

	if len(stats.ByConverter) > 0 {
		builder.WriteString("\n")
		for _, name := range slices.Sorted(maps.Keys(stats.ByConverter)) {
			row("  "+name, stats.ByConverter[name])
		}
	}

	builder.WriteString("\n")
	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Build failed"))
	} else {
		builder.WriteString(s.Success.Render("Build succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
