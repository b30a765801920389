package reporter

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/langmark/internal/ui/pretty"
	"github.com/yaklabco/langmark/pkg/runner"
)

// SummaryReporter writes failures followed by an aggregate block.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) error {
	if result == nil {
		result = &runner.Result{}
	}

	for _, file := range result.Files {
		if file.Error == nil {
			continue
		}
		line := r.styles.FormatOutcome(file, displayPath(r.opts.WorkingDir, file.Path), "")
		if _, err := fmt.Fprint(r.out, line); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	if _, err := fmt.Fprint(r.out, r.styles.FormatSummary(result.Stats)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
