package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/langmark/internal/ui/pretty"
	"github.com/yaklabco/langmark/pkg/runner"
)

// TextReporter writes one line per file followed by a one-line summary.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	for _, file := range result.Files {
		if ctx.Err() != nil {
			return fmt.Errorf("report cancelled: %w", ctx.Err())
		}
		// Unchanged outputs are noise unless asked for.
		if file.Action == runner.ActionUnchanged && !r.opts.Verbose {
			continue
		}
		out := displayPath(r.opts.WorkingDir, file.Output)
		fmt.Fprint(r.bw, r.styles.FormatOutcome(file, displayPath(r.opts.WorkingDir, file.Path), out))
		if file.Diff != nil {
			fmt.Fprint(r.bw, r.styles.FormatDiff(file.Diff, out))
		}
	}

	fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	return nil
}
