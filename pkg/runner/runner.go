package runner

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/langmark/pkg/convert"
	"github.com/yaklabco/langmark/pkg/fsutil"
	"github.com/yaklabco/langmark/pkg/outdiff"
)

// Runner converts discovered files with a set of converters.
type Runner struct {
	// Converters selects a converter by file extension.
	Converters *convert.Set

	// Logger receives per-file debug records.
	Logger *log.Logger
}

// New creates a Runner. A nil logger discards output.
func New(converters *convert.Set, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Converters: converters, Logger: logger}
}

// Run discovers files under opts.Paths and converts them concurrently.
// Outcomes are returned in path order regardless of completion order. A
// file that fails is recorded in its outcome and does not stop the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if len(opts.Extensions) == 0 {
		opts.Extensions = r.Converters.Extensions()
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	r.Logger.Debug("files discovered", "count", len(files), "dry_run", opts.DryRun)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	// Each task owns one slot, so outcomes keep discovery order.
	outcomes := make([]FileOutcome, len(files))
	finished := make([]bool, len(files))

	// The first source in discovery order owns an output path; later
	// sources that map to it fail without converting.
	for i, collision := range claimOutputs(files, opts) {
		if collision != nil {
			outcomes[i] = *collision
			finished[i] = true
			r.logOutcome(outcomes[i])
		}
	}

	var group errgroup.Group
	group.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		if finished[i] {
			continue
		}
		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			outcomes[i] = r.convertFile(ctx, path, opts)
			finished[i] = true
			r.logOutcome(outcomes[i])
			return nil
		})
	}
	// Tasks never fail; per-file errors live in the outcome.
	_ = group.Wait()

	for i, outcome := range outcomes {
		if finished[i] {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

// claimOutputs returns, per file, a failed outcome when an earlier file
// already writes the same output, or nil. Files whose output cannot be
// computed are left for convertFile to report.
func claimOutputs(files []string, opts Options) []*FileOutcome {
	owners := make(map[string]string, len(files))
	collisions := make([]*FileOutcome, len(files))
	for i, path := range files {
		out, err := opts.OutputPath(opts.WorkingDir, path)
		if err != nil {
			continue
		}
		key := filepath.Clean(out)
		if owner, ok := owners[key]; ok {
			collisions[i] = &FileOutcome{
				Path:   path,
				Output: out,
				Action: ActionFailed,
				Error:  fmt.Errorf("%w: %s is also written from %s", ErrOutputCollision, out, owner),
			}
			continue
		}
		owners[key] = path
	}
	return collisions
}

func (r *Runner) logOutcome(outcome FileOutcome) {
	if outcome.Error != nil {
		r.Logger.Debug("file failed", "path", outcome.Path, "error", outcome.Error)
		return
	}
	r.Logger.Debug("file converted",
		"path", outcome.Path,
		"output", outcome.Output,
		"converter", outcome.Converter,
		"action", outcome.Action,
	)
}

// convertFile reads, converts and writes one file.
func (r *Runner) convertFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path, Action: ActionFailed}

	conv, ok := r.Converters.Lookup(path)
	if !ok {
		outcome.Error = fmt.Errorf("%s: no converter for extension", path)
		return outcome
	}
	outcome.Converter = conv.Name()

	out, err := opts.OutputPath(opts.WorkingDir, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Output = out

	src, err := fsutil.ReadSource(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	html, err := conv.Convert(ctx, src)
	if err != nil {
		outcome.Error = fmt.Errorf("convert %s: %w", path, err)
		return outcome
	}
	outcome.Bytes = len(html)

	if opts.DryRun {
		outcome.Action = ActionPlanned
		if opts.Diff {
			// An unreadable output diffs as empty; a real build reports it.
			previous, _ := fsutil.ReadOutput(ctx, out)
			outcome.Diff = outdiff.Compute(out, previous, html)
		}
		return outcome
	}

	previous, written, err := fsutil.UpdateOutput(ctx, out, html)
	if err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", out, err)
		return outcome
	}
	if opts.Diff {
		outcome.Diff = outdiff.Compute(out, previous, html)
	}
	if written {
		outcome.Action = ActionWritten
	} else {
		outcome.Action = ActionUnchanged
	}
	return outcome
}
