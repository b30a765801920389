package runner

import (
	"errors"

	"github.com/yaklabco/langmark/pkg/outdiff"
)

// ErrOutputIsSource is returned when a file would be overwritten by its own
// conversion, as when the output extension equals the source extension.
var ErrOutputIsSource = errors.New("output path equals source path")

// ErrOutputCollision is returned for a source whose output path is already
// claimed by another source in the same run, such as a.lm and a.langmark.
var ErrOutputCollision = errors.New("output path claimed by another source")

// Action describes what happened to a file's output.
type Action string

const (
	// ActionWritten means the output was created or replaced.
	ActionWritten Action = "written"

	// ActionUnchanged means the output already held the converted HTML.
	ActionUnchanged Action = "unchanged"

	// ActionPlanned means a dry run converted the file without writing.
	ActionPlanned Action = "planned"

	// ActionFailed means the file could not be converted or written.
	ActionFailed Action = "failed"
)

// FileOutcome records the conversion of one source file.
type FileOutcome struct {
	// Path is the source file.
	Path string

	// Output is the destination path. Empty if it could not be computed.
	Output string

	// Converter names the converter used, such as "langmark".
	Converter string

	// Bytes is the size of the generated HTML.
	Bytes int

	// Action is the effect on Output.
	Action Action

	// Diff is the change to Output. Only set when Options.Diff is on and
	// the output differs.
	Diff *outdiff.Diff

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files converted without error.
	FilesProcessed int

	// FilesWritten is the number of outputs created or replaced.
	FilesWritten int

	// FilesUnchanged is the number of outputs that were already current.
	FilesUnchanged int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// BytesGenerated is the total size of the generated HTML.
	BytesGenerated int

	// ByConverter counts converted files per converter name.
	ByConverter map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each discovered file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{ByConverter: make(map[string]int)}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.BytesGenerated += outcome.Bytes
	r.Stats.ByConverter[outcome.Converter]++

	switch outcome.Action {
	case ActionWritten:
		r.Stats.FilesWritten++
	case ActionUnchanged:
		r.Stats.FilesUnchanged++
	case ActionPlanned, ActionFailed:
	}
}
