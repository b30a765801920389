package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/langmark/pkg/runner"
)

// jsonSchemaVersion identifies the layout of JSONOutput.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path      string `json:"path"`
	Output    string `json:"output,omitempty"`
	Converter string `json:"converter,omitempty"`
	Action    string `json:"action"`
	Bytes     int    `json:"bytes"`
	Error     string `json:"error,omitempty"`
	Diff      string `json:"diff,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int            `json:"filesDiscovered"`
	FilesProcessed  int            `json:"filesProcessed"`
	FilesWritten    int            `json:"filesWritten"`
	FilesUnchanged  int            `json:"filesUnchanged"`
	FilesErrored    int            `json:"filesErrored"`
	BytesGenerated  int            `json:"bytesGenerated"`
	ByConverter     map[string]int `json:"byConverter"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(r.buildOutput(result)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{ByConverter: make(map[string]int)},
	}
	if result == nil {
		return output
	}

	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:      displayPath(r.opts.WorkingDir, file.Path),
			Output:    displayPath(r.opts.WorkingDir, file.Output),
			Converter: file.Converter,
			Action:    string(file.Action),
			Bytes:     file.Bytes,
		}
		if file.Error != nil {
			entry.Error = file.Error.Error()
		}
		if file.Diff != nil {
			diff := *file.Diff
			diff.Path = entry.Output
			entry.Diff = diff.String()
		}
		output.Files = append(output.Files, entry)
	}

	stats := result.Stats
	output.Summary.FilesDiscovered = stats.FilesDiscovered
	output.Summary.FilesProcessed = stats.FilesProcessed
	output.Summary.FilesWritten = stats.FilesWritten
	output.Summary.FilesUnchanged = stats.FilesUnchanged
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.BytesGenerated = stats.BytesGenerated
	for name, n := range stats.ByConverter {
		output.Summary.ByConverter[name] = n
	}
	return output
}
