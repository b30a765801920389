// Package runner converts many source files concurrently.
package runner

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Options controls a batch conversion.
type Options struct {
	// Paths are the user-specified files or directories to convert.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// to lay out OutDir. If empty, the process working directory is used.
	WorkingDir string

	// Extensions are the source extensions (lowercase, with leading dot).
	// Empty means every extension the runner has a converter for.
	Extensions []string

	// ExcludeGlobs are glob patterns, relative to WorkingDir, used to skip
	// files or whole directories. "**" matches any number of segments.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// OutDir mirrors the source tree under this directory. Empty writes
	// each output next to its source.
	OutDir string

	// OutExt replaces the source extension. Defaults to ".html".
	OutExt string

	// DryRun converts but writes nothing.
	DryRun bool

	// Diff records how each output would change against what is on disk.
	Diff bool
}

// DefaultOutputExtension is used when Options.OutExt is empty.
const DefaultOutputExtension = ".html"

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// OutputPath returns where the conversion of src is written. workDir must
// be absolute. Sources outside workDir keep only their base name under
// OutDir.
func (o Options) OutputPath(workDir, src string) (string, error) {
	ext := o.OutExt
	if ext == "" {
		ext = DefaultOutputExtension
	}
	name := strings.TrimSuffix(src, filepath.Ext(src)) + ext

	var out string
	if o.OutDir == "" {
		out = name
	} else {
		outDir := o.OutDir
		if !filepath.IsAbs(outDir) {
			outDir = filepath.Join(workDir, outDir)
		}
		rel, err := filepath.Rel(workDir, name)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			rel = filepath.Base(name)
		}
		out = filepath.Join(outDir, rel)
	}

	if filepath.Clean(out) == filepath.Clean(src) {
		return "", fmt.Errorf("%w: %s", ErrOutputIsSource, src)
	}
	return out, nil
}
