package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExtensions returns the langmark source extensions.
func DefaultExtensions() []string {
	return []string{".lm", ".langmark"}
}

// Discover finds source files matching opts. It returns a sorted,
// de-duplicated list of absolute paths. Hidden files and directories are
// skipped while walking, as is the output directory.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	w := &walker{
		ctx:     ctx,
		opts:    opts,
		workDir: workDir,
		exts:    make(map[string]bool),
		seen:    make(map[string]bool),
	}
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions()
	}
	for _, ext := range exts {
		w.exts[strings.ToLower(ext)] = true
	}
	if opts.OutDir != "" {
		w.outDir = w.abs(opts.OutDir)
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := w.abs(input)
		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if info.IsDir() {
			if err := w.walk(absPath); err != nil {
				return nil, err
			}
			continue
		}
		// Named files are taken even if hidden.
		if w.matches(absPath) {
			w.add(absPath)
		}
	}

	slices.Sort(w.files)
	return w.files, nil
}

type walker struct {
	ctx     context.Context //nolint:containedctx // Scoped to one Discover call.
	opts    Options
	workDir string
	outDir  string
	exts    map[string]bool
	seen    map[string]bool
	files   []string
}

func (w *walker) abs(p string) string {
	if !filepath.IsAbs(p) {
		p = filepath.Join(w.workDir, p)
	}
	return filepath.Clean(p)
}

func (w *walker) rel(p string) string {
	rel, err := filepath.Rel(w.workDir, p)
	if err != nil {
		return p
	}
	return rel
}

func (w *walker) add(p string) {
	if !w.seen[p] {
		w.seen[p] = true
		w.files = append(w.files, p)
	}
}

func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := p != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (p != root && p == w.outDir) || excluded(w.rel(p), w.opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(p)
			if err != nil {
				// Broken or unreadable link.
				return nil //nolint:nilerr // Skipped, not fatal.
			}
			if info.IsDir() {
				if !w.opts.FollowSymlinks {
					return nil
				}
				// Walk the target so WalkDir's Lstat of the root does not
				// stop at the link itself.
				target, err := filepath.EvalSymlinks(p)
				if err != nil {
					return nil //nolint:nilerr // Skipped, not fatal.
				}
				return w.walk(target)
			}
		}

		if w.matches(p) {
			w.add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// matches reports whether p has a source extension and is not excluded.
func (w *walker) matches(p string) bool {
	if !w.exts[strings.ToLower(filepath.Ext(p))] {
		return false
	}
	return !excluded(w.rel(p), w.opts.ExcludeGlobs)
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func excluded(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if MatchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// MatchGlob matches a slash-separated relative path against a glob. A "**"
// segment matches any number of path segments, including none. A pattern
// without a slash is also tried against the base name, so "*.tmp.lm"
// matches at any depth.
func MatchGlob(relPath, pattern string) bool {
	relPath = filepath.ToSlash(relPath)
	pattern = filepath.ToSlash(pattern)

	if matchSegments(strings.Split(relPath, "/"), strings.Split(pattern, "/")) {
		return true
	}
	if !strings.Contains(pattern, "/") {
		ok, err := path.Match(pattern, path.Base(relPath))
		return err == nil && ok
	}
	return false
}

func matchSegments(names, pattern []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(names); i++ {
				if matchSegments(names[i:], rest) {
					return true
				}
			}
			return false
		}
		if len(names) == 0 {
			return false
		}
		ok, err := path.Match(pattern[0], names[0])
		if err != nil || !ok {
			return false
		}
		names, pattern = names[1:], pattern[1:]
	}
	return len(names) == 0
}
