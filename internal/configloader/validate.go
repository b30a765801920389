package configloader

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/langmark/pkg/config"
	"github.com/yaklabco/langmark/pkg/grammar"
)

// Accepted ranges for grammar settings.
const (
	maxTabWidth  = 16
	maxMarkLimit = 8
)

// ValidationError is one invalid setting. File is empty when the value
// came from the environment or flags.
type ValidationError struct {
	File    string
	Field   string // dotted path such as "grammar.tab_width"
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	return msg
}

// Findings collects the problems Validate finds. Errors stop loading,
// warnings are logged.
type Findings struct {
	Errors   []ValidationError
	Warnings []ValidationError
	file     string
}

func (f *Findings) fail(field string, value any, format string, args ...any) {
	f.Errors = append(f.Errors, f.finding(field, value, format, args))
}

func (f *Findings) warn(field string, value any, format string, args ...any) {
	f.Warnings = append(f.Warnings, f.finding(field, value, format, args))
}

func (f *Findings) finding(field string, value any, format string, args []any) ValidationError {
	return ValidationError{File: f.file, Field: field, Value: value, Message: fmt.Sprintf(format, args...)}
}

// Validate checks cfg. file, when set, is attached to every finding.
func Validate(cfg *config.Config, file string) *Findings {
	result := &Findings{file: file}
	if cfg == nil {
		return result
	}

	g := cfg.Grammar
	if g.TabWidth < 1 || g.TabWidth > maxTabWidth {
		result.fail("grammar.tab_width", g.TabWidth, "tab width must be between 1 and %d", maxTabWidth)
	}
	if g.MarkLimit < 1 || g.MarkLimit > maxMarkLimit {
		result.fail("grammar.mark_limit", g.MarkLimit, "mark limit must be between 1 and %d", maxMarkLimit)
	}
	validateElements(cfg, result)

	if flavor := cfg.Input.MarkdownFlavor; flavor != "" && !flavor.IsValid() {
		result.fail("input.markdown_flavor", flavor, "invalid flavor %q; must be one of: commonmark, gfm", flavor)
	}
	validateExtensions(cfg, result)

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, json, summary", cfg.Format)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	validateGlobs(cfg.Ignore, result)

	return result
}

func validateElements(cfg *config.Config, result *Findings) {
	known := grammar.Names()
	seen := make(map[string]bool, len(cfg.Grammar.Disable))
	for i, name := range cfg.Grammar.Disable {
		field := fmt.Sprintf("grammar.disable[%d]", i)
		if !slices.Contains(known, name) {
			result.fail(field, name, "unknown element %q; known elements: %s", name, strings.Join(known, ", "))
			continue
		}
		if seen[name] {
			result.warn(field, name, "element %q is listed more than once", name)
		}
		seen[name] = true
	}
}

func validateExtensions(cfg *config.Config, result *Findings) {
	owner := make(map[string]string)
	check := func(field string, exts []string) {
		for i, ext := range exts {
			f := fmt.Sprintf("%s[%d]", field, i)
			if msg := extensionProblem(ext); msg != "" {
				result.fail(f, ext, "%s", msg)
				continue
			}
			norm := config.NormalizeExtension(ext)
			if prev, ok := owner[norm]; ok && prev != field {
				result.fail(f, ext, "extension %q is also listed in %s", norm, prev)
				continue
			}
			owner[norm] = field
		}
	}

	check("input.extensions", cfg.Input.Extensions)
	check("input.markdown_extensions", cfg.Input.MarkdownExtensions)

	if msg := extensionProblem(cfg.Output.Extension); msg != "" {
		result.fail("output.extension", cfg.Output.Extension, "%s", msg)
	} else if field, ok := owner[config.NormalizeExtension(cfg.Output.Extension)]; ok {
		result.fail("output.extension", cfg.Output.Extension,
			"output extension would overwrite sources listed in %s", field)
	}
}

// extensionProblem describes why ext is not a usable file extension, or
// returns "" when it is.
func extensionProblem(ext string) string {
	norm := config.NormalizeExtension(ext)
	switch {
	case norm == "" || norm == ".":
		return "extension must not be empty"
	case strings.ContainsAny(norm, `/\*?[] `), strings.HasPrefix(norm, ".."):
		return fmt.Sprintf("malformed extension %q", ext)
	default:
		return ""
	}
}

// validateGlobs rejects patterns filepath.Match cannot compile. The
// runner matches ignore patterns with the same syntax.
func validateGlobs(patterns []string, result *Findings) {
	for i, pattern := range patterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}
