package configloader

import (
	"slices"

	"github.com/yaklabco/langmark/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	if override.Grammar.TabWidth != 0 {
		result.Grammar.TabWidth = override.Grammar.TabWidth
	}
	if override.Grammar.MarkLimit != 0 {
		result.Grammar.MarkLimit = override.Grammar.MarkLimit
	}
	if override.Input.MarkdownFlavor != "" {
		result.Input.MarkdownFlavor = override.Input.MarkdownFlavor
	}
	if override.Output.Extension != "" {
		result.Output.Extension = override.Output.Extension
	}
	if override.Output.Dir != "" {
		result.Output.Dir = override.Output.Dir
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// False is the zero value, so only a true override is visible.
	if override.DryRun {
		result.DryRun = true
	}

	if override.Grammar.Disable != nil {
		result.Grammar.Disable = slices.Clone(override.Grammar.Disable)
	}
	if override.Input.Extensions != nil {
		result.Input.Extensions = slices.Clone(override.Input.Extensions)
	}
	if override.Input.MarkdownExtensions != nil {
		result.Input.MarkdownExtensions = slices.Clone(override.Input.MarkdownExtensions)
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	return result
}

// MergeAll folds configs left to right with merge, so later entries win.
// It returns nil for no input and never aliases its arguments.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}
	out := configs[0].Clone()
	for _, next := range configs[1:] {
		out = merge(out, next)
	}
	return out
}

// normalize rewrites extensions to their canonical lowercase dotted form.
func normalize(cfg *config.Config) {
	normalizeAll := func(exts []string) []string {
		if exts == nil {
			return nil
		}
		out := make([]string, 0, len(exts))
		for _, ext := range exts {
			out = append(out, config.NormalizeExtension(ext))
		}
		return out
	}

	cfg.Input.Extensions = normalizeAll(cfg.Input.Extensions)
	cfg.Input.MarkdownExtensions = normalizeAll(cfg.Input.MarkdownExtensions)
	cfg.Output.Extension = config.NormalizeExtension(cfg.Output.Extension)
}
