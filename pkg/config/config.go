// Package config defines core configuration types for langmark.
// These types are pure data structures; loading and merging live in internal/configloader.
package config

import "strings"

// Flavor specifies the Markdown flavor used for markdown inputs.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorCommonMark, FlavorGFM:
		return true
	default:
		return false
	}
}

// OutputFormat specifies how build results are reported.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}

// Defaults for a new configuration.
const (
	DefaultTabWidth        = 4
	DefaultMarkLimit       = 3
	DefaultOutputExtension = ".html"
)

// GrammarConfig tunes the langmark grammar.
type GrammarConfig struct {
	// TabWidth is the distance between tab stops.
	TabWidth int `mapstructure:"tab_width" yaml:"tab_width"`

	// MarkLimit is the longest run of an escapable inline mark.
	MarkLimit int `mapstructure:"mark_limit" yaml:"mark_limit"`

	// Disable lists element names to switch off, such as "headings" or "strong".
	Disable []string `mapstructure:"disable" yaml:"disable"`
}

// InputConfig selects which files are converted and how.
type InputConfig struct {
	// Extensions are the langmark source extensions, with leading dot.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`

	// MarkdownExtensions are converted through the markdown renderer.
	MarkdownExtensions []string `mapstructure:"markdown_extensions" yaml:"markdown_extensions"`

	// MarkdownFlavor is "commonmark" or "gfm".
	MarkdownFlavor Flavor `mapstructure:"markdown_flavor" yaml:"markdown_flavor"`
}

// OutputConfig controls where converted files go.
type OutputConfig struct {
	// Extension replaces the source extension.
	Extension string `mapstructure:"extension" yaml:"extension"`

	// Dir mirrors the source tree under this directory. Empty writes next
	// to each source.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// Config is the root configuration structure for langmark.
type Config struct {
	Grammar GrammarConfig `mapstructure:"grammar" yaml:"grammar"`
	Input   InputConfig   `mapstructure:"input" yaml:"input"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// Jobs specifies the number of parallel workers. 0 means GOMAXPROCS.
	Jobs int `mapstructure:"jobs" yaml:"jobs"`

	// CLI-only fields (not persisted to config files)

	// DryRun reports what would be written without touching the filesystem.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// Format specifies the build report format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Grammar: GrammarConfig{
			TabWidth:  DefaultTabWidth,
			MarkLimit: DefaultMarkLimit,
		},
		Input: InputConfig{
			Extensions:     []string{".lm", ".langmark"},
			MarkdownFlavor: FlavorCommonMark,
		},
		Output: OutputConfig{
			Extension: DefaultOutputExtension,
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// NormalizeExtension lowercases ext and ensures a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
