package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/langmark/pkg/config"
)

// EnvPrefix starts the name of every environment variable the loader reads.
const EnvPrefix = "LANGMARK_"

// EnvVar describes one environment override.
type EnvVar struct {
	// Name is the full variable name, such as LANGMARK_TAB_WIDTH.
	Name string

	// Key is the config file key it overrides, such as grammar.tab_width.
	// CLI-only settings have no file key and use the flag name.
	Key string

	Help string

	set func(cfg *config.Config, raw string) error
}

// envVars is sorted by Name so the first reported error is stable.
//
//nolint:gochecknoglobals // Read-only table.
var envVars = []EnvVar{
	{Name: "DISABLE", Key: "grammar.disable", Help: "Comma-separated element names to switch off",
		set: setList(func(c *config.Config, v []string) { c.Grammar.Disable = v })},
	{Name: "DRY_RUN", Key: "dry-run", Help: "Convert without writing: true or false",
		set: func(c *config.Config, raw string) error {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("want true or false, got %q", raw)
			}
			c.DryRun = b
			return nil
		}},
	{Name: "EXTENSIONS", Key: "input.extensions", Help: "Comma-separated langmark source extensions",
		set: setList(func(c *config.Config, v []string) { c.Input.Extensions = v })},
	{Name: "FORMAT", Key: "format", Help: "Build report format: text, json or summary",
		set: setString(func(c *config.Config, v string) { c.Format = config.OutputFormat(v) })},
	{Name: "IGNORE", Key: "ignore", Help: "Comma-separated glob patterns to skip",
		set: setList(func(c *config.Config, v []string) { c.Ignore = v })},
	{Name: "JOBS", Key: "jobs", Help: "Number of parallel workers (0 = auto)",
		set: setInt(func(c *config.Config, v int) { c.Jobs = v })},
	{Name: "MARKDOWN_EXTENSIONS", Key: "input.markdown_extensions", Help: "Comma-separated markdown source extensions",
		set: setList(func(c *config.Config, v []string) { c.Input.MarkdownExtensions = v })},
	{Name: "MARKDOWN_FLAVOR", Key: "input.markdown_flavor", Help: "Markdown flavor: commonmark or gfm",
		set: setString(func(c *config.Config, v string) { c.Input.MarkdownFlavor = config.Flavor(v) })},
	{Name: "MARK_LIMIT", Key: "grammar.mark_limit", Help: "Longest run of an inline mark",
		set: setInt(func(c *config.Config, v int) { c.Grammar.MarkLimit = v })},
	{Name: "OUTPUT_EXTENSION", Key: "output.extension", Help: "Extension of generated files",
		set: setString(func(c *config.Config, v string) { c.Output.Extension = v })},
	{Name: "OUT_DIR", Key: "output.dir", Help: "Directory that mirrors the source tree",
		set: setString(func(c *config.Config, v string) { c.Output.Dir = v })},
	{Name: "TAB_WIDTH", Key: "grammar.tab_width", Help: "Distance between tab stops",
		set: setInt(func(c *config.Config, v int) { c.Grammar.TabWidth = v })},
}

func setString(assign func(*config.Config, string)) func(*config.Config, string) error {
	return func(c *config.Config, raw string) error {
		assign(c, raw)
		return nil
	}
}

func setInt(assign func(*config.Config, int)) func(*config.Config, string) error {
	return func(c *config.Config, raw string) error {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("want an integer, got %q", raw)
		}
		assign(c, n)
		return nil
	}
}

// setList splits a comma-separated value, dropping empty items.
func setList(assign func(*config.Config, []string)) func(*config.Config, string) error {
	return func(c *config.Config, raw string) error {
		var items []string
		for item := range strings.SplitSeq(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		assign(c, items)
		return nil
	}
}

// LoadFromEnv applies the LANGMARK_* variables that are set and non-empty.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, v := range envVars {
		raw := os.Getenv(EnvPrefix + v.Name)
		if raw == "" {
			continue
		}
		if err := v.set(cfg, raw); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, v.Name, err)
		}
	}
	return nil
}

// ListEnvVars returns every supported variable, sorted by name.
func ListEnvVars() []EnvVar {
	out := make([]EnvVar, len(envVars))
	for i, v := range envVars {
		v.Name = EnvPrefix + v.Name
		v.set = nil
		out[i] = v
	}
	return out
}

// EnvVarFor returns the variable that overrides key, or "".
func EnvVarFor(key string) string {
	for _, v := range envVars {
		if v.Key == key {
			return EnvPrefix + v.Name
		}
	}
	return ""
}
