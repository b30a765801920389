package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/langmark/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		original.Ignore = []string{"drafts/**"}
		original.Grammar.Disable = []string{"headings"}
		original.Input.MarkdownExtensions = []string{".md"}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Equal(t, original, clone)

		clone.Ignore[0] = "changed"
		clone.Grammar.Disable[0] = "strong"
		clone.Input.Extensions[0] = ".txt"
		clone.Input.MarkdownExtensions[0] = ".markdown"

		assert.Equal(t, "drafts/**", original.Ignore[0])
		assert.Equal(t, "headings", original.Grammar.Disable[0])
		assert.Equal(t, ".lm", original.Input.Extensions[0])
		assert.Equal(t, ".md", original.Input.MarkdownExtensions[0])
	})

	t.Run("copies CLI-only fields", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		original.DryRun = true
		original.Format = config.FormatJSON

		clone := original.Clone()
		assert.True(t, clone.DryRun)
		assert.Equal(t, config.FormatJSON, clone.Format)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.DryRun = true

	data, err := cfg.ToYAML()
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "tab_width: 4")
	assert.Contains(t, out, "mark_limit: 3")
	assert.Contains(t, out, "markdown_flavor: commonmark")
	assert.Regexp(t, `extension: "?\.html"?`, out)
	assert.NotContains(t, out, "dry_run", "CLI-only fields are not persisted")
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("valid yaml", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte(`
grammar:
  tab_width: 8
  disable: [headings, strong]
input:
  markdown_extensions: [".md"]
  markdown_flavor: gfm
output:
  dir: public
ignore: ["drafts/**"]
jobs: 2
`))
		require.NoError(t, err)
		assert.Equal(t, 8, cfg.Grammar.TabWidth)
		assert.Equal(t, []string{"headings", "strong"}, cfg.Grammar.Disable)
		assert.Equal(t, []string{".md"}, cfg.Input.MarkdownExtensions)
		assert.Equal(t, config.FlavorGFM, cfg.Input.MarkdownFlavor)
		assert.Equal(t, "public", cfg.Output.Dir)
		assert.Equal(t, []string{"drafts/**"}, cfg.Ignore)
		assert.Equal(t, 2, cfg.Jobs)
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		data, err := original.ToYAML()
		require.NoError(t, err)

		parsed, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, original.Grammar, parsed.Grammar)
		assert.Equal(t, original.Output, parsed.Output)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromYAML([]byte("grammar:\n  tab_widht: 2\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tab_widht")
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML(nil)
		require.NoError(t, err)
		assert.Equal(t, &config.Config{}, cfg)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromYAML([]byte("grammar: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse yaml")
	})
}

func TestNormalizeExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{".lm", ".lm"},
		{"lm", ".lm"},
		{" .MD ", ".md"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, config.NormalizeExtension(tc.in), tc.in)
	}
}

func TestValidity(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FlavorGFM.IsValid())
	assert.False(t, config.Flavor("pandoc").IsValid())
	assert.True(t, config.FormatSummary.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("minimal template parses", func(t *testing.T) {
		t.Parallel()

		data := config.GenerateTemplate(config.TemplateOptions{})
		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Grammar.TabWidth)
		assert.Equal(t, ".html", cfg.Output.Extension)
	})

	t.Run("full template lists elements", func(t *testing.T) {
		t.Parallel()

		data := config.GenerateTemplate(config.TemplateOptions{
			Full:     true,
			Elements: []string{"headings", "strong"},
		})
		assert.Contains(t, string(data), "Known elements: headings, strong")

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Grammar.MarkLimit)
		assert.Equal(t, config.FlavorCommonMark, cfg.Input.MarkdownFlavor)
	})
}
