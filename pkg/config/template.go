package config

import (
	"bytes"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting uncommented and lists the element names
	// that grammar.disable accepts.
	Full bool

	// Elements are the names accepted by grammar.disable. Only used when
	// Full is set.
	Elements []string
}

// GenerateTemplate creates a commented configuration file template.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")

	if !opts.Full {
		buf.WriteString(`grammar:
  # Distance between tab stops
  tab_width: 4
  # Longest run of an inline mark such as *** or ###
  # mark_limit: 3
  # Elements to switch off
  # disable: []

input:
  extensions: [".lm", ".langmark"]
  # Markdown files converted in the same build
  # markdown_extensions: [".md"]
  # markdown_flavor: commonmark

output:
  extension: ".html"
  # Write outputs under this directory instead of next to each source
  # dir: public

# File patterns to ignore (glob patterns)
# ignore:
#   - "drafts/**"

# Number of parallel workers (0 = auto)
# jobs: 0
`)
		return buf.Bytes()
	}

	buf.WriteString(`grammar:
  tab_width: 4
  mark_limit: 3
`)
	if len(opts.Elements) > 0 {
		buf.WriteString("  # ")
		buf.WriteString(wrapComment("Known elements: "+strings.Join(opts.Elements, ", "), commentWrapWidth))
		buf.WriteString("\n")
	}
	buf.WriteString(`  disable: []

input:
  extensions: [".lm", ".langmark"]
  markdown_extensions: []
  # commonmark or gfm
  markdown_flavor: commonmark

output:
  extension: ".html"
  dir: ""

ignore: []

jobs: 0
`)
	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# langmark configuration
# See: https://github.com/yaklabco/langmark`
}
