// Package langdetect guesses the language of a code block so tree views can
// label it. Detection combines cheap textual probes with go-enry's shebang
// and classifier lookups.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language is recognized.
const Text = "text"

// probe recognizes one language from characteristic text.
type probe struct {
	lang  string
	match func(src, trimmed []byte) bool
}

// probes run in order; the first match wins.
//
//nolint:gochecknoglobals // Read-only lookup table.
var probes = []probe{
	{"go", func(_, t []byte) bool { return bytes.HasPrefix(t, []byte("package ")) }},
	{"python", isPython},
	{"html", func(_, t []byte) bool {
		return containsAny(bytes.ToLower(t), "<!doctype html", "<html", "<head>", "<body>")
	}},
	{"json", func(_, t []byte) bool {
		return (bytes.HasPrefix(t, []byte("{")) || bytes.HasPrefix(t, []byte("["))) && bytes.Contains(t, []byte(`"`))
	}},
	{"dockerfile", func(s, t []byte) bool {
		return bytes.HasPrefix(t, []byte("FROM ")) ||
			(bytes.Contains(s, []byte("\nFROM ")) && bytes.Contains(s, []byte("\nRUN ")))
	}},
	{"sql", func(_, t []byte) bool {
		upper := bytes.ToUpper(t)
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if bytes.HasPrefix(upper, []byte(kw)) {
				return true
			}
		}
		return false
	}},
	{"rust", func(s, _ []byte) bool { return containsAny(s, "fn main()", "println!", "let mut ") }},
	{"javascript", func(s, _ []byte) bool { return containsAny(s, "=>", "const ", "console.log") }},
	{"yaml", isYAML},
}

// candidates limits the classifier to languages likely in documentation.
//
//nolint:gochecknoglobals // Read-only lookup table.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Detect returns a lowercase language name for content, or Text if the
// language is unknown or detection is not confident.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	for _, p := range probes {
		if p.match(content, trimmed) {
			return p.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

func isPython(src, _ []byte) bool {
	s := string(src)
	if strings.Contains(s, "def ") && strings.Contains(s, "):") {
		return true
	}
	if strings.Contains(s, "__name__") || strings.Contains(s, "__main__") {
		return true
	}
	// Go imports use "import (".
	return (strings.HasPrefix(strings.TrimSpace(s), "import ") && !strings.Contains(s, "import (")) ||
		(strings.Contains(s, "from ") && strings.Contains(s, " import "))
}

// isYAML looks for at least two key: value lines or list items.
func isYAML(src, _ []byte) bool {
	count := 0
	for line := range bytes.SplitSeq(src, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({") && line[0] != '"' {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count >= 2
}

func containsAny(s []byte, needles ...string) bool {
	for _, n := range needles {
		if bytes.Contains(s, []byte(n)) {
			return true
		}
	}
	return false
}

// normalize converts go-enry language names to lowercase labels.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
