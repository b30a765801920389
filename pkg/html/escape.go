package html

import "strings"

//nolint:gochecknoglobals // Stateless, safe for concurrent use.
var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", `"`, "&quot;")
)

// EscapeText escapes the characters that would start markup in element
// content: '&' and '<'.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// escapeAttr escapes a value placed inside a double-quoted attribute.
func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// quoteAttr makes already rendered markup safe inside a double-quoted
// attribute.
func quoteAttr(s string) string {
	return strings.ReplaceAll(s, `"`, "&quot;")
}

// trimBreak removes exactly one trailing newline.
func trimBreak(s string) string {
	return strings.TrimSuffix(s, "\n")
}
