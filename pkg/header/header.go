// Package header reads the "::key value" metadata lines that may open a
// langmark document.
package header

import (
	"regexp"

	"gopkg.in/yaml.v3"
)

//nolint:gochecknoglobals // Read-only compiled matcher.
var metaLine = regexp.MustCompile(`^::[ \t]*(\S+)(?:[ \t]+(.*?))?[ \t]*\n$`)

// Source is the part of a line stream the header reader needs.
type Source interface {
	Peek(n int) []string
	Skip(n int)
}

// Entry is one metadata line. HasValue is false for a bare "::key".
type Entry struct {
	Key      string
	Value    string
	HasValue bool
}

// Header is the ordered metadata of a document. A repeated key keeps its
// first position and its last value.
type Header struct {
	entries []Entry
	index   map[string]int
}

// New creates an empty header.
func New() *Header {
	return &Header{index: make(map[string]int)}
}

// Read consumes metadata lines from the front of src, stopping at the first
// line that is not one.
func Read(src Source) *Header {
	h := New()
	for {
		lines := src.Peek(1)
		if len(lines) == 0 {
			return h
		}
		sub := metaLine.FindStringSubmatch(lines[0])
		if sub == nil {
			return h
		}
		src.Skip(1)
		h.Set(sub[1], sub[2], sub[2] != "")
	}
}

// Set records a value for key.
func (h *Header) Set(key, value string, hasValue bool) {
	entry := Entry{Key: key, Value: value, HasValue: hasValue}
	if i, ok := h.index[key]; ok {
		h.entries[i] = entry
		return
	}
	h.index[key] = len(h.entries)
	h.entries = append(h.entries, entry)
}

// Get returns the value stored under key.
func (h *Header) Get(key string) (string, bool) {
	if h == nil {
		return "", false
	}
	i, ok := h.index[key]
	if !ok {
		return "", false
	}
	return h.entries[i].Value, true
}

// Entries returns the metadata in document order.
func (h *Header) Entries() []Entry {
	if h == nil {
		return nil
	}
	return append([]Entry(nil), h.entries...)
}

// Len returns the number of keys.
func (h *Header) Len() int {
	if h == nil {
		return 0
	}
	return len(h.entries)
}

// MarshalYAML renders the header as a mapping in document order. Keys
// without a value become null.
func (h *Header) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range h.Entries() {
		value := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		if e.HasValue {
			value = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Value}
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			value,
		)
	}
	return node, nil
}
