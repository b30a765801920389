package lmast

import "strings"

// RawText is an append-only text buffer. The zero value is ready to use.
type RawText struct {
	b strings.Builder
}

// Append adds s to the buffer.
func (r *RawText) Append(s string) {
	r.b.WriteString(s)
}

// String returns the accumulated text.
func (r *RawText) String() string {
	return r.b.String()
}

// Len returns the number of bytes accumulated.
func (r *RawText) Len() int {
	return r.b.Len()
}
