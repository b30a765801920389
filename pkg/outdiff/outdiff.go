// Package outdiff computes unified diffs between a previously generated
// output and its regenerated replacement.
package outdiff

import (
	"fmt"
	"strings"
)

// Context is the number of unchanged lines shown around each change.
const Context = 3

// Diff is a unified diff of one output file.
type Diff struct {
	// Path labels the "a/" and "b/" sides.
	Path string

	Hunks []Hunk

	// Added and Removed count changed lines across all hunks.
	Added   int
	Removed int
}

// Hunk is one "@@" block. Starts are 1-based; a zero count with start 0
// means the side is empty.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []Line
}

// Line is one line of a hunk, without its prefix.
type Line struct {
	Kind LineKind
	Text string
}

// LineKind tells context lines from changes.
type LineKind int

const (
	Same LineKind = iota
	Added
	Removed
)

// Prefix returns the unified diff marker for k.
func (k LineKind) Prefix() string {
	switch k {
	case Added:
		return "+"
	case Removed:
		return "-"
	default:
		return " "
	}
}

// Compute diffs before against after. It returns nil when they hold the
// same lines. A missing previous output is passed as nil before.
func Compute(path string, before, after []byte) *Diff {
	a, b := lines(before), lines(after)
	ops := script(a, b)

	d := &Diff{Path: path}
	for _, op := range ops {
		switch op.kind {
		case Added:
			d.Added++
		case Removed:
			d.Removed++
		}
	}
	if d.Added == 0 && d.Removed == 0 {
		return nil
	}
	d.Hunks = hunks(ops)
	return d
}

// String renders the diff with "---", "+++" and "@@" headers.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range d.Hunks {
		sb.WriteString(h.Header())
		sb.WriteByte('\n')
		for _, l := range h.Lines {
			sb.WriteString(l.Kind.Prefix())
			sb.WriteString(l.Text)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Header returns the "@@ -a,b +c,d @@" line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
}

func lines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	out := strings.Split(string(content), "\n")
	if out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

type op struct {
	kind     LineKind
	text     string
	oldIndex int
	newIndex int
}

// script walks a longest-common-subsequence table to produce the edit
// script from a to b. Removals come before additions within a change.
func script(a, b []string) []op {
	n, m := len(a), len(b)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]op, 0, n+m)
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && a[i] == b[j]:
			ops = append(ops, op{kind: Same, text: a[i], oldIndex: i, newIndex: j})
			i++
			j++
		case j == m || (i < n && lcs[i+1][j] >= lcs[i][j+1]):
			ops = append(ops, op{kind: Removed, text: a[i], oldIndex: i, newIndex: j})
			i++
		default:
			ops = append(ops, op{kind: Added, text: b[j], oldIndex: i, newIndex: j})
			j++
		}
	}
	return ops
}

// hunks groups changes separated by no more than 2*Context unchanged lines.
func hunks(ops []op) []Hunk {
	var out []Hunk
	for start := 0; start < len(ops); {
		if ops[start].kind == Same {
			start++
			continue
		}

		end := start
		for k := start; k < len(ops); k++ {
			if ops[k].kind != Same {
				end = k + 1
				continue
			}
			if k-end >= 2*Context {
				break
			}
		}

		from := max(start-Context, 0)
		to := min(end+Context, len(ops))
		out = append(out, buildHunk(ops[from:to]))
		start = to
	}
	return out
}

func buildHunk(ops []op) Hunk {
	h := Hunk{OldStart: ops[0].oldIndex + 1, NewStart: ops[0].newIndex + 1}
	for _, o := range ops {
		h.Lines = append(h.Lines, Line{Kind: o.kind, Text: o.text})
		if o.kind != Added {
			h.OldCount++
		}
		if o.kind != Removed {
			h.NewCount++
		}
	}
	if h.OldCount == 0 {
		h.OldStart--
	}
	if h.NewCount == 0 {
		h.NewStart--
	}
	return h
}
