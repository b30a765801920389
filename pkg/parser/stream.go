package parser

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/yaklabco/langmark/pkg/marks"
)

// LineSource yields the lines of a document in order. Every line returned
// ends with "\n".
type LineSource interface {
	NextLine() (string, bool)
}

// ReaderSource reads lines from an io.Reader.
type ReaderSource struct {
	r   *bufio.Reader
	err error
}

// NewReaderSource wraps r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: bufio.NewReader(r)}
}

// NextLine implements LineSource.
func (s *ReaderSource) NextLine() (string, bool) {
	if s.err != nil {
		return "", false
	}
	line, err := s.r.ReadString('\n')
	if err != nil {
		s.err = err
		if line == "" {
			return "", false
		}
	}
	return marks.Normalize(line), true
}

// Err returns the first read error other than io.EOF.
func (s *ReaderSource) Err() error {
	if errors.Is(s.err, io.EOF) {
		return nil
	}
	return s.err
}

// SliceSource yields lines from memory.
type SliceSource struct {
	lines []string
}

// NewStringSource splits text into lines.
func NewStringSource(text string) *SliceSource {
	if text == "" {
		return &SliceSource{}
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return &SliceSource{lines: lines}
}

// NextLine implements LineSource.
func (s *SliceSource) NextLine() (string, bool) {
	if len(s.lines) == 0 {
		return "", false
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return marks.Normalize(line), true
}

// Stream is a cursor over a LineSource that supports lookahead and
// pushback. Pushed-back lines are delivered before anything else, most
// recently rewound first.
type Stream struct {
	src LineSource

	// back holds rewound lines with the next one last.
	back []string
	// ahead holds lines pulled from src by Peek, the next one at head.
	ahead []string
	head  int
}

// NewStream creates a stream over src.
func NewStream(src LineSource) *Stream {
	return &Stream{src: src}
}

// Next consumes and returns the next line. It reports false at end of
// input.
func (s *Stream) Next() (string, bool) {
	if n := len(s.back); n > 0 {
		line := s.back[n-1]
		s.back = s.back[:n-1]
		return line, true
	}
	if s.head < len(s.ahead) {
		line := s.ahead[s.head]
		s.head++
		if s.head == len(s.ahead) {
			s.ahead = s.ahead[:0]
			s.head = 0
		}
		return line, true
	}
	return s.src.NextLine()
}

// Peek returns up to n upcoming lines without consuming them. Fewer lines
// are returned near the end of input.
func (s *Stream) Peek(n int) []string {
	out := make([]string, 0, n)
	for i := len(s.back) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.back[i])
	}
	for i := s.head; i < len(s.ahead) && len(out) < n; i++ {
		out = append(out, s.ahead[i])
	}
	for len(out) < n {
		line, ok := s.src.NextLine()
		if !ok {
			break
		}
		s.ahead = append(s.ahead, line)
		out = append(out, line)
	}
	return out
}

// Skip consumes n lines.
func (s *Stream) Skip(n int) {
	for range n {
		if _, ok := s.Next(); !ok {
			return
		}
	}
}

// Rewind pushes lines back so that they are read next, in the given order.
func (s *Stream) Rewind(lines ...string) {
	for i := len(lines) - 1; i >= 0; i-- {
		s.back = append(s.back, lines[i])
	}
}
