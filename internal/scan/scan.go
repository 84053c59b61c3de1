// Package scan provides the line scanner shared by the txtar decoder and
// content classifier. Keeping marker recognition in one place guarantees
// that both sides agree on a single grammar.
package scan

import "strings"

// Marker delimiters for section boundary lines.
const (
	MarkerPrefix = "-- "
	MarkerSuffix = " --"
)

// Scanner iterates over the lines of a byte buffer, tracking 1-based line
// numbers and byte offsets. Returned lines exclude the LF terminator but
// keep a CR if present; callers that need CRLF tolerance trim it themselves.
type Scanner struct {
	data  []byte
	pos   int
	start int
	line  int
}

// New returns a scanner over data.
func New(data []byte) *Scanner {
	return &Scanner{data: data}
}

// Next returns the next line without its terminator. ok is false at end of
// input. A final line without a trailing newline is still returned.
func (s *Scanner) Next() (line []byte, ok bool) {
	if s.pos >= len(s.data) {
		return nil, false
	}
	s.line++
	s.start = s.pos
	end := s.pos
	for end < len(s.data) && s.data[end] != '\n' {
		end++
	}
	if end < len(s.data) {
		s.pos = end + 1
	} else {
		s.pos = end
	}
	return s.data[s.start:end], true
}

// Line reports the 1-based number of the line most recently returned by Next.
// It is zero before the first call.
func (s *Scanner) Line() int {
	return s.line
}

// LineStart reports the byte offset of the line most recently returned by
// Next. Together with the offset of a later line it lets callers slice body
// content out of the input verbatim.
func (s *Scanner) LineStart() int {
	return s.start
}

// MarkerName reports whether line is a section boundary marker and, if so,
// returns the enclosed name. Trailing whitespace (including a CR from CRLF
// input) is ignored and the name itself is trimmed. A line with an empty
// name is not a marker.
func MarkerName(line string) (name string, ok bool) {
	line = strings.TrimRight(line, " \t\r")
	if len(line) < len(MarkerPrefix)+len(MarkerSuffix)+1 {
		return "", false
	}
	if !strings.HasPrefix(line, MarkerPrefix) || !strings.HasSuffix(line, MarkerSuffix) {
		return "", false
	}
	name = strings.TrimSpace(line[len(MarkerPrefix) : len(line)-len(MarkerSuffix)])
	if name == "" {
		return "", false
	}
	return name, true
}
