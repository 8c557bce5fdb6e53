// Package envscan provides a forward-only byte cursor over a single
// input buffer, the primitive EnvStream the key and value readers step
// through one byte at a time.
package envscan

// Stream is a cursor over an input byte slice. Index is monotonically
// non-decreasing; Stream never looks backward relative to its own
// cursor (readers that need lookbehind scan the accumulated value
// buffer instead, not the stream).
type Stream struct {
	bytes []byte
	index int
}

// New returns a Stream positioned at the start of data.
func New(data []byte) *Stream {
	return &Stream{bytes: data}
}

// Good reports whether there is at least one more byte to read.
func (s *Stream) Good() bool {
	return s.index < len(s.bytes)
}

// EOF reports whether the cursor has reached the end of input exactly.
func (s *Stream) EOF() bool {
	return s.index == len(s.bytes)
}

// Index returns the current cursor position.
func (s *Stream) Index() int {
	return s.index
}

// Get returns the byte at the current position and advances the
// cursor. The second return value is false at EOF.
func (s *Stream) Get() (byte, bool) {
	if !s.Good() {
		return 0, false
	}
	c := s.bytes[s.index]
	s.index++
	return c, true
}

// Peek returns the byte at the current position without advancing. The
// second return value is false at EOF.
func (s *Stream) Peek() (byte, bool) {
	if !s.Good() {
		return 0, false
	}
	return s.bytes[s.index], true
}

// SkipToNewline advances the cursor past the next '\n', or to EOF if
// none remains.
func (s *Stream) SkipToNewline() {
	for s.index < len(s.bytes) {
		c := s.bytes[s.index]
		s.index++
		if c == '\n' {
			return
		}
	}
}
