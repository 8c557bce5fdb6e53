package envparse

import (
	"github.com/envcore/dotparse/internal/envbuf"
	"github.com/envcore/dotparse/internal/envscan"
)

// exportPrefix is the POSIX "export " token stripped from the front of
// a key once it has been fully accumulated in the scratch buffer.
var exportPrefix = []byte("export")

// key is the in-flight state for one key read: a shared scratch buffer
// written during the parse phase and, once the pair commits, an
// exact-sized owned copy so the scratch buffer can be reused.
type key struct {
	buffer envbuf.Buffer
	owned  []byte
}

// reset clears the key for the next pair, retaining buffer capacity.
func (k *key) reset() {
	k.buffer.Reset()
	k.owned = nil
}

// readKey consumes bytes from s up to and including the key/value
// separator ('=' or, when enabled, ':'), leaving the untrimmed-left key
// bytes in k.buffer. Leading spaces are dropped as they are read; the
// caller is responsible for right-trimming trailing spaces.
func readKey(s *envscan.Stream, k *key, opts Options) outcome {
	for {
		c, ok := s.Get()
		if !ok {
			if k.buffer.Len() > 0 {
				return outcomeEndOfStreamKey
			}
			return outcomeFail
		}

		switch {
		case c == '\r':
			continue

		case c == '\n':
			return outcomeFail

		case c == '#':
			s.SkipToNewline()
			return outcomeComment

		case c == ' ' && k.buffer.Len() == 0:
			continue

		case c == '=':
			return endKeySeparator(s, k)

		case c == ':' && opts.SupportColonSeparator:
			return endKeySeparator(s, k)

		default:
			k.buffer.AppendByte(c)
			tryStripExportPrefix(k, opts)
		}
	}
}

// endKeySeparator handles the transition right after a separator byte
// was consumed: EOF immediately after it means an empty, present value.
func endKeySeparator(s *envscan.Stream, k *key) outcome {
	if s.EOF() {
		return outcomeEndOfStreamValue
	}
	_ = k
	return outcomeSuccess
}

// tryStripExportPrefix clears the buffer once it holds exactly
// "export " (the trailing space is the byte that triggers the check),
// implementing the POSIX export prefix strip from spec.md.
func tryStripExportPrefix(k *key, opts Options) {
	if !opts.SupportExportPrefix {
		return
	}
	buf := k.buffer.Bytes()
	if len(buf) != len(exportPrefix)+1 {
		return
	}
	if buf[len(buf)-1] != ' ' {
		return
	}
	if string(buf[:len(exportPrefix)]) != string(exportPrefix) {
		return
	}
	k.buffer.Reset()
}

// rightTrim decrements the key buffer's length past any trailing space
// bytes, implementing KeyReader's "caller trims trailing spaces" rule.
func (k *key) rightTrim() {
	b := k.buffer.Bytes()
	n := len(b)
	for n > 0 && b[n-1] == ' ' {
		n--
	}
	k.buffer.Truncate(n)
}

// commit transfers the scratch buffer's contents into an exact-sized
// owned slice and clears the scratch buffer for reuse.
func (k *key) commit() []byte {
	k.owned = k.buffer.Take()
	k.buffer.Reset()
	return k.owned
}
