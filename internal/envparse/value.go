package envparse

import (
	"github.com/envcore/dotparse/internal/envbuf"
	"github.com/envcore/dotparse/internal/envscan"
)

// valueMode tracks which quoting dialect, if any, is currently active
// for the value being read.
type valueMode int

const (
	modeInitial valueMode = iota
	modeImplicit
	modeSingle
	modeTripleSingle
	modeDouble
	modeTripleDouble
	modeBacktick
)

// stepResult is the outcome of processing a single byte through the
// value dispatch table.
type stepResult int

const (
	stepContinue stepResult = iota
	stepStopNewline
	stepStopQuoteClose
	stepStopComment
)

// variablePosition records the span of one "${NAME}" marker discovered
// while reading a value, in byte offsets into that value's eventual
// committed slice: [start, end) covers the whole marker including "$"
// and the braces, [nameStart, nameEnd) covers NAME alone.
type variablePosition struct {
	start, end         int
	nameStart, nameEnd int
}

// value is the in-flight state for one value read.
type value struct {
	buffer envbuf.Buffer
	owned  []byte

	mode valueMode

	singleQuoteStreak int
	doubleQuoteStreak int
	backslashStreak   int

	parsingVariable bool
	markerStart     int
	nameStart       int

	positions []variablePosition
}

func (v *value) reset() {
	v.buffer.Reset()
	v.owned = nil
	v.mode = modeInitial
	v.singleQuoteStreak = 0
	v.doubleQuoteStreak = 0
	v.backslashStreak = 0
	v.parsingVariable = false
	v.positions = v.positions[:0]
}

func (v *value) appendRaw(c byte) {
	v.buffer.AppendByte(c)
}

func (v *value) singleQuoteFamily() bool {
	return v.mode == modeSingle || v.mode == modeTripleSingle
}

// commit transfers the scratch buffer into an exact-sized owned slice.
// The recorded variablePosition offsets are valid against the returned
// slice unchanged, since Take never reorders bytes.
func (v *value) commit() []byte {
	v.owned = v.buffer.Take()
	v.buffer.Reset()
	return v.owned
}

// readValue drives the per-byte value dispatch until the value
// terminates, reporting which of the three non-fatal outcomes applies.
// Any garbage trailing a closing quote on the same line is consumed
// here before returning, so callers never see it.
func readValue(s *envscan.Stream, v *value, opts Options, diag *Diagnostics) outcome {
	for {
		c, ok := s.Get()
		if !ok {
			recoverAtEOF(v, diag)
			return outcomeEndOfStreamValue
		}

		res := v.step(c, opts, diag)
		switch res {
		case stepContinue:
			continue
		case stepStopNewline:
			v.trimImplicitTrailingSpaces()
			return outcomeSuccess
		case stepStopQuoteClose:
			if c != '\n' {
				s.SkipToNewline()
			}
			return outcomeSuccess
		case stepStopComment:
			v.trimImplicitTrailingSpaces()
			s.SkipToNewline()
			return outcomeComment
		}
	}
}

// trimImplicitTrailingSpaces drops trailing spaces from an unquoted
// value; quoted values keep their bytes as written.
func (v *value) trimImplicitTrailingSpaces() {
	if v.mode != modeImplicit {
		return
	}
	b := v.buffer.Bytes()
	n := len(b)
	for n > 0 && b[n-1] == ' ' {
		n--
	}
	v.buffer.Truncate(n)
}

// recoverAtEOF records diagnostics for state left dangling when the
// input ends mid-value. A quote streak still pending at EOF is resolved
// first (which may open a quote or append literal quotes inside an open
// heredoc); beyond that the accumulated buffer content is kept as-is.
func recoverAtEOF(v *value, diag *Diagnostics) {
	if v.singleQuoteStreak > 0 {
		v.resolvePendingSingleQuote()
	}
	if v.doubleQuoteStreak > 0 {
		v.resolvePendingDoubleQuote()
	}
	v.trimImplicitTrailingSpaces()
	if v.mode == modeTripleSingle || v.mode == modeTripleDouble ||
		v.mode == modeSingle || v.mode == modeDouble {
		diag.Record(RecoveredIssue{Reason: ReasonUnclosedQuote})
	}
	if v.parsingVariable {
		diag.Record(RecoveredIssue{Reason: ReasonUnclosedInterpolation})
		v.parsingVariable = false
	}
}

// step processes one input byte against the current value state,
// running the pending-streak pre-pass first and the first-byte special
// cases second, before falling into the general per-byte dispatch.
func (v *value) step(c byte, opts Options, diag *Diagnostics) stepResult {
	if v.backslashStreak > 0 && c != '\\' {
		if v.resolveBackslashStreak(c, diag) {
			return stepContinue
		}
		// Not absorbed as an escape: c falls through to dispatch below.
	}

	if v.singleQuoteStreak > 0 && c != '\'' {
		if v.resolvePendingSingleQuote() {
			return stepStopQuoteClose
		}
	}

	if v.doubleQuoteStreak > 0 && c != '"' {
		if v.resolvePendingDoubleQuote() {
			return stepStopQuoteClose
		}
	}

	if v.buffer.Len() == 0 && v.mode == modeInitial {
		switch {
		case c == '`':
			v.mode = modeBacktick
			return stepContinue
		case c == '#':
			return stepStopComment
		case c == ' ':
			return stepContinue
		case c != '\'' && c != '"':
			v.mode = modeImplicit
			return v.dispatch(c, opts)
		}
	}

	return v.dispatch(c, opts)
}

// dispatch is the general per-byte table, reached once the pre-pass
// and first-byte special cases no longer apply to c.
func (v *value) dispatch(c byte, opts Options) stepResult {
	switch c {
	case '`':
		if v.mode == modeBacktick {
			return stepStopQuoteClose
		}
		v.appendRaw(c)
		return stepContinue

	case '#':
		if v.mode == modeImplicit {
			return stepStopComment
		}
		v.appendRaw(c)
		return stepContinue

	case '\n':
		if v.mode == modeTripleSingle || v.mode == modeTripleDouble {
			v.appendRaw(c)
			return stepContinue
		}
		if opts.AllowSingleLineHeredocs && (v.mode == modeSingle || v.mode == modeDouble) {
			v.appendRaw(c)
			return stepContinue
		}
		v.stripTrailingCR()
		return stepStopNewline

	case '\r':
		if v.mode == modeTripleSingle || v.mode == modeTripleDouble {
			v.appendRaw(c)
		}
		return stepContinue

	case '\\':
		if v.singleQuoteFamily() {
			v.appendRaw(c)
			return stepContinue
		}
		v.backslashStreak++
		return stepContinue

	case '{':
		v.appendRaw(c)
		v.maybeOpenVariable(opts)
		return stepContinue

	case '}':
		v.appendRaw(c)
		v.maybeCloseVariable(opts)
		return stepContinue

	case '\'':
		return v.singleQuoteByte()

	case '"':
		return v.doubleQuoteByte()

	default:
		v.appendRaw(c)
		return stepContinue
	}
}

func (v *value) stripTrailingCR() {
	b := v.buffer.Bytes()
	if n := len(b); n > 0 && b[n-1] == '\r' {
		v.buffer.Truncate(n - 1)
	}
}

// trailingBackslashOdd reports whether the byte run ending right
// before index idx in buf consists of an odd number of backslashes,
// the "previous byte is an escape" test gating interpolation markers.
func trailingBackslashOdd(buf []byte, idx int) bool {
	n := 0
	for i := idx - 1; i >= 0 && buf[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// maybeOpenVariable is called just after a '{' byte has been appended.
// It opens interpolation tracking unless the value is single-quoted, a
// variable is already being parsed, or the '{' itself was escaped.
func (v *value) maybeOpenVariable(opts Options) {
	if !opts.InterpolationEnabled {
		return
	}
	if v.singleQuoteFamily() || v.parsingVariable {
		return
	}
	buf := v.buffer.Bytes()
	idx := len(buf) - 1
	if idx == 0 || buf[idx-1] != '$' {
		return // only "${" opens a variable position, a bare '{' does not.
	}
	if trailingBackslashOdd(buf, idx) {
		return
	}
	v.parsingVariable = true
	v.markerStart = idx - 1
	v.nameStart = len(buf)
}

// maybeCloseVariable is called just after a '}' byte has been
// appended, closing and recording the variablePosition opened by
// maybeOpenVariable, unless the '}' itself was escaped.
func (v *value) maybeCloseVariable(opts Options) {
	if !opts.InterpolationEnabled || !v.parsingVariable {
		return
	}
	buf := v.buffer.Bytes()
	idx := len(buf) - 1
	if trailingBackslashOdd(buf, idx) {
		return
	}
	v.positions = append(v.positions, variablePosition{
		start:     v.markerStart,
		end:       len(buf),
		nameStart: v.nameStart,
		nameEnd:   idx,
	})
	v.parsingVariable = false
}
