package envparse

// This file implements the backslash-streak collapse and
// control-character translation used by the value dispatch loop: a run
// of backslashes is walked pairwise (two literal backslashes collapse
// to one), and a leftover single backslash is tried against the byte
// that follows it as a control-character escape.

// resolveBackslashStreak collapses a run of n pending backslashes: n/2
// literal backslashes are appended, and if n is odd the final one is
// combined with c to try a control-character escape. It reports
// whether c was absorbed by that escape (true) or falls through to
// normal dispatch (false).
func (v *value) resolveBackslashStreak(c byte, diag *Diagnostics) bool {
	n := v.backslashStreak
	v.backslashStreak = 0

	for i := 0; i < n/2; i++ {
		v.appendRaw('\\')
	}
	if n%2 == 0 {
		return false
	}
	if mapped, ok := controlEscape(c); ok {
		v.appendRaw(mapped)
		return true
	}
	diag.Record(RecoveredIssue{Reason: ReasonUnknownEscape})
	v.appendRaw('\\')
	return false
}

// controlEscape maps a byte following a single pending backslash to
// its control-character value. Any quote character escapes to itself.
func controlEscape(c byte) (byte, bool) {
	switch c {
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case 'v':
		return '\v', true
	case 'a':
		return 0x07, true
	case 'b':
		return 0x08, true
	case 'f':
		return 0x0C, true
	case '0':
		return 0x00, true
	case '\\':
		return '\\', true
	case '\'', '"', '`':
		return c, true
	default:
		return 0, false
	}
}
