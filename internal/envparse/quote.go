package envparse

// This file implements the single- and double-quote (including their
// triple-quoted heredoc forms) opening/closing decisions described as
// the "quote walker" in the value state machine. Single and double
// quotes are handled by nearly identical, deliberately separate logic
// rather than one generic family type: the two dialects diverge in
// enough small ways (backslash suppression, heredoc eligibility) that
// a shared abstraction would need as many branches as writing them out
// does.

// singleQuoteByte handles a '\'' byte reached during normal dispatch
// (i.e. not deferred from a previous byte by the pre-pass). It reports
// the step outcome directly; for modeInitial/modeTripleSingle it only
// updates the pending streak and continues (except that a third quote
// in modeTripleSingle closes the heredoc at once), leaving the actual
// open/close decision to resolvePendingSingleQuote once a differing
// byte (or EOF) arrives.
func (v *value) singleQuoteByte() stepResult {
	switch v.mode {
	case modeDouble, modeTripleDouble, modeBacktick, modeImplicit:
		// Not a delimiter in these families; literal content.
		v.appendRaw('\'')
		return stepContinue

	case modeSingle:
		// Already open and not a heredoc: any single quote closes it
		// immediately, there is nothing to defer.
		return stepStopQuoteClose

	case modeTripleSingle:
		v.singleQuoteStreak++
		if v.singleQuoteStreak == 3 {
			v.singleQuoteStreak = 0
			return stepStopQuoteClose
		}
		return stepContinue

	default: // modeInitial
		v.singleQuoteStreak++
		return stepContinue
	}
}

// resolvePendingSingleQuote is invoked by the pre-pass once a byte
// other than '\'' arrives while single_quote_streak > 0, or at EOF. It
// finalizes the streak's meaning and reports whether the value should
// stop (quote closed).
func (v *value) resolvePendingSingleQuote() (stop bool) {
	n := v.singleQuoteStreak
	v.singleQuoteStreak = 0

	switch v.mode {
	case modeTripleSingle:
		// A streak of 1 or 2 inside an open heredoc is literal content
		// (3 would already have closed it inline in singleQuoteByte).
		for i := 0; i < n; i++ {
			v.appendRaw('\'')
		}
		return false

	default: // modeInitial: deciding whether this run opened anything.
		switch {
		case n == 1:
			v.mode = modeSingle
			return false
		case n == 2:
			// Opened and immediately closed: an empty single-quoted
			// value.
			return true
		case n >= 3:
			v.mode = modeTripleSingle
			for i := 0; i < n-3; i++ {
				v.appendRaw('\'')
			}
			return false
		default:
			return false
		}
	}
}

// doubleQuoteByte is the symmetric counterpart of singleQuoteByte for
// '"'.
func (v *value) doubleQuoteByte() stepResult {
	switch v.mode {
	case modeSingle, modeTripleSingle, modeBacktick, modeImplicit:
		v.appendRaw('"')
		return stepContinue

	case modeDouble:
		return stepStopQuoteClose

	case modeTripleDouble:
		v.doubleQuoteStreak++
		if v.doubleQuoteStreak == 3 {
			v.doubleQuoteStreak = 0
			return stepStopQuoteClose
		}
		return stepContinue

	default: // modeInitial
		v.doubleQuoteStreak++
		return stepContinue
	}
}

// resolvePendingDoubleQuote is the symmetric counterpart of
// resolvePendingSingleQuote.
func (v *value) resolvePendingDoubleQuote() (stop bool) {
	n := v.doubleQuoteStreak
	v.doubleQuoteStreak = 0

	switch v.mode {
	case modeTripleDouble:
		for i := 0; i < n; i++ {
			v.appendRaw('"')
		}
		return false

	default: // modeInitial
		switch {
		case n == 1:
			v.mode = modeDouble
			return false
		case n == 2:
			return true
		case n >= 3:
			v.mode = modeTripleDouble
			for i := 0; i < n-3; i++ {
				v.appendRaw('"')
			}
			return false
		default:
			return false
		}
	}
}
