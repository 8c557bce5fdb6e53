package envparse

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// outcome is the result kind a reader step can produce. It never
// crosses the public boundary directly; readPair maps it onto either a
// committed pair, a discarded line, or a loop-terminating condition.
type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeComment
	outcomeEndOfStreamKey
	outcomeEndOfStreamValue
	outcomeFail
)

// RecoveredReason names why a line was dropped or a construct left
// unresolved without aborting the parse.
type RecoveredReason int

const (
	// ReasonMalformedKey: a line reached EOF or '\n' before a key
	// separator was found.
	ReasonMalformedKey RecoveredReason = iota
	// ReasonUnclosedQuote: a quoted or heredoc value reached EOF before
	// its closing quote.
	ReasonUnclosedQuote
	// ReasonUnclosedInterpolation: a "${" was opened but never closed
	// before EOF.
	ReasonUnclosedInterpolation
	// ReasonUnknownEscape: a backslash escape did not map to a
	// recognized control character and was kept as a literal backslash.
	ReasonUnknownEscape
)

func (r RecoveredReason) String() string {
	switch r {
	case ReasonMalformedKey:
		return "malformed key"
	case ReasonUnclosedQuote:
		return "unclosed quote"
	case ReasonUnclosedInterpolation:
		return "unclosed interpolation"
	case ReasonUnknownEscape:
		return "unknown escape sequence"
	default:
		return "unknown"
	}
}

// RecoveredIssue describes one non-fatal event recovered during a
// parse. It never prevents Parse from returning a Pairs value.
type RecoveredIssue struct {
	Reason RecoveredReason
	Key    string // best-effort key the issue occurred under; may be empty
	Offset int    // byte offset in the input where the issue was observed
}

func (i RecoveredIssue) Error() string {
	if i.Key != "" {
		return fmt.Sprintf("%s for %q at offset %d", i.Reason, i.Key, i.Offset)
	}
	return fmt.Sprintf("%s at offset %d", i.Reason, i.Offset)
}

// Diagnostics aggregates RecoveredIssue values across a parse into a
// single error via go-multierror, for callers that want visibility into
// how messy an input file was without the parse itself failing.
type Diagnostics struct {
	errs        *multierror.Error
	onRecovered func(RecoveredIssue)
}

// Record appends one RecoveredIssue to the diagnostics sink and, if a
// callback was wired in by Options.OnRecovered, invokes it synchronously.
func (d *Diagnostics) Record(issue RecoveredIssue) {
	if d == nil {
		return
	}
	d.errs = multierror.Append(d.errs, issue)
	if d.onRecovered != nil {
		d.onRecovered(issue)
	}
}

// Err returns the aggregated error, or nil if nothing was recorded.
func (d *Diagnostics) Err() error {
	if d == nil || d.errs == nil {
		return nil
	}
	return d.errs.ErrorOrNil()
}

// Issues returns the recorded issues in recording order.
func (d *Diagnostics) Issues() []RecoveredIssue {
	if d == nil || d.errs == nil {
		return nil
	}
	out := make([]RecoveredIssue, 0, len(d.errs.Errors))
	for _, e := range d.errs.Errors {
		if issue, ok := e.(RecoveredIssue); ok {
			out = append(out, issue)
		}
	}
	return out
}

// LookupError wraps an error returned by a caller-supplied interpolation
// lookup function with the variable name that triggered it, via
// github.com/pkg/errors so the original error remains inspectable with
// errors.Cause/errors.Unwrap.
func LookupError(name string, cause error) error {
	return errors.Wrapf(cause, "lookup failed for %q", name)
}
