// Package dotparse parses .env-style key/value text into an ordered
// list of pairs. It performs no file I/O, no process-environment
// merging, and no shell evaluation: callers hand it bytes already read
// from wherever they came from, and get back parsed, interpolated
// pairs or a single non-nil error.
package dotparse

import (
	"github.com/envcore/dotparse/internal/envparse"
	"github.com/sirupsen/logrus"
)

// Pair is one parsed key/value entry, in source order.
type Pair struct {
	Key   string
	Value string
}

// Pairs is an ordered list of parsed pairs. Lookup up the stack is
// last-write-wins, matching how repeated keys in a single file are
// resolved during interpolation.
type Pairs []Pair

// Lookup returns the value of the last pair with the given key.
func (p Pairs) Lookup(name string) (string, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].Key == name {
			return p[i].Value, true
		}
	}
	return "", false
}

// Options mirrors envparse.Options at the public boundary. Use
// DefaultOptions for the spec-default dialect.
type Options = envparse.Options

// DefaultOptions returns the spec-default dialect: export/colon
// support and interpolation on, single-line heredocs off.
func DefaultOptions() Options {
	return envparse.DefaultOptions()
}

// Diagnostics collects non-fatal recovered issues from a parse. A nil
// *Diagnostics is a valid, inert sink.
type Diagnostics = envparse.Diagnostics

// RecoveredIssue describes one non-fatal event recovered during a
// parse — a malformed line, an unclosed quote, or similar.
type RecoveredIssue = envparse.RecoveredIssue

// LookupFunc resolves a variable name against an external source ahead
// of the parsed pairs themselves, for "${NAME}" interpolation.
type LookupFunc = envparse.LookupFunc

// Parse parses data with the default dialect and no external lookup.
func Parse(data []byte) (Pairs, error) {
	return ParseWithLookup(data, DefaultOptions(), nil)
}

// ParseWithOptions parses data under the given Options, with no
// external lookup participating in interpolation.
func ParseWithOptions(data []byte, opts Options) (Pairs, error) {
	return ParseWithLookup(data, opts, nil)
}

// ParseWithLookup parses data under opts, consulting lookup (if
// non-nil) before the parsed pairs themselves when resolving
// "${NAME}" markers. Parsing only ever fails from an allocation
// failure (reported as a Go panic, per the runtime's own convention)
// or a non-nil error from lookup; malformed lines are dropped
// individually and surfaced through opts.Diagnostics/OnRecovered
// instead.
func ParseWithLookup(data []byte, opts Options, lookup LookupFunc) (Pairs, error) {
	internalPairs, err := envparse.Parse(data, opts, lookup)
	if err != nil {
		logrus.WithError(err).Debug("dotparse: lookup resolution failed during interpolation")
		return nil, err
	}

	out := make(Pairs, len(internalPairs))
	for i, p := range internalPairs {
		out[i] = Pair{Key: string(p.Key), Value: string(p.Value)}
	}
	return out, nil
}
