package envparse

// DefaultMaxInterpolationDepth bounds the recursive re-scan of a
// substituted value for further "${...}" markers, breaking runaway
// recursion even when no cycle exists.
const DefaultMaxInterpolationDepth = 64

// Options controls dialect and behavior switches for a parse. The zero
// value is not a usable Options; use DefaultOptions to get spec-default
// behavior.
type Options struct {
	// AllowSingleLineHeredocs, when true, lets a non-implicit
	// double-quoted or single-quoted value span embedded '\n' bytes
	// until its closing quote instead of being terminated by the first
	// newline.
	AllowSingleLineHeredocs bool

	// SupportExportPrefix strips a leading "export " token from keys.
	SupportExportPrefix bool

	// SupportColonSeparator treats ':' as equivalent to '=' between key
	// and value.
	SupportColonSeparator bool

	// InterpolationEnabled turns on "${NAME}" substitution during
	// finalization. When false, "${...}" sequences are left verbatim in
	// values and no VariablePosition bookkeeping is performed.
	InterpolationEnabled bool

	// MaxInterpolationDepth bounds recursive re-expansion of a
	// substituted value. Zero means DefaultMaxInterpolationDepth.
	MaxInterpolationDepth uint

	// Diagnostics, if non-nil, receives one RecoveredIssue per
	// recovered-but-notable parse event (unclosed quote at EOF,
	// unclosed "${" at EOF, unknown escape sequence). Parsing never
	// fails because of these; this is purely observational.
	Diagnostics *Diagnostics

	// OnRecovered, if non-nil, is invoked synchronously for every
	// RecoveredIssue as it is produced, in addition to any Diagnostics
	// sink. Intended for a caller's logging hook.
	OnRecovered func(RecoveredIssue)
}

// DefaultOptions returns the spec-default dialect: export/colon support
// and interpolation on, single-line heredocs off.
func DefaultOptions() Options {
	return Options{
		AllowSingleLineHeredocs: false,
		SupportExportPrefix:     true,
		SupportColonSeparator:   true,
		InterpolationEnabled:    true,
		MaxInterpolationDepth:   DefaultMaxInterpolationDepth,
	}
}

func (o Options) maxDepth() int {
	if o.MaxInterpolationDepth == 0 {
		return DefaultMaxInterpolationDepth
	}
	return int(o.MaxInterpolationDepth)
}
