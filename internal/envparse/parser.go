package envparse

import "github.com/envcore/dotparse/internal/envscan"

// Parse runs the full pipeline described by SPEC_FULL.md section 4 over
// data: pre-scan for sizing hints, read every pair, then finalize
// interpolation against lookup (which may be nil).
func Parse(data []byte, opts Options, lookup LookupFunc) (Pairs, error) {
	diag := opts.Diagnostics
	if opts.OnRecovered != nil {
		if diag == nil {
			diag = &Diagnostics{}
		}
		diag.onRecovered = opts.OnRecovered
	}

	est := prescan(data)
	s := envscan.New(data)
	pairs := readAll(s, opts, diag, est)

	if err := Finalize(pairs, opts, lookup); err != nil {
		return nil, err
	}
	return pairs, nil
}
