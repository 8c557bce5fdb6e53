package envparse

// LookupFunc resolves a variable name against an external source (for
// example process environment variables) before the already-parsed
// PairList is consulted. found is false when the external source has
// no opinion about name; err aborts the whole parse when non-nil.
type LookupFunc func(name string) (value []byte, found bool, err error)

// Finalize resolves every "${NAME}" marker recorded during parsing
// against lookup (tried first) and the pairs themselves (forward
// references included), rewriting each pair's Value in place. It is a
// pure function of the pairs' raw values and lookup's answers, so
// calling it twice on the same input produces the same result.
func Finalize(pairs Pairs, opts Options, lookup LookupFunc) error {
	if !opts.InterpolationEnabled {
		return nil
	}

	byName := make(map[string]int, len(pairs))
	for i := range pairs {
		byName[string(pairs[i].Key)] = i
	}

	resolved := make([][]byte, len(pairs))
	depth := opts.maxDepth()

	for i := range pairs {
		visited := map[string]bool{}
		current := pairs[i].Value
		markers := pairs[i].positions

		for iter := 0; iter < depth; iter++ {
			if len(markers) == 0 {
				break
			}
			next, err := substitute(current, markers, visited, lookup, byName, pairs)
			if err != nil {
				return err
			}
			current = next
			markers = scanMarkers(current)
		}
		resolved[i] = current
	}

	for i := range pairs {
		pairs[i].Value = resolved[i]
		pairs[i].positions = nil
	}
	return nil
}

// substitute rewrites value by replacing every recorded marker with its
// resolved bytes, building a fresh buffer left to right.
func substitute(value []byte, markers []variablePosition, visited map[string]bool, lookup LookupFunc, byName map[string]int, pairs Pairs) ([]byte, error) {
	out := make([]byte, 0, len(value))
	cursor := 0
	for _, m := range markers {
		out = append(out, value[cursor:m.start]...)
		name := string(value[m.nameStart:m.nameEnd])
		resolvedBytes, err := resolveName(name, visited, lookup, byName, pairs)
		if err != nil {
			return nil, err
		}
		out = append(out, resolvedBytes...)
		cursor = m.end
	}
	out = append(out, value[cursor:]...)
	return out, nil
}

// resolveName answers one "${NAME}" lookup. A name already present in
// visited is a cycle and resolves to an empty expansion rather than
// recursing forever.
func resolveName(name string, visited map[string]bool, lookup LookupFunc, byName map[string]int, pairs Pairs) ([]byte, error) {
	if visited[name] {
		return nil, nil
	}
	visited[name] = true

	if lookup != nil {
		v, found, err := lookup(name)
		if err != nil {
			return nil, LookupError(name, err)
		}
		if found {
			return v, nil
		}
	}

	if idx, ok := byName[name]; ok {
		return pairs[idx].Value, nil
	}
	return nil, nil
}

// scanMarkers finds "${NAME}" spans in an already-flat byte slice (no
// quote-mode awareness is needed here: by the time a value reaches a
// second substitution round it has no quoting left, only the
// escape-parity check that keeps a backslash-escaped marker literal).
func scanMarkers(buf []byte) []variablePosition {
	var out []variablePosition
	for i := 0; i < len(buf); i++ {
		if buf[i] != '{' {
			continue
		}
		if trailingBackslashOdd(buf, i) {
			continue
		}
		markerStart := i
		if i > 0 && buf[i-1] == '$' {
			markerStart = i - 1
		} else {
			continue // a bare '{' with no preceding '$' never opens.
		}
		nameStart := i + 1
		j := nameStart
		for j < len(buf) && buf[j] != '}' {
			j++
		}
		if j == len(buf) {
			break // unterminated; nothing further to find.
		}
		if trailingBackslashOdd(buf, j) {
			i = j
			continue
		}
		out = append(out, variablePosition{
			start:     markerStart,
			end:       j + 1,
			nameStart: nameStart,
			nameEnd:   j,
		})
		i = j
	}
	return out
}
