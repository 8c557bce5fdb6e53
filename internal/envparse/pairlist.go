package envparse

import (
	"sync"

	"github.com/envcore/dotparse/internal/envscan"
)

// pairGrowthFactor mirrors envbuf.Buffer's own growth factor, applied here
// to the pair slice itself so a file with many entries reallocates the
// same small number of times a scratch byte buffer would.
const pairGrowthFactor = 1.3

// scratchPoolKeyCap and scratchPoolValueCap size a freshly allocated
// scratch struct's key/value buffers before it ever enters the pool,
// so the first handful of Parse calls each process grow their scratch
// buffers at most once regardless of estimate.
const (
	scratchPoolKeyCap   = 64
	scratchPoolValueCap = 256
)

// scratch holds one key/value pair's in-flight parsing state. Parse
// calls borrow one from scratchPool instead of allocating a fresh pair
// each time, so back-to-back calls in the same process reuse the same
// backing arrays the way the teacher's parseResultPool reuses a
// *parseResult across ParseBytes calls.
type scratch struct {
	k key
	v value
}

var scratchPool = sync.Pool{
	New: func() any {
		s := &scratch{}
		s.k.buffer.Grow(scratchPoolKeyCap)
		s.v.buffer.Grow(scratchPoolValueCap)
		return s
	},
}

func getScratch() *scratch {
	return scratchPool.Get().(*scratch)
}

func putScratch(s *scratch) {
	s.k.reset()
	s.v.reset()
	scratchPool.Put(s)
}

// Pair is one committed key/value entry. Value holds the
// escape-processed, not-yet-interpolated bytes until Finalize runs.
type Pair struct {
	Key   []byte
	Value []byte

	positions []variablePosition
}

// readPair reads one line's worth of key and value from s, reusing the
// scratch key/value state across calls. It reports which outcome the
// line produced; only outcomeSuccess and outcomeEndOfStreamValue
// produce a usable Pair.
func readPair(s *envscan.Stream, k *key, v *value, opts Options, diag *Diagnostics) (Pair, outcome) {
	k.reset()
	v.reset()

	ko := readKey(s, k, opts)
	switch ko {
	case outcomeComment, outcomeFail:
		if diag != nil && ko == outcomeFail {
			diag.Record(RecoveredIssue{Reason: ReasonMalformedKey, Offset: s.Index()})
		}
		return Pair{}, ko
	case outcomeEndOfStreamValue:
		k.rightTrim()
		return Pair{Key: k.commit()}, outcomeEndOfStreamValue
	case outcomeEndOfStreamKey:
		if diag != nil {
			diag.Record(RecoveredIssue{Reason: ReasonMalformedKey, Offset: s.Index()})
		}
		return Pair{}, outcomeEndOfStreamKey
	}

	k.rightTrim()
	keyBytes := k.commit()

	vo := readValue(s, v, opts, diag)
	if vo == outcomeFail {
		return Pair{}, outcomeFail
	}
	positions := append([]variablePosition(nil), v.positions...)
	return Pair{Key: keyBytes, Value: v.commit(), positions: positions}, outcomeSuccess
}

// Pairs is an ordered list of committed, interpolated key/value pairs.
type Pairs []Pair

// Lookup returns the value of the last pair with the given key, the
// same precedence duplicate keys get during interpolation resolution.
func (p Pairs) Lookup(name string) ([]byte, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if string(p[i].Key) == name {
			return p[i].Value, true
		}
	}
	return nil, false
}

// readAll drives readPair across the whole stream, appending each
// successfully parsed pair (including a present-but-empty value from
// an end-of-stream separator) and growing the result slice the way
// envbuf.Buffer grows its backing array.
func readAll(s *envscan.Stream, opts Options, diag *Diagnostics, estimate scanEstimate) Pairs {
	cap0 := estimate.pairCount
	if cap0 <= 0 {
		cap0 = 8
	}
	pairs := make(Pairs, 0, cap0)

	sc := getScratch()
	defer putScratch(sc)
	sc.k.buffer.Grow(estimate.maxKeySize)
	sc.v.buffer.Grow(estimate.maxValueSize)

	for s.Good() {
		pair, o := readPair(s, &sc.k, &sc.v, opts, diag)
		switch o {
		case outcomeSuccess, outcomeEndOfStreamValue, outcomeEndOfStreamKey:
			if o == outcomeEndOfStreamKey {
				continue
			}
			if cap(pairs) == len(pairs) {
				pairs = growPairs(pairs)
			}
			pairs = append(pairs, pair)
		case outcomeComment, outcomeFail:
			continue
		}
	}
	return pairs
}

func growPairs(p Pairs) Pairs {
	newCap := int(float64(cap(p))*pairGrowthFactor) + 1
	grown := make(Pairs, len(p), newCap)
	copy(grown, p)
	return grown
}
