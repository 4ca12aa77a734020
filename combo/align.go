// Package combo implements the CombinationSolver: brute-force small-integer
// and exact rational-linear-algebra search for a 2- or 3-term linear
// combination of shifted, optionally transformed OEIS entries that
// reproduces the query (spec.md §4.6).
package combo

import "math/big"

// applyComponentTransform applies T to terms before shifting/alignment
// (spec.md §4.6). diff and partial_sum mirror the transform package's
// operators, duplicated here in miniature because the solver only ever
// needs these three and ties its alignment math directly to the output
// length each produces.
func applyComponentTransform(terms []*big.Int, t int) []*big.Int {
	switch t {
	case tDiff:
		if len(terms) < 2 {
			return nil
		}
		out := make([]*big.Int, len(terms)-1)
		for i := 0; i+1 < len(terms); i++ {
			out[i] = new(big.Int).Sub(terms[i+1], terms[i])
		}
		return out
	case tPartialSum:
		out := make([]*big.Int, len(terms))
		sum := new(big.Int)
		for i, x := range terms {
			sum = new(big.Int).Add(sum, x)
			out[i] = sum
		}
		return out
	default: // tIdentity
		out := make([]*big.Int, len(terms))
		for i, x := range terms {
			out[i] = new(big.Int).Set(x)
		}
		return out
	}
}

const (
	tIdentity = iota
	tDiff
	tPartialSum
)

func transformWeight(t int) int {
	if t == tIdentity {
		return 0
	}
	return 1
}

// alignment is the resolved (query window, per-component offsets, overlap
// length) for one choice of shifts.
//
// Shift semantics (an Open Question in spec.md §9, resolved here and
// recorded in DESIGN.md): a nonnegative shift s_i skips s_i leading terms
// of the component (mirroring the transform package's shift_forward); a
// negative shift skips |s_i| leading terms of the query instead
// (mirroring shift_back). Every component's per-n offset is then
// s_i + queryStart, where queryStart = max(0, -min(shifts)) is the common
// query window start that keeps every component index non-negative.
type alignment struct {
	queryStart int
	offsets    []int
	length     int
}

// align resolves the overlap window for componentLens (post-transform
// lengths) and shifts against a query of length qLen, requiring at least
// minLen terms of overlap.
func align(qLen int, componentLens []int, shifts []int, minLen int) (alignment, bool) {
	minShift := 0
	for _, s := range shifts {
		if s < minShift {
			minShift = s
		}
	}
	queryStart := 0
	if minShift < 0 {
		queryStart = -minShift
	}

	offsets := make([]int, len(shifts))
	k := qLen - queryStart
	for i, s := range shifts {
		offsets[i] = s + queryStart
		if avail := componentLens[i] - offsets[i]; avail < k {
			k = avail
		}
	}
	if k < minLen {
		return alignment{}, false
	}
	return alignment{queryStart: queryStart, offsets: offsets, length: k}, true
}

// vector extracts T(component)[offset:offset+k].
func vector(terms []*big.Int, offset, k int) []*big.Int {
	return terms[offset : offset+k]
}
