package model

import "math/big"

// DefaultMinMatchLength is the default minimum accepted query/match overlap
// (spec.md §3).
const DefaultMinMatchLength = 3

// DefaultMaxWildcards is the default cap on '?' positions in a query.
const DefaultMaxWildcards = 2

// SequenceQuery is a user-supplied integer sequence to explain.
type SequenceQuery struct {
	Terms            []*big.Int
	MinMatchLength   int
	AllowSubsequence bool
	// Wildcards holds the zero-based positions within Terms that match any
	// integer. len(Wildcards) must be <= max_wildcards.
	Wildcards []int
}

// Length returns the number of terms in the query.
func (q SequenceQuery) Length() int { return len(q.Terms) }

// IsWildcard reports whether position i is a wildcard position.
func (q SequenceQuery) IsWildcard(i int) bool {
	for _, w := range q.Wildcards {
		if w == i {
			return true
		}
	}
	return false
}

// NonzeroCount counts non-wildcard, nonzero terms.
func (q SequenceQuery) NonzeroCount() int {
	n := 0
	for i, t := range q.Terms {
		if q.IsWildcard(i) {
			continue
		}
		if t.Sign() != 0 {
			n++
		}
	}
	return n
}

// Invariants computes the same derived invariants a stored record would
// have, so the query can be compared against the store's invariant bands.
// Wildcard positions are excluded from the underlying term series used for
// sign/growth/variance classification, since they carry no value.
func (q SequenceQuery) Invariants() Invariants {
	if len(q.Wildcards) == 0 {
		return ComputeInvariants(q.Terms)
	}
	filtered := make([]*big.Int, 0, len(q.Terms))
	for i, t := range q.Terms {
		if q.IsWildcard(i) {
			continue
		}
		filtered = append(filtered, t)
	}
	return ComputeInvariants(filtered)
}
