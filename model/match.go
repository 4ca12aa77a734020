package model

import (
	"math/big"

	"github.com/rahidz/oeis-offline-matcher/bigrat"
)

// MatchType distinguishes a prefix hit from a subsequence hit.
type MatchType int

const (
	MatchPrefix MatchType = iota
	MatchSubsequence
)

func (t MatchType) String() string {
	if t == MatchPrefix {
		return "prefix"
	}
	return "subsequence"
}

// ChainStep names one operator application within a transform chain or
// rendered combination component, together with its parameters. Kept as a
// typed value (not a formatted string) so a downstream renderer can
// reconstruct the explanation without touching the store again
// (spec.md §6, SPEC_FULL.md §5).
type ChainStep struct {
	Operator string
	Params   []string
}

// Match is a hit for exact or transform search (spec.md §3).
type Match struct {
	ID             ID
	MatchType      MatchType
	Offset         int
	Length         int
	Score          float64
	TransformChain []ChainStep
	Snippet        []*big.Int
}

// ComponentTransform is the per-component transform applied before
// alignment in combination search (spec.md §4.6).
type ComponentTransform int

const (
	ComponentIdentity ComponentTransform = iota
	ComponentFirstDifference
	ComponentPartialSum
)

func (t ComponentTransform) String() string {
	switch t {
	case ComponentFirstDifference:
		return "first-difference"
	case ComponentPartialSum:
		return "partial-sum"
	default:
		return "identity"
	}
}

// Weight is the transform_weight(T) used in combination complexity scoring
// (spec.md §4.6).
func (t ComponentTransform) Weight() int {
	switch t {
	case ComponentIdentity:
		return 0
	case ComponentFirstDifference, ComponentPartialSum:
		return 1
	default:
		return 0
	}
}

// CombinationMatch is a linear combination of 2 or 3 shifted, optionally
// transformed OEIS entries that reproduces the query exactly.
type CombinationMatch struct {
	ComponentIDs        []ID
	Coefficients        []Rational
	Shifts              []int
	Length              int
	Complexity          int
	Score               float64
	ComponentTransforms []ComponentTransform
}

// Rational is the exact coefficient representation for CombinationMatch,
// aliased from bigrat so callers of model never need to import bigrat
// directly just to read a coefficient.
type Rational = bigrat.Rational
