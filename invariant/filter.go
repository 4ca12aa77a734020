// Package invariant derives the store query a SequenceQuery must run
// against (spec.md §4.2): a conjunction of invariant-band predicates, or a
// direct prefix-hash probe when one applies.
package invariant

import (
	"math/big"

	"github.com/rahidz/oeis-offline-matcher/model"
	"github.com/rahidz/oeis-offline-matcher/store"
)

// Mode selects which derivation rules apply (spec.md §4.2's exact/
// subsequence rules vs. the relaxed combination-search rules).
type Mode int

const (
	ModePrefix Mode = iota
	ModeSubsequence
	ModeCombination
)

// subsequenceSlack is the nonzero_count slack subtracted for subsequence
// search (spec.md §4.2).
const subsequenceSlack = 1

// subsequenceLengthSlack is spec.md §4.2's "allow_window" term in
// `length >= length(query) + allow_window` for subsequence search. The
// spec does not fix its value; we treat it as 0 (a stored record need only
// be at least as long as the query to possibly contain it as a
// subsequence, which is both necessary and sufficient) -- see DESIGN.md.
const subsequenceLengthSlack = 0

// Plan is the derived store access: either a direct prefix-hash probe
// (most selective, used when spec.md §4.2's rule applies) or a predicate
// scan.
type Plan struct {
	UsePrefixHash bool
	PrefixHash    uint64
	Predicate     store.PredicateSet
}

// Run executes the plan against st, honoring whichever access path was
// selected.
func (p Plan) Run(st store.SequenceStore) store.Cursor {
	if p.UsePrefixHash {
		return st.LookupByPrefixHash(p.PrefixHash)
	}
	return st.Scan(p.Predicate)
}

// Derive builds the Plan for q under mode (spec.md §4.2).
func Derive(q model.SequenceQuery, mode Mode) Plan {
	if mode != ModeCombination && len(q.Wildcards) == 0 && q.Length() >= model.MaxPrefixTerms {
		if mode == ModePrefix {
			return Plan{UsePrefixHash: true, PrefixHash: model.PrefixHash(q.Terms)}
		}
	}

	qInv := q.Invariants()
	pred := store.PredicateSet{}

	if mode != ModeCombination {
		pred.SignPatterns = compatibleSignPatterns(qInv.SignPattern)
		pred.FirstDiffSignPatterns = compatibleSignPatterns(qInv.FirstDiffSignPattern)

		slack := 0
		if mode == ModeSubsequence {
			slack = subsequenceSlack
		}
		nz := q.NonzeroCount() - slack
		if nz > 0 {
			pred.NonzeroCountMin = nz
		}
	}

	switch mode {
	case ModePrefix:
		pred.LengthMin = q.Length()
	case ModeSubsequence:
		pred.LengthMin = q.Length() + subsequenceLengthSlack
	case ModeCombination:
		// No length floor: combination search aligns sub-windows of
		// components, so a stored record shorter than the query may
		// still contribute after a shift (spec.md §4.6).
	}

	if qInv.GCDVal.Sign() != 0 {
		pred.GCDDivides = new(big.Int).Set(qInv.GCDVal)
	}

	return Plan{Predicate: pred}
}

// compatibleSignPatterns returns the set of stored sign patterns compatible
// with a query exhibiting qp, per spec.md §4.2's compatible() relation. A
// nil/empty result means "unconstrained" (no sign information to filter
// on), which is how an all-zero query is resolved -- see DESIGN.md. A
// nonpositive query gets the mirror image of the nonnegative set.
func compatibleSignPatterns(qp model.SignPattern) []model.SignPattern {
	switch qp {
	case model.SignNonnegative:
		return []model.SignPattern{model.SignNonnegative, model.SignAllZero, model.SignMixed}
	case model.SignNonpositive:
		return []model.SignPattern{model.SignNonpositive, model.SignAllZero, model.SignMixed}
	case model.SignAlternating:
		return []model.SignPattern{model.SignAlternating, model.SignMixed, model.SignAllZero}
	case model.SignMixed:
		return []model.SignPattern{model.SignNonnegative, model.SignNonpositive, model.SignAlternating, model.SignMixed}
	case model.SignAllZero:
		return nil
	default:
		return nil
	}
}
