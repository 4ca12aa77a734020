package invariant

import (
	"math/big"
	"testing"

	"github.com/rahidz/oeis-offline-matcher/model"
)

func bigs(xs ...int64) []*big.Int {
	out := make([]*big.Int, len(xs))
	for i, x := range xs {
		out[i] = big.NewInt(x)
	}
	return out
}

func TestDerive_PrefixHashShortcut(t *testing.T) {
	q := model.SequenceQuery{Terms: bigs(1, 1, 2, 3, 5)}
	plan := Derive(q, ModePrefix)
	if !plan.UsePrefixHash {
		t.Fatal("a wildcard-free query at or above MaxPrefixTerms should use the prefix-hash shortcut")
	}
	if plan.PrefixHash != model.PrefixHash(q.Terms) {
		t.Error("plan's prefix hash should match model.PrefixHash(q.Terms)")
	}
}

func TestDerive_ShortQueryFallsBackToPredicateScan(t *testing.T) {
	q := model.SequenceQuery{Terms: bigs(1, 1, 2)}
	plan := Derive(q, ModePrefix)
	if plan.UsePrefixHash {
		t.Error("a query shorter than MaxPrefixTerms should not use the prefix-hash shortcut")
	}
	if plan.Predicate.LengthMin != 3 {
		t.Errorf("Predicate.LengthMin = %d, want 3", plan.Predicate.LengthMin)
	}
}

func TestDerive_WildcardsDisablePrefixHash(t *testing.T) {
	q := model.SequenceQuery{Terms: bigs(1, 1, 2, 3, 5), Wildcards: []int{2}}
	plan := Derive(q, ModePrefix)
	if plan.UsePrefixHash {
		t.Error("a query with wildcards must never use the prefix-hash shortcut")
	}
}

func TestDerive_SubsequenceRelaxesNonzeroCount(t *testing.T) {
	// Shorter than MaxPrefixTerms, so prefix mode builds a predicate scan
	// rather than a prefix-hash probe with an empty predicate.
	q := model.SequenceQuery{Terms: bigs(1, 1, 2, 3)}
	prefixPlan := Derive(q, ModePrefix)
	subPlan := Derive(q, ModeSubsequence)
	if subPlan.Predicate.NonzeroCountMin >= prefixPlan.Predicate.NonzeroCountMin {
		t.Error("subsequence mode should relax the nonzero-count floor by subsequenceSlack")
	}
	if subPlan.Predicate.LengthMin < q.Length() {
		t.Error("subsequence mode should still require at least the query's own length")
	}
}

func TestDerive_CombinationModeDropsConstraints(t *testing.T) {
	q := model.SequenceQuery{Terms: bigs(1, 1, 2, 3, 5, 8)}
	plan := Derive(q, ModeCombination)
	if plan.Predicate.LengthMin != 0 {
		t.Error("combination mode should not impose a length floor")
	}
	if plan.Predicate.NonzeroCountMin != 0 {
		t.Error("combination mode should not impose a nonzero-count floor")
	}
	if len(plan.Predicate.SignPatterns) != 0 {
		t.Error("combination mode should not constrain sign pattern")
	}
}

func TestDerive_GCDConstraint(t *testing.T) {
	q := model.SequenceQuery{Terms: bigs(2, 4, 6)}
	plan := Derive(q, ModePrefix)
	if plan.Predicate.GCDDivides == nil || plan.Predicate.GCDDivides.Int64() != 2 {
		t.Errorf("GCDDivides = %v, want 2", plan.Predicate.GCDDivides)
	}
}

func TestCompatibleSignPatterns(t *testing.T) {
	nonneg := compatibleSignPatterns(model.SignNonnegative)
	if !containsSign(nonneg, model.SignNonnegative) || !containsSign(nonneg, model.SignAllZero) {
		t.Error("nonnegative should be compatible with nonnegative and all-zero stored patterns")
	}
	if containsSign(nonneg, model.SignNonpositive) {
		t.Error("nonnegative query should not be compatible with a strictly nonpositive stored pattern")
	}
	if compatibleSignPatterns(model.SignAllZero) != nil {
		t.Error("all-zero query sign pattern resolves to unconstrained (see DESIGN.md)")
	}
}

func containsSign(set []model.SignPattern, v model.SignPattern) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
