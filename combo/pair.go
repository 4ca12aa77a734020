package combo

import (
	"context"
	"math/big"

	"github.com/rahidz/oeis-offline-matcher/bigrat"
	"github.com/rahidz/oeis-offline-matcher/budget"
	"github.com/rahidz/oeis-offline-matcher/config"
	"github.com/rahidz/oeis-offline-matcher/model"
	"github.com/rahidz/oeis-offline-matcher/oeiserr"
)

// pairSearch is the m=2 branch of spec.md §4.6: integer-coefficient brute
// force over cfg.ComboCoeffsA/ComboCoeffsB, plus an exact rational solve
// for combinations no small integer pair reproduces.
func pairSearch(ctx context.Context, recs []*model.SequenceRecord, q model.SequenceQuery, cfg config.Config) ([]model.CombinationMatch, oeiserr.StageDiagnostic) {
	diag := oeiserr.StageDiagnostic{Stage: "combo_pair"}
	elapsed := budget.Start()
	transforms := enabledTransforms(cfg.ComboComponentTransform)
	checks := 0
	var matches []model.CombinationMatch

	minLen := q.MinMatchLength
	if minLen < 2 {
		minLen = 2
	}

outer:
	// j starts at i, not i+1: a single bucket entry can be paired with
	// itself at two distinct shifts/transforms (spec.md's Lucas-from-
	// Fibonacci scenario, e.g. 1*Fib(n+2) + 1*Fib(n)). searchShiftsPair
	// guards against the degenerate (same record, same transform, same
	// shift) case for both slots.
	for i := 0; i < len(recs); i++ {
		for j := i; j < len(recs); j++ {
			if budget.Exceeded(ctx) || elapsed.SecondsSince() > positiveOr(cfg.ComboMaxTime, defaultComboTime) {
				diag.Truncated = true
				diag.TruncatedBy = oeiserr.CapMaxTime
				break outer
			}
			sameRecord := i == j
			for _, ta := range transforms {
				ca := applyComponentTransform(recs[i].Terms, ta)
				if ca == nil {
					continue
				}
				for _, tb := range transforms {
					cb := applyComponentTransform(recs[j].Terms, tb)
					if cb == nil {
						continue
					}
					found, newChecks, truncated := searchShiftsPair(
						q, recs[i], recs[j], ca, cb, ta, tb, cfg, minLen, checks, sameRecord)
					checks = newChecks
					matches = append(matches, found...)
					if truncated {
						diag.Truncated = true
						diag.TruncatedBy = oeiserr.CapMaxChecks
						break outer
					}
				}
			}
		}
	}

	diag.CandidatesPost = len(matches)
	diag.Elapsed = elapsed.SecondsSince()
	return matches, diag
}

const defaultComboTime = 5.0

func positiveOr(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}

func searchShiftsPair(
	q model.SequenceQuery,
	recA, recB *model.SequenceRecord,
	ca, cb []*big.Int,
	ta, tb int,
	cfg config.Config,
	minLen int,
	checksIn int,
	sameRecord bool,
) (found []model.CombinationMatch, checksOut int, truncated bool) {
	checks := checksIn
	maxChecks := cfg.ComboMaxChecks
	if maxChecks <= 0 {
		maxChecks = defaultMaxChecks
	}

	for sa := -cfg.ComboMaxShiftBack; sa <= cfg.ComboMaxShift; sa++ {
		for sb := -cfg.ComboMaxShiftBack; sb <= cfg.ComboMaxShift; sb++ {
			if sameRecord && ta == tb && sa == sb {
				// Both slots would be the exact same (record, transform,
				// shift): the two component vectors are identical, which
				// collapses to an underdetermined (a+b)*v = q rather than a
				// genuine two-term combination.
				continue
			}
			al, ok := align(len(q.Terms), []int{len(ca), len(cb)}, []int{sa, sb}, minLen)
			if !ok {
				continue
			}
			va := vector(ca, al.offsets[0], al.length)
			vb := vector(cb, al.offsets[1], al.length)
			qWindow := q.Terms[al.queryStart : al.queryStart+al.length]

			intMatch, intFound := bruteForceInteger(va, vb, qWindow, cfg.ComboCoeffsA, cfg.ComboCoeffsB, maxChecks, &checks)
			if intFound {
				found = append(found, buildPairMatch(recA, recB, intMatch.a, intMatch.b, sa, sb, ta, tb, al.length))
			} else if checks >= maxChecks {
				return found, checks, true
			}

			checks++
			if checks >= maxChecks {
				return found, checks, true
			}
			// Every integer solution is also a (denominator-1) rational
			// solution; skip the rational solve once this shift pair
			// already has an integer match to avoid a duplicate
			// CombinationMatch for identical (ids, shifts, transforms,
			// coefficients).
			if !intFound {
				if a, b, ok := rationalSolvePair(va, vb, qWindow, cfg); ok {
					found = append(found, buildRationalPairMatch(recA, recB, a, b, sa, sb, ta, tb, al.length))
				}
			}
		}
	}
	return found, checks, false
}

const defaultMaxChecks = 200000

type intCoeffs struct{ a, b int }

// bruteForceInteger scans the configured small-integer coefficient grid,
// rejecting each (a,b) at the first mismatched position. checks is bumped
// once per (a,b) trial; the caller treats reaching maxChecks as a hard
// stop.
func bruteForceInteger(va, vb, q []*big.Int, coeffsA, coeffsB []int, maxChecks int, checks *int) (intCoeffs, bool) {
	for _, a := range coeffsA {
		for _, b := range coeffsB {
			*checks++
			if *checks >= maxChecks {
				return intCoeffs{}, false
			}
			if verifyIntCombo(va, vb, q, a, b) {
				return intCoeffs{a: a, b: b}, true
			}
		}
	}
	return intCoeffs{}, false
}

func verifyIntCombo(va, vb, q []*big.Int, a, b int) bool {
	ba, bb := big.NewInt(int64(a)), big.NewInt(int64(b))
	tmp := new(big.Int)
	for n := range q {
		tmp.Mul(ba, va[n])
		tmp.Add(tmp, new(big.Int).Mul(bb, vb[n]))
		if tmp.Cmp(q[n]) != 0 {
			return false
		}
	}
	return true
}

// rationalSolvePair solves [va vb] [a b]^T = q exactly over the first two
// linearly independent rows, verifying the solution across the whole
// window and rejecting coefficients outside the configured caps.
func rationalSolvePair(va, vb, q []*big.Int, cfg config.Config) (bigrat.Rational, bigrat.Rational, bool) {
	if len(q) < 2 {
		return bigrat.Rational{}, bigrat.Rational{}, false
	}
	coeffs := make([][]bigrat.Rational, len(q))
	rhs := make([]bigrat.Rational, len(q))
	for n := range q {
		coeffs[n] = []bigrat.Rational{bigrat.FromBigInt(va[n]), bigrat.FromBigInt(vb[n])}
		rhs[n] = bigrat.FromBigInt(q[n])
	}
	sol, ok := solveExact(coeffs, rhs, 2)
	if !ok {
		return bigrat.Rational{}, bigrat.Rational{}, false
	}
	a, b := sol[0], sol[1]
	if !withinCoeffCaps(a, cfg) || !withinCoeffCaps(b, cfg) {
		return bigrat.Rational{}, bigrat.Rational{}, false
	}
	for n := range q {
		lhs := a.Mul(bigrat.FromBigInt(va[n])).Add(b.Mul(bigrat.FromBigInt(vb[n])))
		if !lhs.Equal(bigrat.FromBigInt(q[n])) {
			return bigrat.Rational{}, bigrat.Rational{}, false
		}
	}
	return a, b, true
}

func withinCoeffCaps(r bigrat.Rational, cfg config.Config) bool {
	maxDenom := cfg.ComboCoeffDenom
	if maxDenom <= 0 {
		maxDenom = 1
	}
	if r.Den().Cmp(big.NewInt(int64(maxDenom))) > 0 {
		return false
	}
	maxNum := cfg.ComboMaxCoeffNum
	if maxNum <= 0 {
		return true
	}
	return new(big.Int).Abs(r.Num()).Cmp(big.NewInt(int64(maxNum))) <= 0
}

func buildPairMatch(recA, recB *model.SequenceRecord, a, b, sa, sb, ta, tb, length int) model.CombinationMatch {
	complexity := complexityInt([]int{a, b}, []int{sa, sb}, []int{ta, tb})
	return model.CombinationMatch{
		ComponentIDs:        []model.ID{recA.ID, recB.ID},
		Coefficients:        []model.Rational{bigrat.FromInt(int64(a)), bigrat.FromInt(int64(b))},
		Shifts:              []int{sa, sb},
		Length:              length,
		Complexity:          complexity,
		ComponentTransforms: []model.ComponentTransform{transformTag(ta), transformTag(tb)},
		Score:               score(length, complexity),
	}
}

func buildRationalPairMatch(recA, recB *model.SequenceRecord, a, b bigrat.Rational, sa, sb, ta, tb, length int) model.CombinationMatch {
	complexity := complexityRational([]bigrat.Rational{a, b}, []int{sa, sb}, []int{ta, tb})
	return model.CombinationMatch{
		ComponentIDs:        []model.ID{recA.ID, recB.ID},
		Coefficients:        []model.Rational{a, b},
		Shifts:              []int{sa, sb},
		Length:              length,
		Complexity:          complexity,
		ComponentTransforms: []model.ComponentTransform{transformTag(ta), transformTag(tb)},
		Score:               score(length, complexity),
	}
}

func enabledTransforms(names []string) []int {
	if len(names) == 0 {
		return []int{tIdentity}
	}
	out := make([]int, 0, len(names))
	for _, n := range names {
		switch n {
		case "identity":
			out = append(out, tIdentity)
		case "diff":
			out = append(out, tDiff)
		case "partial_sum":
			out = append(out, tPartialSum)
		}
	}
	if len(out) == 0 {
		out = append(out, tIdentity)
	}
	return out
}

func transformTag(t int) model.ComponentTransform {
	switch t {
	case tDiff:
		return model.ComponentFirstDifference
	case tPartialSum:
		return model.ComponentPartialSum
	default:
		return model.ComponentIdentity
	}
}

// score implements spec.md §4.6: length / (1 + complexity).
func score(length, complexity int) float64 {
	return float64(length) / float64(1+complexity)
}

func complexityInt(coeffs, shifts, transforms []int) int {
	c := len(coeffs)
	for _, x := range coeffs {
		c += absInt(x)
	}
	for _, s := range shifts {
		c += absInt(s)
	}
	for _, t := range transforms {
		c += transformWeight(t)
	}
	return c
}

func complexityRational(coeffs []bigrat.Rational, shifts, transforms []int) int {
	c := len(coeffs)
	for _, r := range coeffs {
		c += int(new(big.Int).Abs(r.Num()).Int64()) // bounded by ComboMaxCoeffNum
	}
	for _, s := range shifts {
		c += absInt(s)
	}
	for _, t := range transforms {
		c += transformWeight(t)
	}
	return c
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
