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

// tripleSearch is the m=3 branch of spec.md §4.6. Unlike the pair branch,
// three-component coefficients are found by an exact linear solve only: a
// brute-force grid over three coefficient axes is combinatorially too
// large for the same bound that keeps the pair search cheap, and the
// spec's own description of triple search names only the linear-algebra
// route (see DESIGN.md).
func tripleSearch(ctx context.Context, recs []*model.SequenceRecord, q model.SequenceQuery, cfg config.Config) ([]model.CombinationMatch, oeiserr.StageDiagnostic) {
	diag := oeiserr.StageDiagnostic{Stage: "combo_triple"}
	if !cfg.TripleEnabled {
		diag.Skipped = true
		return nil, diag
	}
	if len(recs) > cfg.TripleBucketCap {
		recs = recs[:cfg.TripleBucketCap]
	}

	elapsed := budget.Start()
	transforms := enabledTransforms(cfg.ComboComponentTransform)
	maxChecks := cfg.TripleMaxChecks
	if maxChecks <= 0 {
		maxChecks = defaultMaxChecks
	}
	maxTime := positiveOr(cfg.TripleMaxTime, defaultComboTime)
	checks := 0

	minLen := q.MinMatchLength
	if minLen < 3 {
		minLen = 3
	}

	var matches []model.CombinationMatch

outer:
	// j and k start at i and j respectively, not i+1/j+1: a bucket entry
	// can occupy more than one of the three slots at distinct shifts/
	// transforms (the same self-combination allowance as the pair search).
	// searchShiftsTriple guards against any two slots sharing both an
	// identical record and an identical (transform, shift).
	for i := 0; i < len(recs); i++ {
		for j := i; j < len(recs); j++ {
			for k := j; k < len(recs); k++ {
				if budget.Exceeded(ctx) || elapsed.SecondsSince() > maxTime {
					diag.Truncated = true
					diag.TruncatedBy = oeiserr.CapTripleMaxTime
					break outer
				}
				sameIJ, sameJK, sameIK := i == j, j == k, i == k
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
						for _, tc := range transforms {
							cc := applyComponentTransform(recs[k].Terms, tc)
							if cc == nil {
								continue
							}
							found := searchShiftsTriple(
								recs[i], recs[j], recs[k], ca, cb, cc, ta, tb, tc,
								q, cfg, minLen, &checks, maxChecks, sameIJ, sameJK, sameIK)
							matches = append(matches, found...)
							if checks >= maxChecks {
								diag.Truncated = true
								diag.TruncatedBy = oeiserr.CapTripleMaxChecks
								break outer
							}
						}
					}
				}
			}
		}
	}

	diag.CandidatesPost = len(matches)
	diag.Elapsed = elapsed.SecondsSince()
	return matches, diag
}

func searchShiftsTriple(
	recA, recB, recC *model.SequenceRecord,
	ca, cb, cc []*big.Int,
	ta, tb, tc int,
	q model.SequenceQuery,
	cfg config.Config,
	minLen int,
	checks *int,
	maxChecks int,
	sameIJ, sameJK, sameIK bool,
) []model.CombinationMatch {
	var out []model.CombinationMatch
	for sa := -cfg.ComboMaxShiftBack; sa <= cfg.ComboMaxShift; sa++ {
		for sb := -cfg.ComboMaxShiftBack; sb <= cfg.ComboMaxShift; sb++ {
			for sc := -cfg.ComboMaxShiftBack; sc <= cfg.ComboMaxShift; sc++ {
				if (sameIJ && ta == tb && sa == sb) ||
					(sameJK && tb == tc && sb == sc) ||
					(sameIK && ta == tc && sa == sc) {
					// Two slots would be the exact same (record, transform,
					// shift): their component vectors collapse to an
					// identical column, making the system rank-deficient.
					continue
				}
				*checks++
				if *checks >= maxChecks {
					return out
				}
				al, ok := align(len(q.Terms), []int{len(ca), len(cb), len(cc)}, []int{sa, sb, sc}, minLen)
				if !ok {
					continue
				}
				va := vector(ca, al.offsets[0], al.length)
				vb := vector(cb, al.offsets[1], al.length)
				vc := vector(cc, al.offsets[2], al.length)
				qWindow := q.Terms[al.queryStart : al.queryStart+al.length]

				a, b, c, ok := rationalSolveTriple(va, vb, vc, qWindow, cfg)
				if !ok {
					continue
				}
				complexity := complexityRational([]bigrat.Rational{a, b, c}, []int{sa, sb, sc}, []int{ta, tb, tc})
				out = append(out, model.CombinationMatch{
					ComponentIDs:        []model.ID{recA.ID, recB.ID, recC.ID},
					Coefficients:        []model.Rational{a, b, c},
					Shifts:              []int{sa, sb, sc},
					Length:              al.length,
					Complexity:          complexity,
					ComponentTransforms: []model.ComponentTransform{transformTag(ta), transformTag(tb), transformTag(tc)},
					Score:               score(al.length, complexity),
				})
			}
		}
	}
	return out
}

func rationalSolveTriple(va, vb, vc, q []*big.Int, cfg config.Config) (a, b, c bigrat.Rational, ok bool) {
	if len(q) < 3 {
		return bigrat.Rational{}, bigrat.Rational{}, bigrat.Rational{}, false
	}
	coeffs := make([][]bigrat.Rational, len(q))
	rhs := make([]bigrat.Rational, len(q))
	for n := range q {
		coeffs[n] = []bigrat.Rational{bigrat.FromBigInt(va[n]), bigrat.FromBigInt(vb[n]), bigrat.FromBigInt(vc[n])}
		rhs[n] = bigrat.FromBigInt(q[n])
	}
	sol, solved := solveExact(coeffs, rhs, 3)
	if !solved {
		return bigrat.Rational{}, bigrat.Rational{}, bigrat.Rational{}, false
	}
	a, b, c = sol[0], sol[1], sol[2]
	if !withinCoeffCaps(a, cfg) || !withinCoeffCaps(b, cfg) || !withinCoeffCaps(c, cfg) {
		return bigrat.Rational{}, bigrat.Rational{}, bigrat.Rational{}, false
	}
	for n := range q {
		lhs := a.Mul(bigrat.FromBigInt(va[n])).Add(b.Mul(bigrat.FromBigInt(vb[n]))).Add(c.Mul(bigrat.FromBigInt(vc[n])))
		if !lhs.Equal(bigrat.FromBigInt(q[n])) {
			return bigrat.Rational{}, bigrat.Rational{}, bigrat.Rational{}, false
		}
	}
	return a, b, c, true
}
