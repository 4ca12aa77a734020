// Package similarity implements the SimilarityRanker: best-fit affine
// (scale+offset) mean-squared-error and Pearson correlation scoring over a
// predicate-filtered candidate stream (spec.md §4.5).
package similarity

import (
	"context"
	"math"
	"math/big"
	"sort"

	"github.com/rahidz/oeis-offline-matcher/budget"
	"github.com/rahidz/oeis-offline-matcher/config"
	"github.com/rahidz/oeis-offline-matcher/invariant"
	"github.com/rahidz/oeis-offline-matcher/model"
	"github.com/rahidz/oeis-offline-matcher/oeiserr"
	"github.com/rahidz/oeis-offline-matcher/store"
)

// scored is an internal candidate awaiting the top-K composite sort
// (spec.md §4.5: "(-|rho|, nmse, id)").
type scored struct {
	rec  *model.SequenceRecord
	rho  float64
	nmse float64
}

// Rank scores every predicate-filtered candidate against q by affine fit
// and correlation, returning the top cfg.SimilarityTopK (capped at 200)
// ordered by the spec's composite key.
//
// Because an affine fit can flip sign (a negative scale factor), the
// candidate stream uses the same relaxed predicate set combination search
// uses (sign-pattern and nonzero_count constraints dropped) rather than
// the stricter exact-match predicate -- see DESIGN.md.
func Rank(ctx context.Context, st store.SequenceStore, q model.SequenceQuery, cfg config.Config) ([]model.CandidateEntry, oeiserr.StageDiagnostic) {
	diag := oeiserr.StageDiagnostic{Stage: "similarity"}
	elapsed := budget.Start()

	plan := invariant.Derive(q, invariant.ModeCombination)
	cur := plan.Run(st)
	defer cur.Close()

	qFloat := floatTerms(q.Terms)
	maxAbsQ := maxAbs(qFloat)

	topK := cfg.SimilarityTopK
	if topK <= 0 {
		topK = 100
	} else if topK > 200 {
		topK = 200
	}

	var candidates []scored
	pre := 0
	var truncated bool
	for {
		if budget.Exceeded(ctx) {
			truncated = true
			break
		}
		rec, ok, err := cur.Next(ctx)
		if err != nil || !ok {
			break
		}
		pre++
		k := minInt(len(q.Terms), rec.Length)
		if k < q.MinMatchLength || k < 2 {
			continue
		}
		rFloat := floatTerms(rec.Terms[:k])
		alpha, beta, ok := affineFit(rFloat, qFloat[:k])
		if !ok {
			continue
		}
		mse := meanSquaredError(rFloat, qFloat[:k], alpha, beta)
		nmse := mse / (1 + maxAbsQ*maxAbsQ)
		rho := pearson(rFloat, qFloat[:k])
		if math.Abs(rho) < cfg.SimilarityMinCorr || nmse > cfg.SimilarityMaxNMSE {
			continue
		}
		candidates = append(candidates, scored{rec: rec, rho: rho, nmse: nmse})
	}

	sort.Slice(candidates, func(i, j int) bool {
		ai, aj := math.Abs(candidates[i].rho), math.Abs(candidates[j].rho)
		if ai != aj {
			return ai > aj
		}
		if candidates[i].nmse != candidates[j].nmse {
			return candidates[i].nmse < candidates[j].nmse
		}
		return candidates[i].rec.ID < candidates[j].rec.ID
	})
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	out := make([]model.CandidateEntry, len(candidates))
	for i, c := range candidates {
		out[i] = model.CandidateEntry{Record: c.rec, RankScore: math.Abs(c.rho)}
	}

	diag.CandidatesPre = pre
	diag.CandidatesPost = len(out)
	diag.Elapsed = elapsed.SecondsSince()
	diag.Truncated = truncated
	if truncated {
		diag.TruncatedBy = oeiserr.CapMaxTime
	}
	return out, diag
}

func floatTerms(xs []*big.Int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		f, _ := new(big.Float).SetInt(x).Float64()
		out[i] = f
	}
	return out
}

func maxAbs(xs []float64) float64 {
	m := 0.0
	for _, x := range xs {
		if math.Abs(x) > m {
			m = math.Abs(x)
		}
	}
	return m
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// affineFit solves the least-squares alpha, beta minimizing
// sum(alpha*r_i+beta-q_i)^2 via the standard covariance/variance ratio.
// ok is false when r is constant (zero variance), which makes the slope
// undefined.
func affineFit(r, q []float64) (alpha, beta float64, ok bool) {
	n := float64(len(r))
	var sumR, sumQ float64
	for i := range r {
		sumR += r[i]
		sumQ += q[i]
	}
	meanR, meanQ := sumR/n, sumQ/n

	var cov, varR float64
	for i := range r {
		dr := r[i] - meanR
		cov += dr * (q[i] - meanQ)
		varR += dr * dr
	}
	if varR == 0 {
		return 0, 0, false
	}
	alpha = cov / varR
	beta = meanQ - alpha*meanR
	return alpha, beta, true
}

func meanSquaredError(r, q []float64, alpha, beta float64) float64 {
	var sum float64
	for i := range r {
		d := alpha*r[i] + beta - q[i]
		sum += d * d
	}
	return sum / float64(len(r))
}

// pearson returns the Pearson correlation coefficient of r and q.
func pearson(r, q []float64) float64 {
	n := float64(len(r))
	var sumR, sumQ float64
	for i := range r {
		sumR += r[i]
		sumQ += q[i]
	}
	meanR, meanQ := sumR/n, sumQ/n

	var cov, varR, varQ float64
	for i := range r {
		dr := r[i] - meanR
		dq := q[i] - meanQ
		cov += dr * dq
		varR += dr * dr
		varQ += dq * dq
	}
	if varR == 0 || varQ == 0 {
		return 0
	}
	return cov / math.Sqrt(varR*varQ)
}
