package model

import "math/big"

// SignPattern classifies the sign structure of a term series.
type SignPattern int

const (
	SignAllZero SignPattern = iota
	SignNonnegative
	SignNonpositive
	SignAlternating
	SignMixed
)

func (p SignPattern) String() string {
	switch p {
	case SignAllZero:
		return "all-zero"
	case SignNonnegative:
		return "nonnegative"
	case SignNonpositive:
		return "nonpositive"
	case SignAlternating:
		return "alternating"
	case SignMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// classifySignPattern derives the SignPattern of an integer series.
func classifySignPattern(terms []*big.Int) SignPattern {
	if len(terms) == 0 {
		return SignAllZero
	}
	allZero := true
	allNonneg := true
	allNonpos := true
	alternating := true
	var prevSign int
	haveNonzero := false

	for i, t := range terms {
		s := t.Sign()
		if s != 0 {
			allZero = false
		}
		if s < 0 {
			allNonneg = false
		}
		if s > 0 {
			allNonpos = false
		}
		if s != 0 {
			if haveNonzero {
				if s == prevSign {
					alternating = false
				}
			}
			prevSign = s
			haveNonzero = true
		}
		_ = i
	}
	if allZero {
		return SignAllZero
	}
	if allNonneg {
		return SignNonnegative
	}
	if allNonpos {
		return SignNonpositive
	}
	if alternating && haveNonzero {
		return SignAlternating
	}
	return SignMixed
}

// Invariants holds every derived property of a stored sequence (spec.md §3).
type Invariants struct {
	PrefixHash           uint64
	MinVal               *big.Int
	MaxVal               *big.Int
	GCDVal               *big.Int
	IsNondecreasing      bool
	IsNonincreasing      bool
	SignPattern          SignPattern
	NonzeroCount         int
	FirstDiffSignPattern SignPattern
	GrowthRate           float64 // NaN if undefined
	Variance             float64
	DiffVariance         float64
}

// firstDiff returns terms[i+1]-terms[i] for i in [0, len(terms)-1).
func firstDiff(terms []*big.Int) []*big.Int {
	if len(terms) < 2 {
		return nil
	}
	out := make([]*big.Int, len(terms)-1)
	for i := 0; i+1 < len(terms); i++ {
		out[i] = new(big.Int).Sub(terms[i+1], terms[i])
	}
	return out
}

func bigGCDOfAbs(terms []*big.Int) *big.Int {
	g := big.NewInt(0)
	for _, t := range terms {
		a := new(big.Int).Abs(t)
		if a.Sign() == 0 {
			continue
		}
		if g.Sign() == 0 {
			g.Set(a)
		} else {
			g.GCD(nil, nil, g, a)
		}
	}
	return g
}

func floatTerms(terms []*big.Int) []float64 {
	out := make([]float64, len(terms))
	for i, t := range terms {
		f, _ := new(big.Float).SetInt(t).Float64()
		out[i] = f
	}
	return out
}

func meanVariance(xs []float64) (mean, variance float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean = sum / float64(len(xs))
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	variance = ss / float64(len(xs))
	return mean, variance
}

// ComputeInvariants derives Invariants from terms, following spec.md §3
// exactly: PrefixHash is a function only of terms[:min(5,len)].
func ComputeInvariants(terms []*big.Int) Invariants {
	inv := Invariants{}
	inv.PrefixHash = PrefixHash(terms)

	if len(terms) == 0 {
		inv.MinVal = big.NewInt(0)
		inv.MaxVal = big.NewInt(0)
		inv.GCDVal = big.NewInt(0)
		inv.SignPattern = SignAllZero
		inv.FirstDiffSignPattern = SignAllZero
		inv.GrowthRate = nan()
		return inv
	}

	minV, maxV := new(big.Int).Set(terms[0]), new(big.Int).Set(terms[0])
	nonzero := 0
	nondecreasing, nonincreasing := true, true
	for i, t := range terms {
		if t.Cmp(minV) < 0 {
			minV.Set(t)
		}
		if t.Cmp(maxV) > 0 {
			maxV.Set(t)
		}
		if t.Sign() != 0 {
			nonzero++
		}
		if i > 0 {
			if terms[i].Cmp(terms[i-1]) < 0 {
				nondecreasing = false
			}
			if terms[i].Cmp(terms[i-1]) > 0 {
				nonincreasing = false
			}
		}
	}
	inv.MinVal = minV
	inv.MaxVal = maxV
	inv.GCDVal = bigGCDOfAbs(terms)
	inv.IsNondecreasing = nondecreasing
	inv.IsNonincreasing = nonincreasing
	inv.SignPattern = classifySignPattern(terms)
	inv.NonzeroCount = nonzero

	diffs := firstDiff(terms)
	inv.FirstDiffSignPattern = classifySignPattern(diffs)

	ft := floatTerms(terms)
	_, inv.Variance = meanVariance(ft)
	if len(diffs) > 0 {
		_, inv.DiffVariance = meanVariance(floatTerms(diffs))
	}
	inv.GrowthRate = estimateGrowthRate(ft)
	return inv
}

func nan() float64 {
	var zero float64
	return zero / zero
}
