package transform

import (
	"math/big"
	"strconv"

	"github.com/rahidz/oeis-offline-matcher/model"
)

var scaleAlphas = []int64{-3, -2, -1, 2, 3}

type affinePair struct{ alpha, beta int64 }

var affinePairs = []affinePair{
	{2, 0}, {3, 0}, {-1, 0},
	{2, 1}, {2, -1}, {1, 1}, {1, -1}, {-1, 1},
}

var shiftDepths = []int64{1, 2}
var decimateKs = []int64{2, 3}
var movsumKs = []int64{2, 3, 4}

func step(op string, params ...string) model.ChainStep {
	return model.ChainStep{Operator: op, Params: params}
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

// basicOperators returns the table rows for spec.md §4.4's weight-1
// operators.
func basicOperators() []Spec {
	return []Spec{
		{Tag: "scale", Weight: 1, Variants: scaleVariants},
		{Tag: "affine", Weight: 1, Variants: affineVariants},
		{Tag: "shift_forward", Weight: 1, Variants: shiftForwardVariants},
		{Tag: "shift_back", Weight: 1, Variants: shiftBackVariants},
		{Tag: "diff", Weight: 1, Variants: diffVariants},
		{Tag: "diff2", Weight: 1, Variants: diff2Variants},
		{Tag: "partial_sum", Weight: 1, Variants: partialSumVariants},
		{Tag: "abs", Weight: 1, Variants: absVariants},
		{Tag: "gcd_norm", Weight: 1, Variants: gcdNormVariants},
		{Tag: "decimate", Weight: 1, Variants: decimateVariants},
		{Tag: "reverse", Weight: 1, Variants: reverseVariants},
		{Tag: "even_indexed", Weight: 1, Variants: evenIndexedVariants},
		{Tag: "odd_indexed", Weight: 1, Variants: oddIndexedVariants},
		{Tag: "movsum", Weight: 1, Variants: movsumVariants},
		{Tag: "cumprod", Weight: 1, Variants: cumprodVariants},
	}
}

func scaleVariants() []Variant {
	out := make([]Variant, 0, len(scaleAlphas))
	for _, a := range scaleAlphas {
		alpha := a
		out = append(out, Variant{
			Step: step("scale", itoa(alpha)),
			Apply: func(in []*big.Int) ([]*big.Int, bool) {
				return mapTerms(in, func(x *big.Int) *big.Int {
					return new(big.Int).Mul(x, bi(alpha))
				}), true
			},
		})
	}
	return out
}

func affineVariants() []Variant {
	out := make([]Variant, 0, len(affinePairs))
	for _, p := range affinePairs {
		alpha, beta := p.alpha, p.beta
		out = append(out, Variant{
			Step: step("affine", itoa(alpha), itoa(beta)),
			Apply: func(in []*big.Int) ([]*big.Int, bool) {
				return mapTerms(in, func(x *big.Int) *big.Int {
					return new(big.Int).Add(new(big.Int).Mul(x, bi(alpha)), bi(beta))
				}), true
			},
		})
	}
	return out
}

func shiftForwardVariants() []Variant {
	out := make([]Variant, 0, len(shiftDepths))
	for _, k := range shiftDepths {
		kk := int(k)
		out = append(out, Variant{
			Step: step("shift_forward", itoa(k)),
			Apply: func(in []*big.Int) ([]*big.Int, bool) {
				if kk >= len(in) {
					return nil, false
				}
				return cloneAll(in[kk:]), true
			},
		})
	}
	return out
}

func shiftBackVariants() []Variant {
	out := make([]Variant, 0, len(shiftDepths))
	for _, k := range shiftDepths {
		kk := int(k)
		out = append(out, Variant{
			Step: step("shift_back", itoa(k)),
			Apply: func(in []*big.Int) ([]*big.Int, bool) {
				if kk >= len(in) {
					return nil, false
				}
				return cloneAll(in[:len(in)-kk]), true
			},
		})
	}
	return out
}

func diffVariants() []Variant {
	return []Variant{{
		Step: step("diff"),
		Apply: func(in []*big.Int) ([]*big.Int, bool) {
			if len(in) < 2 {
				return nil, false
			}
			return diffOnce(in), true
		},
	}}
}

func diffOnce(in []*big.Int) []*big.Int {
	out := make([]*big.Int, len(in)-1)
	for i := 0; i+1 < len(in); i++ {
		out[i] = new(big.Int).Sub(in[i+1], in[i])
	}
	return out
}

func diff2Variants() []Variant {
	return []Variant{{
		Step: step("diff2"),
		Apply: func(in []*big.Int) ([]*big.Int, bool) {
			if len(in) < 3 {
				return nil, false
			}
			return diffOnce(diffOnce(in)), true
		},
	}}
}

func partialSumVariants() []Variant {
	return []Variant{{
		Step: step("partial_sum"),
		Apply: func(in []*big.Int) ([]*big.Int, bool) {
			if len(in) == 0 {
				return nil, false
			}
			out := make([]*big.Int, len(in))
			sum := new(big.Int)
			for i, x := range in {
				sum = new(big.Int).Add(sum, x)
				out[i] = sum
			}
			return out, true
		},
	}}
}

func absVariants() []Variant {
	return []Variant{{
		Step: step("abs"),
		Apply: func(in []*big.Int) ([]*big.Int, bool) {
			if len(in) == 0 {
				return nil, false
			}
			return mapTerms(in, func(x *big.Int) *big.Int { return new(big.Int).Abs(x) }), true
		},
	}}
}

func gcdNormVariants() []Variant {
	return []Variant{{
		Step: step("gcd_norm"),
		Apply: func(in []*big.Int) ([]*big.Int, bool) {
			if len(in) == 0 {
				return nil, false
			}
			g := bigGCDOfAbs(in)
			if g.Cmp(bi(1)) <= 0 {
				return cloneAll(in), true
			}
			return mapTerms(in, func(x *big.Int) *big.Int {
				return new(big.Int).Quo(x, g)
			}), true
		},
	}}
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

func decimateVariants() []Variant {
	out := make([]Variant, 0, len(decimateKs))
	for _, k := range decimateKs {
		kk := int(k)
		out = append(out, Variant{
			Step: step("decimate", itoa(k)),
			Apply: func(in []*big.Int) ([]*big.Int, bool) {
				if len(in) == 0 {
					return nil, false
				}
				n := ceilDiv(len(in), kk)
				out := make([]*big.Int, 0, n)
				for i := 0; i < len(in); i += kk {
					out = append(out, new(big.Int).Set(in[i]))
				}
				return out, true
			},
		})
	}
	return out
}

func reverseVariants() []Variant {
	return []Variant{{
		Step: step("reverse"),
		Apply: func(in []*big.Int) ([]*big.Int, bool) {
			if len(in) == 0 {
				return nil, false
			}
			out := make([]*big.Int, len(in))
			for i, x := range in {
				out[len(in)-1-i] = new(big.Int).Set(x)
			}
			return out, true
		},
	}}
}

func evenIndexedVariants() []Variant {
	return []Variant{{
		Step: step("even_indexed"),
		Apply: func(in []*big.Int) ([]*big.Int, bool) {
			if len(in) == 0 {
				return nil, false
			}
			var out []*big.Int
			for i := 0; i < len(in); i += 2 {
				out = append(out, new(big.Int).Set(in[i]))
			}
			return out, true
		},
	}}
}

func oddIndexedVariants() []Variant {
	return []Variant{{
		Step: step("odd_indexed"),
		Apply: func(in []*big.Int) ([]*big.Int, bool) {
			if len(in) < 2 {
				return nil, false
			}
			var out []*big.Int
			for i := 1; i < len(in); i += 2 {
				out = append(out, new(big.Int).Set(in[i]))
			}
			return out, true
		},
	}}
}

func movsumVariants() []Variant {
	out := make([]Variant, 0, len(movsumKs))
	for _, k := range movsumKs {
		kk := int(k)
		out = append(out, Variant{
			Step: step("movsum", itoa(k)),
			Apply: func(in []*big.Int) ([]*big.Int, bool) {
				if kk > len(in) {
					return nil, false
				}
				n := len(in) - kk + 1
				out := make([]*big.Int, n)
				window := new(big.Int)
				for i := 0; i < kk; i++ {
					window.Add(window, in[i])
				}
				out[0] = new(big.Int).Set(window)
				for i := 1; i < n; i++ {
					window = new(big.Int).Add(window, in[i+kk-1])
					window = new(big.Int).Sub(window, in[i-1])
					out[i] = new(big.Int).Set(window)
				}
				return out, true
			},
		})
	}
	return out
}

func cumprodVariants() []Variant {
	return []Variant{{
		Step: step("cumprod"),
		Apply: func(in []*big.Int) ([]*big.Int, bool) {
			if len(in) == 0 {
				return nil, false
			}
			out := make([]*big.Int, len(in))
			prod := big.NewInt(1)
			for i, x := range in {
				prod = new(big.Int).Mul(prod, x)
				out[i] = new(big.Int).Set(prod)
			}
			return out, true
		},
	}}
}
