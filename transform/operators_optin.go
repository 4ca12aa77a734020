package transform

import "math/big"

var digitSumBases = []int64{2, 10}
var concatIndexBases = []int64{10}

// optInOperators returns the weight-2 table rows (spec.md §4.4: "opt-in
// with high complexity" and the other opt-in rows).
func optInOperators() []Spec {
	return []Spec{
		{Tag: "popcount", Weight: 2, Variants: popcountVariants},
		{Tag: "digit_sum", Weight: 2, Variants: digitSumVariants},
		{Tag: "rle", Weight: 2, Variants: rleVariants},
		{Tag: "rle_decode", Weight: 2, Variants: rleDecodeVariants},
		{Tag: "concat_index", Weight: 2, Variants: concatIndexVariants},
	}
}

func popcountVariants() []Variant {
	return []Variant{{
		Step: step("popcount"),
		Apply: func(in []*big.Int) ([]*big.Int, bool) {
			if len(in) == 0 {
				return nil, false
			}
			return mapTerms(in, func(x *big.Int) *big.Int {
				abs := new(big.Int).Abs(x)
				count := 0
				for _, w := range abs.Bits() {
					count += popcountWord(uint64(w))
				}
				return bi(int64(count))
			}), true
		},
	}}
}

func popcountWord(w uint64) int {
	n := 0
	for w != 0 {
		w &= w - 1
		n++
	}
	return n
}

func digitSumVariants() []Variant {
	out := make([]Variant, 0, len(digitSumBases))
	for _, b := range digitSumBases {
		base := b
		out = append(out, Variant{
			Step: step("digit_sum", itoa(base)),
			Apply: func(in []*big.Int) ([]*big.Int, bool) {
				if len(in) == 0 || base < 2 {
					return nil, false
				}
				return mapTerms(in, func(x *big.Int) *big.Int {
					return bi(int64(digitSumInBase(x, base)))
				}), true
			},
		})
	}
	return out
}

func digitSumInBase(x *big.Int, base int64) int64 {
	n := new(big.Int).Abs(x)
	b := big.NewInt(base)
	var sum int64
	rem := new(big.Int)
	for n.Sign() != 0 {
		n.QuoRem(n, b, rem)
		sum += rem.Int64()
	}
	return sum
}

// rleVariants run-length-encodes the input into a flat [value, count, ...]
// sequence (spec.md §4.4's "rle").
func rleVariants() []Variant {
	return []Variant{{
		Step: step("rle"),
		Apply: func(in []*big.Int) ([]*big.Int, bool) {
			if len(in) == 0 {
				return nil, false
			}
			var out []*big.Int
			i := 0
			for i < len(in) {
				j := i + 1
				for j < len(in) && in[j].Cmp(in[i]) == 0 {
					j++
				}
				out = append(out, new(big.Int).Set(in[i]), bi(int64(j-i)))
				i = j
			}
			return out, true
		},
	}}
}

// rleDecodeVariants expands a flat [value, count, ...] sequence back into
// runs (spec.md §4.4's "rle_decode").
func rleDecodeVariants() []Variant {
	return []Variant{{
		Step: step("rle_decode"),
		Apply: func(in []*big.Int) ([]*big.Int, bool) {
			if len(in) == 0 || len(in)%2 != 0 {
				return nil, false
			}
			var out []*big.Int
			for i := 0; i+1 < len(in); i += 2 {
				val := in[i]
				count := in[i+1]
				if !count.IsInt64() || count.Int64() <= 0 || count.Int64() > 10000 {
					return nil, false
				}
				for c := int64(0); c < count.Int64(); c++ {
					out = append(out, new(big.Int).Set(val))
				}
			}
			return out, true
		},
	}}
}

// concatIndexVariants concatenates the index's base-b digits with the
// term's, preserving the term's sign (spec.md §4.4's "concat_index").
func concatIndexVariants() []Variant {
	out := make([]Variant, 0, len(concatIndexBases))
	for _, b := range concatIndexBases {
		base := b
		out = append(out, Variant{
			Step: step("concat_index", itoa(base)),
			Apply: func(in []*big.Int) ([]*big.Int, bool) {
				if len(in) == 0 {
					return nil, false
				}
				out := make([]*big.Int, len(in))
				bb := big.NewInt(base)
				for i, x := range in {
					abs := new(big.Int).Abs(x)
					digits := digitCountInBase(abs, base)
					scale := new(big.Int).Exp(bb, big.NewInt(int64(digits)), nil)
					v := new(big.Int).Add(new(big.Int).Mul(big.NewInt(int64(i)), scale), abs)
					if x.Sign() < 0 {
						v.Neg(v)
					}
					out[i] = v
				}
				return out, true
			},
		})
	}
	return out
}

func digitCountInBase(x *big.Int, base int64) int {
	if x.Sign() == 0 {
		return 1
	}
	n := new(big.Int).Set(x)
	b := big.NewInt(base)
	count := 0
	for n.Sign() != 0 {
		n.Quo(n, b)
		count++
	}
	return count
}
