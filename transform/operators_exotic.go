package transform

import "math/big"

var modMs = []int64{2, 3, 5, 7, 10}
var logBases = []int64{2, 10}
var expBases = []int64{2, 3}

// maxExpExponent clamps exp(base) so a pathological query term doesn't
// produce an astronomically large big.Int; spec.md §4.4 calls this out
// explicitly ("integer approximation, clamped; opt-in").
const maxExpExponent = 4096

// exoticOperators returns the weight-3 rows: opt-in transforms enabled
// only in the "max" profile (spec.md §4.4, §6).
func exoticOperators() []Spec {
	return []Spec{
		{Tag: "mod", Weight: 3, Variants: modVariants},
		{Tag: "xor_index", Weight: 3, Variants: xorIndexVariants},
		{Tag: "log", Weight: 3, Variants: logVariants},
		{Tag: "exp", Weight: 3, Variants: expVariants},
		{Tag: "binomial", Weight: 3, Variants: binomialVariants},
		{Tag: "euler", Weight: 3, Variants: eulerVariants},
		{Tag: "mobius", Weight: 3, Variants: mobiusVariants},
	}
}

func modVariants() []Variant {
	out := make([]Variant, 0, len(modMs))
	for _, m := range modMs {
		mm := m
		out = append(out, Variant{
			Step: step("mod", itoa(mm)),
			Apply: func(in []*big.Int) ([]*big.Int, bool) {
				if len(in) == 0 {
					return nil, false
				}
				modulus := big.NewInt(mm)
				return mapTerms(in, func(x *big.Int) *big.Int {
					return new(big.Int).Mod(x, modulus)
				}), true
			},
		})
	}
	return out
}

func xorIndexVariants() []Variant {
	return []Variant{{
		Step: step("xor_index"),
		Apply: func(in []*big.Int) ([]*big.Int, bool) {
			if len(in) == 0 {
				return nil, false
			}
			out := make([]*big.Int, len(in))
			for i, x := range in {
				out[i] = new(big.Int).Xor(x, big.NewInt(int64(i)))
			}
			return out, true
		},
	}}
}

func logVariants() []Variant {
	out := make([]Variant, 0, len(logBases))
	for _, b := range logBases {
		base := b
		out = append(out, Variant{
			Step: step("log", itoa(base)),
			Apply: func(in []*big.Int) ([]*big.Int, bool) {
				if len(in) == 0 || base < 2 {
					return nil, false
				}
				return mapTerms(in, func(x *big.Int) *big.Int {
					abs := new(big.Int).Abs(x)
					if abs.Sign() == 0 {
						return big.NewInt(0)
					}
					return bi(int64(integerLog(abs, base)))
				}), true
			},
		})
	}
	return out
}

// integerLog returns floor(log_base(n)) for n >= 1 via repeated division,
// exact (no floating-point rounding error on huge n).
func integerLog(n *big.Int, base int64) int {
	b := big.NewInt(base)
	v := new(big.Int).Set(n)
	count := 0
	for v.Cmp(b) >= 0 {
		v.Quo(v, b)
		count++
	}
	return count
}

func expVariants() []Variant {
	out := make([]Variant, 0, len(expBases))
	for _, b := range expBases {
		base := b
		out = append(out, Variant{
			Step: step("exp", itoa(base)),
			Apply: func(in []*big.Int) ([]*big.Int, bool) {
				if len(in) == 0 {
					return nil, false
				}
				results := make([]*big.Int, len(in))
				for i, x := range in {
					if !x.IsInt64() {
						return nil, false
					}
					e := x.Int64()
					neg := e < 0
					if neg {
						e = -e
					}
					if e > maxExpExponent {
						return nil, false
					}
					v := new(big.Int).Exp(big.NewInt(base), big.NewInt(e), nil)
					if neg {
						// Integer approximation of base^(-e) clamps to 0,
						// matching the "clamped" contract in spec.md §4.4.
						v = big.NewInt(0)
					}
					results[i] = v
				}
				return results, true
			},
		})
	}
	return out
}

// binomialVariants applies the classical binomial transform
// b_n = sum_{k=0}^{n} C(n,k) a_k, treating the query as a_0..a_{n-1}
// (spec.md §4.4: "classical sequence transforms").
func binomialVariants() []Variant {
	return []Variant{{
		Step: step("binomial"),
		Apply: func(in []*big.Int) ([]*big.Int, bool) {
			if len(in) == 0 {
				return nil, false
			}
			n := len(in)
			out := make([]*big.Int, n)
			for i := 0; i < n; i++ {
				sum := new(big.Int)
				for k := 0; k <= i; k++ {
					c := binomialCoeff(i, k)
					sum.Add(sum, new(big.Int).Mul(c, in[k]))
				}
				out[i] = sum
			}
			return out, true
		},
	}}
}

func binomialCoeff(n, k int) *big.Int {
	return new(big.Int).Binomial(int64(n), int64(k))
}

// eulerVariants applies the classical Euler transform of a sequence
// a_1..a_n (the query's terms, 1-indexed) via the standard divisor-sum
// recurrence: c_n = sum_{d|n} d*a_d, n*b_n = sum_{k=1}^{n} c_k*b_{n-k},
// b_0 = 1. Output is b_1..b_n (spec.md §4.4).
func eulerVariants() []Variant {
	return []Variant{{
		Step: step("euler"),
		Apply: func(in []*big.Int) ([]*big.Int, bool) {
			n := len(in)
			if n == 0 {
				return nil, false
			}
			c := make([]*big.Int, n+1)
			c[0] = big.NewInt(0)
			for k := 1; k <= n; k++ {
				sum := new(big.Int)
				for d := 1; d <= k; d++ {
					if k%d == 0 {
						sum.Add(sum, new(big.Int).Mul(big.NewInt(int64(d)), in[d-1]))
					}
				}
				c[k] = sum
			}
			b := make([]*big.Int, n+1)
			b[0] = big.NewInt(1)
			for m := 1; m <= n; m++ {
				sum := new(big.Int)
				for k := 1; k <= m; k++ {
					sum.Add(sum, new(big.Int).Mul(c[k], b[m-k]))
				}
				bm := new(big.Int).Quo(sum, big.NewInt(int64(m)))
				b[m] = bm
			}
			return b[1:], true
		},
	}}
}

// mobiusVariants inverts a divisor-sum: given b_1..b_n (the query),
// recovers a_n = sum_{d|n} mu(n/d) b_d (spec.md §4.4).
func mobiusVariants() []Variant {
	return []Variant{{
		Step: step("mobius"),
		Apply: func(in []*big.Int) ([]*big.Int, bool) {
			n := len(in)
			if n == 0 {
				return nil, false
			}
			mu := mobiusSieve(n)
			out := make([]*big.Int, n)
			for nn := 1; nn <= n; nn++ {
				sum := new(big.Int)
				for d := 1; d <= nn; d++ {
					if nn%d == 0 {
						m := mu[nn/d]
						if m == 0 {
							continue
						}
						term := new(big.Int).Mul(big.NewInt(int64(m)), in[d-1])
						sum.Add(sum, term)
					}
				}
				out[nn-1] = sum
			}
			return out, true
		},
	}}
}

// mobiusSieve returns mu[1..n] via a standard linear-ish sieve.
func mobiusSieve(n int) []int {
	mu := make([]int, n+1)
	isComposite := make([]bool, n+1)
	primes := make([]int, 0)
	mu[1] = 1
	for i := 2; i <= n; i++ {
		if !isComposite[i] {
			primes = append(primes, i)
			mu[i] = -1
		}
		for _, p := range primes {
			if i*p > n {
				break
			}
			isComposite[i*p] = true
			if i%p == 0 {
				mu[i*p] = 0
				break
			}
			mu[i*p] = -mu[i]
		}
	}
	return mu
}
