package transform

import "math/big"

func bi(n int64) *big.Int { return big.NewInt(n) }

func cloneAll(xs []*big.Int) []*big.Int {
	out := make([]*big.Int, len(xs))
	for i, x := range xs {
		out[i] = new(big.Int).Set(x)
	}
	return out
}

func mapTerms(xs []*big.Int, f func(*big.Int) *big.Int) []*big.Int {
	out := make([]*big.Int, len(xs))
	for i, x := range xs {
		out[i] = f(x)
	}
	return out
}

func ceilDiv(n, k int) int {
	if k <= 0 {
		return 0
	}
	return (n + k - 1) / k
}
