package model

import "math/big"

// Hash offset/prime constants from the FNV-1a 64-bit scheme; chosen for
// their avalanche behavior on byte-oriented input, which is what a
// big.Int's two's-complement-free magnitude representation gives us here.
const (
	fnvOffset64 uint64 = 14695981039346656037
	fnvPrime64  uint64 = 1099511628211
)

// MaxPrefixTerms is the number of leading terms the prefix hash is a
// function of (spec.md §3).
const MaxPrefixTerms = 5

// PrefixHash computes the order-sensitive equality probe over
// terms[:min(5,len(terms))]. Folding per position mirrors the
// soypat/perfect HashSequential idiom of building a hash from one
// coefficient per input position, generalized here from per-byte string
// coefficients to per-term big.Int magnitudes.
func PrefixHash(terms []*big.Int) uint64 {
	n := len(terms)
	if n > MaxPrefixTerms {
		n = MaxPrefixTerms
	}
	h := fnvOffset64
	for i := 0; i < n; i++ {
		t := terms[i]
		// Fold in the position so that e.g. [1,2] and [2,1] hash
		// differently even though their byte content is identical.
		h ^= uint64(i + 1)
		h *= fnvPrime64
		// Fold in the sign explicitly: big.Int.Bytes() drops it.
		h ^= uint64(t.Sign() + 1)
		h *= fnvPrime64
		for _, b := range t.Bytes() {
			h ^= uint64(b)
			h *= fnvPrime64
		}
	}
	return h
}
