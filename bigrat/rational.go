// Package bigrat implements an arbitrary-precision rational number, the
// exact-arithmetic currency used by the transform engine and the
// combination solver so that neither rejects a match spuriously on
// fast-growing sequences (factorials, binomial coefficients, Fibonacci).
//
// The type and its method set mirror the fixed-width Rational used by the
// gokanlogic constraint solver (Num/Den, always reduced, denominator always
// positive) but back both fields with *big.Int so no coefficient or shift
// computed over an OEIS entry can overflow.
package bigrat

import (
	"fmt"
	"math/big"
)

// Rational is a normalized fraction: Den is always > 0 and
// gcd(|Num|, Den) == 1. The zero value is not a valid Rational; use Zero()
// or New.
type Rational struct {
	num *big.Int
	den *big.Int
}

// New returns num/den in reduced normal form. Panics if den is zero, the
// same contract as gokanlogic's NewRational.
func New(num, den *big.Int) Rational {
	if den.Sign() == 0 {
		panic("bigrat: division by zero")
	}
	n := new(big.Int).Set(num)
	d := new(big.Int).Set(den)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	if n.Sign() == 0 {
		return Rational{num: big.NewInt(0), den: big.NewInt(1)}
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(n), d)
	n.Quo(n, g)
	d.Quo(d, g)
	return Rational{num: n, den: d}
}

// FromInt returns the integer n as a Rational n/1.
func FromInt(n int64) Rational {
	return Rational{num: big.NewInt(n), den: big.NewInt(1)}
}

// FromBigInt returns n as a Rational n/1.
func FromBigInt(n *big.Int) Rational {
	return Rational{num: new(big.Int).Set(n), den: big.NewInt(1)}
}

// Zero returns the rational 0/1.
func Zero() Rational { return FromInt(0) }

// Num returns a copy of the reduced numerator.
func (r Rational) Num() *big.Int { return new(big.Int).Set(r.num) }

// Den returns a copy of the reduced denominator (always > 0).
func (r Rational) Den() *big.Int { return new(big.Int).Set(r.den) }

// IsInt reports whether r has denominator 1.
func (r Rational) IsInt() bool { return r.den.Cmp(big.NewInt(1)) == 0 }

// Add returns r + other.
func (r Rational) Add(other Rational) Rational {
	num := new(big.Int).Add(
		new(big.Int).Mul(r.num, other.den),
		new(big.Int).Mul(other.num, r.den),
	)
	den := new(big.Int).Mul(r.den, other.den)
	return New(num, den)
}

// Sub returns r - other.
func (r Rational) Sub(other Rational) Rational {
	num := new(big.Int).Sub(
		new(big.Int).Mul(r.num, other.den),
		new(big.Int).Mul(other.num, r.den),
	)
	den := new(big.Int).Mul(r.den, other.den)
	return New(num, den)
}

// Mul returns r * other.
func (r Rational) Mul(other Rational) Rational {
	return New(new(big.Int).Mul(r.num, other.num), new(big.Int).Mul(r.den, other.den))
}

// Div returns r / other. Panics if other is zero.
func (r Rational) Div(other Rational) Rational {
	if other.num.Sign() == 0 {
		panic("bigrat: division by zero")
	}
	return New(new(big.Int).Mul(r.num, other.den), new(big.Int).Mul(r.den, other.num))
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	return Rational{num: new(big.Int).Neg(r.num), den: new(big.Int).Set(r.den)}
}

// IsZero reports whether r == 0.
func (r Rational) IsZero() bool { return r.num.Sign() == 0 }

// Sign returns -1, 0, or 1 matching the sign of r.
func (r Rational) Sign() int { return r.num.Sign() }

// Cmp compares r and other, returning -1, 0, or +1.
func (r Rational) Cmp(other Rational) int {
	lhs := new(big.Int).Mul(r.num, other.den)
	rhs := new(big.Int).Mul(other.num, r.den)
	return lhs.Cmp(rhs)
}

// Equal reports whether r and other denote the same value.
func (r Rational) Equal(other Rational) bool { return r.Cmp(other) == 0 }

// AbsNumBitLen returns the bit length of the (absolute) numerator, used by
// the combination solver to cap coefficient magnitude cheaply without a
// full decimal-digit count.
func (r Rational) AbsNumBitLen() int { return new(big.Int).Abs(r.num).BitLen() }

// String renders r as "num" when integral, else "num/den".
func (r Rational) String() string {
	if r.IsInt() {
		return r.num.String()
	}
	return fmt.Sprintf("%s/%s", r.num.String(), r.den.String())
}
