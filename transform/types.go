// Package transform implements the bounded-depth operator-chain enumerator
// that drives Superseeker-lite search (spec.md §4.4): a static table of
// operators (each tagged with a complexity weight; which ones are enabled
// comes from the config's operator-name list, not from the table row)
// is iterated by the enumerator rather than dispatched through a runtime
// type switch, following spec.md §9's "Dynamic operator dispatch" design
// note and the teacher regex engine's own strategy table
// (meta/strategy.go).
package transform

import (
	"math/big"

	"github.com/rahidz/oeis-offline-matcher/model"
)

// Variant is one concrete parameterization of an operator, e.g. scale(2)
// vs scale(3). Apply returns ok=false when the operator is not applicable
// to this input length (e.g. shift_forward(k) on a sequence shorter than
// k+1).
type Variant struct {
	Step  model.ChainStep
	Apply func(in []*big.Int) (out []*big.Int, ok bool)
}

// Spec is one row of the operator table: a tag, its complexity weight, and
// the variants it expands to; each variant's Apply decides whether it
// accepts a given input.
type Spec struct {
	Tag      string
	Weight   int // 1 basic, 2 opt-in, 3 exotic (spec.md §4.4)
	Variants func() []Variant
}
