// Package store defines the read-only SequenceStore contract (spec.md §4.1)
// and an in-memory reference implementation the rest of the pipeline is
// built and tested against. A persistent, indexed backing store is an
// external concern (spec.md §6); anything satisfying SequenceStore can
// stand in for it.
package store

import (
	"context"
	"math/big"
	"sort"

	"github.com/rahidz/oeis-offline-matcher/model"
)

// Cursor is a lazy, pull-based iterator over SequenceRecord. The consumer
// pulls one record at a time (spec.md §9's "coroutines / lazy iteration"
// design note); Next returns ok=false once exhausted or once ctx is done.
type Cursor interface {
	// Next advances the cursor and returns the next record. ok is false
	// when the cursor is exhausted or ctx's deadline has passed; in the
	// latter case err is ctx.Err().
	Next(ctx context.Context) (rec *model.SequenceRecord, ok bool, err error)
	// Close releases any resources held by the cursor. Safe to call
	// multiple times.
	Close()
}

// SequenceStore is the read-only contract every matching stage consumes
// (spec.md §4.1). Implementations must be safe for concurrent readers;
// mutation is not part of this contract.
type SequenceStore interface {
	// Get returns the record for id, or oeiserr.ErrNotFound.
	Get(id model.ID) (*model.SequenceRecord, error)

	// LookupByPrefixHash returns every record whose PrefixHash equals h,
	// in id order.
	LookupByPrefixHash(h uint64) Cursor

	// Scan returns every record matching pred, in id order. An empty
	// PredicateSet enumerates the whole corpus.
	Scan(pred PredicateSet) Cursor
}

// Range is an inclusive [Lo, Hi] band used by PredicateSet's numeric
// constraints. A nil *Range means "unconstrained".
type Range struct {
	Lo, Hi float64
}

// Contains reports whether v falls within the band.
func (r Range) Contains(v float64) bool { return v >= r.Lo && v <= r.Hi }

// PredicateSet is a conjunction over invariant bands (spec.md §4.1): every
// non-zero-value field must be satisfied by a matching record. The store
// is expected to push this down to its backing index; the in-memory
// implementation here falls back to full-scan filtering, which spec.md
// §4.1 explicitly allows when index pushdown is unavailable.
type PredicateSet struct {
	// SignPatterns, if non-empty, requires stored.SignPattern to be one of
	// these values.
	SignPatterns []model.SignPattern

	// FirstDiffSignPatterns, if non-empty, constrains
	// stored.FirstDiffSignPattern analogously.
	FirstDiffSignPatterns []model.SignPattern

	// GCDDivides, if non-nil, requires stored.GCDVal to divide this value
	// (spec.md §4.2: "require query.gcd_val % stored.gcd_val == 0").
	// A stored record with GCDVal == 0 always satisfies this (an all-zero
	// stored sequence divides nothing meaningfully but is never excluded
	// by a gcd constraint alone).
	GCDDivides *big.Int

	// NonzeroCountMin is a lower bound on stored.NonzeroCount. Zero means
	// unconstrained.
	NonzeroCountMin int

	// GrowthRateRange, if non-nil, constrains stored.GrowthRate to
	// [g-delta, g+delta]. Records with NaN GrowthRate never match a
	// non-nil range.
	GrowthRateRange *Range

	// VarianceRange, if non-nil, constrains stored.Variance.
	VarianceRange *Range

	// LengthMin is a lower bound on stored.Length. Zero means
	// unconstrained.
	LengthMin int
}

// Matches reports whether rec satisfies every constraint in p.
func (p PredicateSet) Matches(rec *model.SequenceRecord) bool {
	inv := rec.Invariants
	if len(p.SignPatterns) > 0 && !containsSign(p.SignPatterns, inv.SignPattern) {
		return false
	}
	if len(p.FirstDiffSignPatterns) > 0 && !containsSign(p.FirstDiffSignPatterns, inv.FirstDiffSignPattern) {
		return false
	}
	if p.GCDDivides != nil && inv.GCDVal.Sign() != 0 {
		m := new(big.Int).Mod(new(big.Int).Abs(p.GCDDivides), inv.GCDVal)
		if m.Sign() != 0 {
			return false
		}
	}
	if p.NonzeroCountMin > 0 && inv.NonzeroCount < p.NonzeroCountMin {
		return false
	}
	if p.GrowthRateRange != nil {
		if inv.GrowthRate != inv.GrowthRate { // NaN
			return false
		}
		if !p.GrowthRateRange.Contains(inv.GrowthRate) {
			return false
		}
	}
	if p.VarianceRange != nil && !p.VarianceRange.Contains(inv.Variance) {
		return false
	}
	if p.LengthMin > 0 && rec.Length < p.LengthMin {
		return false
	}
	return true
}

func containsSign(set []model.SignPattern, v model.SignPattern) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// sortedByID returns recs sorted by ascending id, the stable iteration
// order spec.md §4.1 requires per predicate set.
func sortedByID(recs []*model.SequenceRecord) []*model.SequenceRecord {
	out := append([]*model.SequenceRecord(nil), recs...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
