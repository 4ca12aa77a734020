package model

import "math/big"

// DefaultMaxStoredTerms is the minimum max_stored_terms implementations
// must support (spec.md §3).
const DefaultMaxStoredTerms = 64

// SequenceRecord is one OEIS entry in the local snapshot. Built once by the
// ingester (out of scope) and immutable for the life of a matching process.
type SequenceRecord struct {
	ID         ID
	Terms      []*big.Int
	Length     int
	Name       string
	Invariants Invariants
}

// NewSequenceRecord truncates terms to maxStoredTerms and derives
// Invariants from the (possibly truncated) term slice.
func NewSequenceRecord(id ID, name string, terms []*big.Int, maxStoredTerms int) *SequenceRecord {
	if maxStoredTerms <= 0 {
		maxStoredTerms = DefaultMaxStoredTerms
	}
	stored := terms
	if len(stored) > maxStoredTerms {
		stored = append([]*big.Int(nil), terms[:maxStoredTerms]...)
	} else {
		stored = append([]*big.Int(nil), terms...)
	}
	return &SequenceRecord{
		ID:         id,
		Terms:      stored,
		Length:     len(stored),
		Name:       name,
		Invariants: ComputeInvariants(stored),
	}
}
