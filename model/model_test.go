package model

import (
	"math/big"
	"testing"
)

func bigs(xs ...int64) []*big.Int {
	out := make([]*big.Int, len(xs))
	for i, x := range xs {
		out[i] = big.NewInt(x)
	}
	return out
}

func TestParseID(t *testing.T) {
	id, err := ParseID("A000045")
	if err != nil {
		t.Fatalf("ParseID(A000045) returned error: %v", err)
	}
	if !id.Valid() {
		t.Errorf("ParseID(A000045).Valid() = false")
	}
	if _, err := ParseID("B000045"); err == nil {
		t.Error("ParseID(B000045) should have failed")
	}
	if _, err := ParseID("A45"); err == nil {
		t.Error("ParseID(A45) should have failed (wrong digit count)")
	}
}

func TestClassifySignPattern(t *testing.T) {
	cases := []struct {
		name string
		in   []int64
		want SignPattern
	}{
		{"all zero", []int64{0, 0, 0}, SignAllZero},
		{"nonnegative", []int64{0, 1, 2, 3}, SignNonnegative},
		{"nonpositive", []int64{0, -1, -2}, SignNonpositive},
		{"alternating", []int64{1, -1, 1, -1}, SignAlternating},
		{"mixed", []int64{1, -1, 1, 1}, SignMixed},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := classifySignPattern(bigs(c.in...))
			if got != c.want {
				t.Errorf("classifySignPattern(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestComputeInvariants_Fibonacci(t *testing.T) {
	terms := bigs(1, 1, 2, 3, 5, 8, 13)
	inv := ComputeInvariants(terms)

	if inv.MinVal.Int64() != 1 {
		t.Errorf("MinVal = %s, want 1", inv.MinVal)
	}
	if inv.MaxVal.Int64() != 13 {
		t.Errorf("MaxVal = %s, want 13", inv.MaxVal)
	}
	if inv.GCDVal.Int64() != 1 {
		t.Errorf("GCDVal = %s, want 1", inv.GCDVal)
	}
	if inv.SignPattern != SignNonnegative {
		t.Errorf("SignPattern = %v, want nonnegative", inv.SignPattern)
	}
	if !inv.IsNondecreasing {
		t.Error("Fibonacci prefix should be nondecreasing")
	}
	if inv.NonzeroCount != 7 {
		t.Errorf("NonzeroCount = %d, want 7", inv.NonzeroCount)
	}
}

func TestComputeInvariants_Empty(t *testing.T) {
	inv := ComputeInvariants(nil)
	if inv.SignPattern != SignAllZero {
		t.Errorf("empty series SignPattern = %v, want all-zero", inv.SignPattern)
	}
	if inv.GrowthRate == inv.GrowthRate {
		t.Error("empty series GrowthRate should be NaN")
	}
}

func TestPrefixHash_Deterministic(t *testing.T) {
	a := bigs(1, 1, 2, 3, 5, 8, 13)
	b := bigs(1, 1, 2, 3, 5, 100, 200) // differs only past MaxPrefixTerms
	if PrefixHash(a) != PrefixHash(b) {
		t.Error("PrefixHash should only depend on the first MaxPrefixTerms terms")
	}

	c := bigs(1, 1, 2, 3, 6)
	if PrefixHash(a) == PrefixHash(c) {
		t.Error("PrefixHash should differ when an early term differs")
	}
}

func TestNewSequenceRecord_TruncatesStoredTerms(t *testing.T) {
	terms := bigs(1, 2, 3, 4, 5)
	rec := NewSequenceRecord(mustID(t, "A000001"), "test", terms, 3)
	if len(rec.Terms) != 3 {
		t.Fatalf("len(rec.Terms) = %d, want 3", len(rec.Terms))
	}
	if rec.Length != 3 {
		t.Errorf("rec.Length = %d, want 3 (Length tracks the stored, possibly truncated, terms)", rec.Length)
	}
}

func TestSequenceQuery_Wildcards(t *testing.T) {
	q := SequenceQuery{Terms: bigs(1, 0, 3), Wildcards: []int{1}}
	if !q.IsWildcard(1) {
		t.Error("position 1 should be a wildcard")
	}
	if q.IsWildcard(0) {
		t.Error("position 0 should not be a wildcard")
	}
	if got := q.NonzeroCount(); got != 2 {
		t.Errorf("NonzeroCount() = %d, want 2 (wildcard excluded)", got)
	}
}

func TestCandidateBucket_DedupKeepsBest(t *testing.T) {
	b := NewCandidateBucket(2)
	recA := NewSequenceRecord(mustID(t, "A000001"), "", bigs(1, 2, 3), 64)
	b.Add(recA, 0.5)
	b.Add(recA, 0.9)
	b.Add(recA, 0.1)

	entries := b.Entries()
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].RankScore != 0.9 {
		t.Errorf("RankScore = %v, want the best score seen (0.9)", entries[0].RankScore)
	}
}

func TestCandidateBucket_CapReplacesWorst(t *testing.T) {
	b := NewCandidateBucket(1)
	recA := NewSequenceRecord(mustID(t, "A000001"), "", bigs(1), 64)
	recB := NewSequenceRecord(mustID(t, "A000002"), "", bigs(2), 64)
	b.Add(recA, 0.1)
	b.Add(recB, 0.9)

	entries := b.Entries()
	if len(entries) != 1 || entries[0].Record.ID != recB.ID {
		t.Errorf("bucket should have replaced the worse entry with the better one")
	}
}

func TestCandidateBucket_EntriesOrdering(t *testing.T) {
	b := NewCandidateBucket(10)
	recA := NewSequenceRecord(mustID(t, "A000002"), "", bigs(1), 64)
	recB := NewSequenceRecord(mustID(t, "A000001"), "", bigs(2), 64)
	b.Add(recA, 0.5)
	b.Add(recB, 0.5)

	entries := b.Entries()
	if entries[0].Record.ID != recB.ID {
		t.Error("equal scores should tie-break by ascending id")
	}
}

func mustID(t *testing.T, s string) ID {
	t.Helper()
	id, err := ParseID(s)
	if err != nil {
		t.Fatalf("ParseID(%q) failed: %v", s, err)
	}
	return id
}
