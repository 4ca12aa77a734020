package store

import (
	"context"
	"math/big"
	"testing"

	"github.com/rahidz/oeis-offline-matcher/model"
	"github.com/rahidz/oeis-offline-matcher/oeiserr"
)

func bigs(xs ...int64) []*big.Int {
	out := make([]*big.Int, len(xs))
	for i, x := range xs {
		out[i] = big.NewInt(x)
	}
	return out
}

func rec(t *testing.T, id string, terms ...int64) *model.SequenceRecord {
	t.Helper()
	parsed, err := model.ParseID(id)
	if err != nil {
		t.Fatalf("ParseID(%q): %v", id, err)
	}
	return model.NewSequenceRecord(parsed, "", bigs(terms...), 64)
}

func drain(t *testing.T, cur Cursor) []*model.SequenceRecord {
	t.Helper()
	defer cur.Close()
	var out []*model.SequenceRecord
	for {
		r, ok, err := cur.Next(context.Background())
		if err != nil {
			t.Fatalf("cursor.Next: %v", err)
		}
		if !ok {
			break
		}
		out = append(out, r)
	}
	return out
}

func TestInMemoryStore_Get(t *testing.T) {
	a := rec(t, "A000001", 1, 2, 3)
	s := NewInMemoryStore([]*model.SequenceRecord{a})

	got, err := s.Get(a.ID)
	if err != nil || got != a {
		t.Fatalf("Get(%s) = %v, %v; want %v, nil", a.ID, got, err, a)
	}
	if _, err := s.Get(model.ID("A999999")); err != oeiserr.ErrNotFound {
		t.Errorf("Get(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestInMemoryStore_LookupByPrefixHash(t *testing.T) {
	a := rec(t, "A000001", 1, 1, 2, 3, 5)
	b := rec(t, "A000002", 9, 9, 9, 9, 9)
	s := NewInMemoryStore([]*model.SequenceRecord{a, b})

	got := drain(t, s.LookupByPrefixHash(a.Invariants.PrefixHash))
	if len(got) != 1 || got[0].ID != a.ID {
		t.Errorf("LookupByPrefixHash(a) = %v, want only a", got)
	}
}

func TestInMemoryStore_Scan_IDOrder(t *testing.T) {
	a := rec(t, "A000002", 1, 2, 3)
	b := rec(t, "A000001", 1, 2, 3)
	s := NewInMemoryStore([]*model.SequenceRecord{a, b})

	got := drain(t, s.Scan(PredicateSet{}))
	if len(got) != 2 || got[0].ID != b.ID || got[1].ID != a.ID {
		t.Errorf("Scan order = %v, want ascending id", got)
	}
}

func TestPredicateSet_Matches(t *testing.T) {
	a := rec(t, "A000001", 1, 2, 3, 4)
	pred := PredicateSet{SignPatterns: []model.SignPattern{model.SignNonnegative}, LengthMin: 3}
	if !pred.Matches(a) {
		t.Error("nonnegative, length-4 record should match")
	}
	if (PredicateSet{LengthMin: 10}).Matches(a) {
		t.Error("record shorter than LengthMin should not match")
	}
	if (PredicateSet{SignPatterns: []model.SignPattern{model.SignNonpositive}}).Matches(a) {
		t.Error("nonnegative record should not match a nonpositive-only predicate")
	}
}

func TestPredicateSet_GCDDivides(t *testing.T) {
	a := rec(t, "A000001", 2, 4, 6) // gcd 2
	if !(PredicateSet{GCDDivides: big.NewInt(12)}).Matches(a) {
		t.Error("stored gcd 2 should divide 12")
	}
	if (PredicateSet{GCDDivides: big.NewInt(9)}).Matches(a) {
		t.Error("stored gcd 2 should not divide 9")
	}
}

func TestFilterCursor_HonorsContextCancellation(t *testing.T) {
	a := rec(t, "A000001", 1, 2, 3)
	s := NewInMemoryStore([]*model.SequenceRecord{a})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cur := s.Scan(PredicateSet{})
	defer cur.Close()
	_, ok, err := cur.Next(ctx)
	if ok || err == nil {
		t.Error("Next on a cancelled context should return ok=false with a non-nil error")
	}
}
