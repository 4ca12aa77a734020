package store

import (
	"context"

	"github.com/rahidz/oeis-offline-matcher/model"
	"github.com/rahidz/oeis-offline-matcher/oeiserr"
)

// InMemoryStore is a SequenceStore backed by in-process slices and maps.
// It is the reference implementation the matching pipeline is built and
// tested against; a real deployment's backing store (spec.md §6) is
// expected to push PredicateSet down to real indices instead of
// filtering a full scan the way this implementation does.
type InMemoryStore struct {
	byID         map[model.ID]*model.SequenceRecord
	byPrefixHash map[uint64][]*model.SequenceRecord
	all          []*model.SequenceRecord // sorted by id
}

// NewInMemoryStore indexes recs by id and prefix hash.
func NewInMemoryStore(recs []*model.SequenceRecord) *InMemoryStore {
	s := &InMemoryStore{
		byID:         make(map[model.ID]*model.SequenceRecord, len(recs)),
		byPrefixHash: make(map[uint64][]*model.SequenceRecord),
	}
	for _, r := range recs {
		s.byID[r.ID] = r
		h := r.Invariants.PrefixHash
		s.byPrefixHash[h] = append(s.byPrefixHash[h], r)
	}
	for h, bucket := range s.byPrefixHash {
		s.byPrefixHash[h] = sortedByID(bucket)
	}
	s.all = sortedByID(recs)
	return s
}

// Get implements SequenceStore.
func (s *InMemoryStore) Get(id model.ID) (*model.SequenceRecord, error) {
	rec, ok := s.byID[id]
	if !ok {
		return nil, oeiserr.ErrNotFound
	}
	return rec, nil
}

// LookupByPrefixHash implements SequenceStore.
func (s *InMemoryStore) LookupByPrefixHash(h uint64) Cursor {
	return newSliceCursor(s.byPrefixHash[h])
}

// Scan implements SequenceStore. The in-memory index has no per-invariant
// buckets beyond prefix hash, so Scan is a full-corpus filter; this is the
// explicitly sanctioned fallback (spec.md §4.1) for stores without real
// pushdown.
func (s *InMemoryStore) Scan(pred PredicateSet) Cursor {
	return newFilterCursor(s.all, pred)
}

// Len reports the corpus size.
func (s *InMemoryStore) Len() int { return len(s.all) }

// sliceCursor walks a pre-materialized, already-sorted slice.
type sliceCursor struct {
	recs []*model.SequenceRecord
	pos  int
}

func newSliceCursor(recs []*model.SequenceRecord) *sliceCursor {
	return &sliceCursor{recs: recs}
}

func (c *sliceCursor) Next(ctx context.Context) (*model.SequenceRecord, bool, error) {
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	default:
	}
	if c.pos >= len(c.recs) {
		return nil, false, nil
	}
	rec := c.recs[c.pos]
	c.pos++
	return rec, true, nil
}

func (c *sliceCursor) Close() { c.pos = len(c.recs) }

// filterCursor lazily applies a PredicateSet while walking a sorted slice,
// checking ctx between records (spec.md §5: cancellation checked "between
// candidate records").
type filterCursor struct {
	recs []*model.SequenceRecord
	pred PredicateSet
	pos  int
}

func newFilterCursor(recs []*model.SequenceRecord, pred PredicateSet) *filterCursor {
	return &filterCursor{recs: recs, pred: pred}
}

func (c *filterCursor) Next(ctx context.Context) (*model.SequenceRecord, bool, error) {
	for c.pos < len(c.recs) {
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		default:
		}
		rec := c.recs[c.pos]
		c.pos++
		if c.pred.Matches(rec) {
			return rec, true, nil
		}
	}
	return nil, false, nil
}

func (c *filterCursor) Close() { c.pos = len(c.recs) }
