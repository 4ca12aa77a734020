package model

import "sort"

// DefaultMaxCandidates is the default candidate bucket size cap
// (spec.md §4.6's combo_bucket_size / max_candidates_bucket default of 60).
const DefaultMaxCandidates = 60

// MaxCandidatesHardCap is the hard cap on candidate bucket size regardless
// of configuration (spec.md §4.6).
const MaxCandidatesHardCap = 200

// CandidateEntry pairs a stored record with its ranking score from
// whichever stage proposed it (exact match length, or similarity score).
type CandidateEntry struct {
	Record    *SequenceRecord
	RankScore float64
}

// CandidateBucket is the deduplicated, capped union of candidates handed to
// the combination solver (spec.md §3, §4.6).
type CandidateBucket struct {
	entries []CandidateEntry
	seen    map[ID]int // id -> index into entries, for dedup-by-best-score
	cap     int
}

// NewCandidateBucket returns an empty bucket capped at maxSize (clamped to
// MaxCandidatesHardCap).
func NewCandidateBucket(maxSize int) *CandidateBucket {
	if maxSize <= 0 || maxSize > MaxCandidatesHardCap {
		maxSize = MaxCandidatesHardCap
	}
	return &CandidateBucket{
		seen: make(map[ID]int),
		cap:  maxSize,
	}
}

// Add inserts or updates a candidate, keeping the higher RankScore on a
// duplicate id. The bucket enforces its cap lazily: once full, a new
// candidate must outscore the current lowest entry to be admitted.
func (b *CandidateBucket) Add(rec *SequenceRecord, score float64) {
	if idx, ok := b.seen[rec.ID]; ok {
		if score > b.entries[idx].RankScore {
			b.entries[idx].RankScore = score
		}
		return
	}
	if len(b.entries) < b.cap {
		b.entries = append(b.entries, CandidateEntry{Record: rec, RankScore: score})
		b.seen[rec.ID] = len(b.entries) - 1
		return
	}
	// Bucket full: replace the worst entry if this candidate is better.
	worst := 0
	for i := 1; i < len(b.entries); i++ {
		if b.entries[i].RankScore < b.entries[worst].RankScore {
			worst = i
		}
	}
	if score > b.entries[worst].RankScore {
		delete(b.seen, b.entries[worst].Record.ID)
		b.entries[worst] = CandidateEntry{Record: rec, RankScore: score}
		b.seen[rec.ID] = worst
	}
}

// Entries returns the bucket's entries ordered by descending score, then
// ascending id, for deterministic iteration (spec.md §5 ordering
// guarantees).
func (b *CandidateBucket) Entries() []CandidateEntry {
	out := append([]CandidateEntry(nil), b.entries...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].RankScore != out[j].RankScore {
			return out[i].RankScore > out[j].RankScore
		}
		return out[i].Record.ID < out[j].Record.ID
	})
	return out
}

// Len returns the number of entries currently held.
func (b *CandidateBucket) Len() int { return len(b.entries) }
