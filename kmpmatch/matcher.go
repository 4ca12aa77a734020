// Package kmpmatch implements the exact matcher: prefix comparison and
// Knuth-Morris-Pratt subsequence search over a candidate stream
// (spec.md §4.3).
package kmpmatch

import (
	"context"
	"math/big"

	"github.com/rahidz/oeis-offline-matcher/model"
	"github.com/rahidz/oeis-offline-matcher/store"
)

// MaxSubsequenceOffsets caps how many occurrence offsets are reported per
// record (spec.md §4.3: "capped at 4 per record").
const MaxSubsequenceOffsets = 4

// termEqual compares a query term at position i (honoring wildcards)
// against a stored term.
func termEqual(q model.SequenceQuery, i int, stored *big.Int) bool {
	if q.IsWildcard(i) {
		return true
	}
	return q.Terms[i].Cmp(stored) == 0
}

// MatchPrefix compares query.Terms against rec.Terms[:len(query)]
// term-by-term with an early exit on first mismatch (spec.md §4.3).
func MatchPrefix(q model.SequenceQuery, rec *model.SequenceRecord) (model.Match, bool) {
	n := q.Length()
	if rec.Length < n {
		return model.Match{}, false
	}
	for i := 0; i < n; i++ {
		if !termEqual(q, i, rec.Terms[i]) {
			return model.Match{}, false
		}
	}
	return model.Match{
		ID:        rec.ID,
		MatchType: model.MatchPrefix,
		Offset:    0,
		Length:    n,
		Score:     float64(n),
	}, true
}

// MatchSubsequence runs KMP (or, when the query carries wildcards, a
// sliding-window scan -- spec.md §4.4's "Subsequence match with wildcards"
// open question resolves to this fallback) over rec.Terms, reporting up to
// MaxSubsequenceOffsets occurrences. The returned Match records the
// smallest offset, per spec.md §4.3.
func MatchSubsequence(q model.SequenceQuery, rec *model.SequenceRecord) (model.Match, bool) {
	n := q.Length()
	if rec.Length < n {
		return model.Match{}, false
	}

	var offsets []int
	if len(q.Wildcards) == 0 {
		offsets = kmpSearch(q.Terms, rec.Terms, MaxSubsequenceOffsets)
	} else {
		offsets = wildcardScan(q, rec.Terms, MaxSubsequenceOffsets)
	}
	if len(offsets) == 0 {
		return model.Match{}, false
	}
	return model.Match{
		ID:        rec.ID,
		MatchType: model.MatchSubsequence,
		Offset:    offsets[0],
		Length:    n,
		Score:     float64(n - 1),
	}, true
}

// kmpSearch finds every occurrence of pattern in text using the classic
// failure-function automaton, stopping once maxOffsets have been found.
func kmpSearch(pattern, text []*big.Int, maxOffsets int) []int {
	m := len(pattern)
	if m == 0 || m > len(text) {
		return nil
	}
	fail := kmpFailure(pattern)

	var offsets []int
	k := 0
	for i := 0; i < len(text); i++ {
		for k > 0 && pattern[k].Cmp(text[i]) != 0 {
			k = fail[k-1]
		}
		if pattern[k].Cmp(text[i]) == 0 {
			k++
		}
		if k == m {
			offsets = append(offsets, i-m+1)
			if len(offsets) >= maxOffsets {
				return offsets
			}
			k = fail[k-1]
		}
	}
	return offsets
}

// kmpFailure computes the standard KMP failure (longest proper
// prefix-suffix) table for pattern.
func kmpFailure(pattern []*big.Int) []int {
	m := len(pattern)
	fail := make([]int, m)
	k := 0
	for i := 1; i < m; i++ {
		for k > 0 && pattern[k].Cmp(pattern[i]) != 0 {
			k = fail[k-1]
		}
		if pattern[k].Cmp(pattern[i]) == 0 {
			k++
		}
		fail[i] = k
	}
	return fail
}

// wildcardScan is the naive O(n*m) fallback used whenever the pattern
// carries wildcard positions, since KMP's failure function assumes exact
// self-overlap and a wildcard breaks that assumption for multi-wildcard
// patterns (spec.md §9).
func wildcardScan(q model.SequenceQuery, text []*big.Int, maxOffsets int) []int {
	m := q.Length()
	var offsets []int
	for start := 0; start+m <= len(text); start++ {
		ok := true
		for i := 0; i < m; i++ {
			if !termEqual(q, i, text[start+i]) {
				ok = false
				break
			}
		}
		if ok {
			offsets = append(offsets, start)
			if len(offsets) >= maxOffsets {
				return offsets
			}
		}
	}
	return offsets
}

// ScanCandidates pulls candidates from cur and matches each against q,
// emitting a Match per record that satisfies either prefix or (if
// allowSubsequence) subsequence matching. Matches are emitted in the
// cursor's (id-ascending) order, per spec.md §5.
func ScanCandidates(ctx context.Context, cur store.Cursor, q model.SequenceQuery, allowSubsequence bool) []model.Match {
	defer cur.Close()
	var out []model.Match
	for {
		rec, ok, err := cur.Next(ctx)
		if err != nil || !ok {
			break
		}
		if m, found := MatchPrefix(q, rec); found {
			out = append(out, m)
			continue
		}
		if allowSubsequence {
			if m, found := MatchSubsequence(q, rec); found {
				out = append(out, m)
			}
		}
	}
	return out
}
