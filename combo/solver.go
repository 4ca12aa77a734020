package combo

import (
	"context"
	"sort"

	"github.com/rahidz/oeis-offline-matcher/config"
	"github.com/rahidz/oeis-offline-matcher/model"
	"github.com/rahidz/oeis-offline-matcher/oeiserr"
)

// Solve runs the CombinationSolver over bucket (the deduplicated union of
// exact and similarity candidates) against q, returning every verified
// 2- or 3-term combination ordered per spec.md §4.6: ascending complexity,
// then descending length, then lexicographic component ids.
func Solve(ctx context.Context, bucket *model.CandidateBucket, q model.SequenceQuery, cfg config.Config) ([]model.CombinationMatch, oeiserr.Diagnostics) {
	var diags oeiserr.Diagnostics
	entries := bucket.Entries()
	recs := make([]*model.SequenceRecord, len(entries))
	for i, e := range entries {
		recs[i] = e.Record
	}

	pairMatches, pairDiag := pairSearch(ctx, recs, q, cfg)
	diags.Add(pairDiag)

	var tripleMatches []model.CombinationMatch
	if cfg.TripleEnabled {
		var tripleDiag oeiserr.StageDiagnostic
		tripleMatches, tripleDiag = tripleSearch(ctx, recs, q, cfg)
		diags.Add(tripleDiag)
	}

	all := append(pairMatches, tripleMatches...)
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Complexity != all[j].Complexity {
			return all[i].Complexity < all[j].Complexity
		}
		if all[i].Length != all[j].Length {
			return all[i].Length > all[j].Length
		}
		return lexLess(all[i].ComponentIDs, all[j].ComponentIDs)
	})
	return all, diags
}

func lexLess(a, b []model.ID) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
