package transform

import (
	"context"

	"github.com/rahidz/oeis-offline-matcher/config"
	"github.com/rahidz/oeis-offline-matcher/invariant"
	"github.com/rahidz/oeis-offline-matcher/kmpmatch"
	"github.com/rahidz/oeis-offline-matcher/model"
	"github.com/rahidz/oeis-offline-matcher/oeiserr"
	"github.com/rahidz/oeis-offline-matcher/store"
)

// Search enumerates chains over q, then for each distinct transformed
// query reruns the invariant filter and matcher against st, tagging every
// resulting Match with its chain and rescoring it per spec.md §4.4:
// score = length_matched / (1 + chain_complexity).
func Search(ctx context.Context, st store.SequenceStore, q model.SequenceQuery, cfg config.Config) ([]model.Match, oeiserr.StageDiagnostic) {
	chains, diag := Enumerate(ctx, q, cfg)

	var out []model.Match
	for _, chain := range chains {
		if budgetExceeded(ctx) {
			diag.Truncated = true
			diag.TruncatedBy = oeiserr.CapTransformTime
			break
		}
		transformed := model.SequenceQuery{
			Terms:            chain.Output,
			MinMatchLength:   q.MinMatchLength,
			AllowSubsequence: q.AllowSubsequence,
		}
		if transformed.Length() < transformed.MinMatchLength {
			continue
		}

		mode := invariant.ModePrefix
		if transformed.AllowSubsequence {
			mode = invariant.ModeSubsequence
		}
		plan := invariant.Derive(transformed, mode)
		cur := plan.Run(st)
		matches := kmpmatch.ScanCandidates(ctx, cur, transformed, transformed.AllowSubsequence)

		for _, m := range matches {
			m.Score = float64(m.Length) / float64(1+chain.Complexity)
			m.TransformChain = chain.Steps
			out = append(out, m)
		}
	}
	diag.CandidatesPre = len(chains)
	return out, diag
}

func budgetExceeded(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
