// Package analyzer orchestrates the full pipeline -- exact matching,
// transform search, similarity ranking, and combination solving -- into
// one AnalysisResult per query (spec.md §3). Transform search and
// combination solving each run under a deadline derived from their own
// configured time budget, so a slow one cannot eat into the time the stages
// after it need; exact matching and similarity ranking have no budget field
// of their own and run under the caller's context.
package analyzer

import (
	"context"

	"github.com/rahidz/oeis-offline-matcher/budget"
	"github.com/rahidz/oeis-offline-matcher/combo"
	"github.com/rahidz/oeis-offline-matcher/config"
	"github.com/rahidz/oeis-offline-matcher/invariant"
	"github.com/rahidz/oeis-offline-matcher/kmpmatch"
	"github.com/rahidz/oeis-offline-matcher/model"
	"github.com/rahidz/oeis-offline-matcher/oeiserr"
	"github.com/rahidz/oeis-offline-matcher/similarity"
	"github.com/rahidz/oeis-offline-matcher/store"
	"github.com/rahidz/oeis-offline-matcher/transform"
)

// Analyze runs every enabled stage against st for q and returns the
// aggregated result. The only error returned is ErrQueryInvalid (q fails
// basic shape checks). A cursor error in any stage, including a cancelled
// or expired ctx, ends that stage's scan early: the stage keeps what it
// found so far, and the cursor error is neither returned (there is no
// ErrStoreUnavailable path) nor recorded in Diagnostics. Every other
// failure mode is a degraded result, never a Go error (spec.md §7).
func Analyze(ctx context.Context, st store.SequenceStore, q model.SequenceQuery, cfg config.Config) (*model.AnalysisResult, error) {
	if err := validateQuery(q, cfg); err != nil {
		return nil, err
	}

	result := &model.AnalysisResult{Query: q}

	exactMatches, exactDiag := runExact(ctx, st, q)
	result.ExactMatches = exactMatches
	result.Diagnostics.Add(exactDiag)

	// transform and combo each have their own configured wall-clock budget
	// (TransformMaxTime, ComboMaxTime/TripleMaxTime); derive a per-stage
	// deadline via budget.Stage so a runaway stage can't eat into time a
	// later stage needed, rather than relying solely on each stage's
	// internal elapsed-time polling. Exact match and similarity have no
	// dedicated budget field in Config and so run under the caller's own
	// ctx deadline, same as before.
	transformCtx, cancelTransform := budget.Stage(ctx, budget.Seconds(cfg.TransformMaxTime))
	transformMatches, transformDiag := transform.Search(transformCtx, st, q, cfg)
	cancelTransform()
	result.TransformMatches = transformMatches
	result.Diagnostics.Add(transformDiag)

	similarityCandidates, similarityDiag := similarity.Rank(ctx, st, q, cfg)
	result.SimilarityCandidates = similarityCandidates
	result.Diagnostics.Add(similarityDiag)

	bucket := buildCandidateBucket(st, exactMatches, transformMatches, similarityCandidates, cfg)
	comboMaxTime := cfg.ComboMaxTime
	if cfg.TripleEnabled && cfg.TripleMaxTime > comboMaxTime {
		comboMaxTime = cfg.TripleMaxTime
	}
	comboCtx, cancelCombo := budget.Stage(ctx, budget.Seconds(comboMaxTime))
	comboMatches, comboDiags := combo.Solve(comboCtx, bucket, q, cfg)
	cancelCombo()
	result.CombinationMatches = comboMatches
	for _, d := range comboDiags.Stages {
		result.Diagnostics.Add(d)
	}

	return result, nil
}

// validateQuery implements spec.md §3's entry checks.
func validateQuery(q model.SequenceQuery, cfg config.Config) error {
	if q.Length() == 0 {
		return &oeiserr.QueryError{Reason: "empty query"}
	}
	minLen := q.MinMatchLength
	if minLen <= 0 {
		minLen = cfg.MinMatchLength
	}
	if q.Length() < minLen {
		return &oeiserr.QueryError{Reason: "query shorter than the minimum match length"}
	}
	maxWildcards := cfg.MaxWildcards
	if len(q.Wildcards) > maxWildcards {
		return &oeiserr.QueryError{Reason: "too many wildcard positions"}
	}
	for _, w := range q.Wildcards {
		if w < 0 || w >= q.Length() {
			return &oeiserr.QueryError{Reason: "wildcard position out of range"}
		}
	}
	return nil
}

// runExact implements the exact-match stage: direct prefix/subsequence
// matching against the raw query, before any transform is attempted
// (spec.md §4.3).
func runExact(ctx context.Context, st store.SequenceStore, q model.SequenceQuery) ([]model.Match, oeiserr.StageDiagnostic) {
	diag := oeiserr.StageDiagnostic{Stage: "exact"}
	elapsed := budget.Start()
	mode := invariant.ModePrefix
	if q.AllowSubsequence {
		mode = invariant.ModeSubsequence
	}
	plan := invariant.Derive(q, mode)
	cur := plan.Run(st)
	matches := kmpmatch.ScanCandidates(ctx, cur, q, q.AllowSubsequence)
	diag.CandidatesPost = len(matches)
	diag.Elapsed = elapsed.SecondsSince()
	return matches, diag
}

// buildCandidateBucket unions exact matches, transform matches, and
// similarity candidates into the deduplicated, capped bucket the
// combination solver consumes (spec.md §4.6). Exact and transform matches
// only carry an ID, so each is resolved back to its SequenceRecord via
// st.Get; a lookup failure (a store inconsistency) silently drops that
// candidate rather than failing the whole query.
func buildCandidateBucket(
	st store.SequenceStore,
	exactMatches, transformMatches []model.Match,
	similarityCandidates []model.CandidateEntry,
	cfg config.Config,
) *model.CandidateBucket {
	size := cfg.ComboBucketSize
	bucket := model.NewCandidateBucket(size)

	for _, m := range exactMatches {
		if rec, err := st.Get(m.ID); err == nil {
			bucket.Add(rec, m.Score)
		}
	}
	for _, m := range transformMatches {
		if rec, err := st.Get(m.ID); err == nil {
			bucket.Add(rec, m.Score)
		}
	}
	for _, c := range similarityCandidates {
		bucket.Add(c.Record, c.RankScore)
	}
	return bucket
}
