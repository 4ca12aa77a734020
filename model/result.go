package model

import "github.com/rahidz/oeis-offline-matcher/oeiserr"

// AnalysisResult aggregates every stage's output for one query, plus
// per-stage diagnostics (spec.md §3).
type AnalysisResult struct {
	Query                SequenceQuery
	ExactMatches         []Match
	TransformMatches     []Match
	SimilarityCandidates []CandidateEntry
	CombinationMatches   []CombinationMatch
	Diagnostics          oeiserr.Diagnostics
}
