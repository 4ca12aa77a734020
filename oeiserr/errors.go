// Package oeiserr defines the error kinds and diagnostics shared across the
// matching pipeline.
//
// Only QueryInvalid and StoreUnavailable are defined as Go errors for a
// caller. A budget cap that stops a stage is recorded in Diagnostics as a
// truncated stage (Truncated, TruncatedBy); degenerate transform outputs
// are dropped without a diagnostic entry, and there is no numeric-overflow
// kind, since all sequence arithmetic is arbitrary-precision (spec.md §7).
package oeiserr

import "github.com/pkg/errors"

// Sentinel error values, tested with errors.Is. Wrapped with
// github.com/pkg/errors where a cause needs to travel with the error
// (store I/O failures), in the idiom aretext/aretext uses for its locator
// and file-loading errors.
var (
	// ErrQueryInvalid means the query was empty, shorter than
	// MinMatchLength, used more wildcards than allowed, or contained a
	// non-integer token. No matching is attempted.
	ErrQueryInvalid = errors.New("oeis: invalid query")

	// ErrStoreUnavailable means the backing index was missing or
	// unreadable. Fatal to the current query.
	ErrStoreUnavailable = errors.New("oeis: store unavailable")

	// ErrNotFound is returned by SequenceStore.Get for an unknown id.
	ErrNotFound = errors.New("oeis: record not found")
)

// QueryError wraps ErrQueryInvalid with the specific reason.
type QueryError struct {
	Reason string
}

func (e *QueryError) Error() string { return "oeis: invalid query: " + e.Reason }
func (e *QueryError) Unwrap() error { return ErrQueryInvalid }

// StoreError wraps ErrStoreUnavailable with the underlying I/O cause.
type StoreError struct {
	Cause error
}

func (e *StoreError) Error() string {
	return errors.Wrap(e.Cause, "oeis: store unavailable").Error()
}
func (e *StoreError) Unwrap() error { return ErrStoreUnavailable }

// Cap names a complexity safeguard that can truncate a stage's search.
type Cap string

const (
	CapNone            Cap = ""
	CapMaxChecks       Cap = "max_checks"
	CapMaxTime         Cap = "max_time_per_query"
	CapMaxCandidates   Cap = "max_candidates_bucket"
	CapMaxChains       Cap = "max_transform_chains"
	CapTransformTime   Cap = "transform_max_time"
	CapTripleMaxChecks Cap = "triple_max_checks"
	CapTripleMaxTime   Cap = "triple_max_time"
)

// StageDiagnostic records one pipeline stage's execution for AnalysisResult.
type StageDiagnostic struct {
	Stage          string
	CandidatesPre  int
	CandidatesPost int
	Elapsed        float64 // seconds
	Truncated      bool
	TruncatedBy    Cap
	Skipped        bool
}

// Diagnostics aggregates every stage's StageDiagnostic for one query.
type Diagnostics struct {
	Stages []StageDiagnostic
}

// Add appends a stage diagnostic.
func (d *Diagnostics) Add(s StageDiagnostic) {
	d.Stages = append(d.Stages, s)
}

// AnyTruncated reports whether any stage hit a complexity safeguard.
func (d Diagnostics) AnyTruncated() bool {
	for _, s := range d.Stages {
		if s.Truncated {
			return true
		}
	}
	return false
}
