package oeiserr

import (
	"errors"
	"testing"
)

func TestQueryError_Unwraps(t *testing.T) {
	err := &QueryError{Reason: "too short"}
	if !errors.Is(err, ErrQueryInvalid) {
		t.Error("QueryError should unwrap to ErrQueryInvalid")
	}
}

func TestStoreError_Unwraps(t *testing.T) {
	err := &StoreError{Cause: errors.New("disk gone")}
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Error("StoreError should unwrap to ErrStoreUnavailable")
	}
}

func TestDiagnostics_AnyTruncated(t *testing.T) {
	var d Diagnostics
	d.Add(StageDiagnostic{Stage: "exact"})
	if d.AnyTruncated() {
		t.Error("no stage truncated yet")
	}
	d.Add(StageDiagnostic{Stage: "transform", Truncated: true, TruncatedBy: CapMaxChains})
	if !d.AnyTruncated() {
		t.Error("a truncated stage should make AnyTruncated true")
	}
}
