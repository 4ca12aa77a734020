// Package budget threads a wall-clock deadline through the pipeline's
// stages, checked at the safe points named in spec.md §5: between chains
// (transform), between candidate records (matcher/similarity), and between
// (pair, shift) iterations (combinations).
//
// The idiom is lifted from gokanlogic's constraint solvers
// (pkg/minikanren/concrete_solvers.go, context_utils.go): wrap the caller's
// context in a context.WithTimeout for the stage, and have the stage poll
// ctx.Err() at its safe points instead of threading a raw time.Time
// through every function signature.
package budget

import (
	"context"
	"time"
)

// Stage wraps parent with a per-stage timeout and returns the derived
// context together with its cancel func. The caller must call cancel (or
// defer it) once the stage returns.
func Stage(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = time.Hour // effectively unbounded; callers should not pass <= 0
	}
	return context.WithTimeout(parent, d)
}

// Exceeded reports whether ctx's deadline has passed or it was canceled.
// Call this at each safe point named in spec.md §5; it never blocks.
func Exceeded(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Seconds converts a spec.md-style float-seconds budget field into a
// time.Duration.
func Seconds(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

// Elapsed is a small stopwatch used to populate
// oeiserr.StageDiagnostic.Elapsed without every stage re-deriving it.
type Elapsed struct {
	start time.Time
}

// Start begins timing.
func Start() Elapsed { return Elapsed{start: time.Now()} }

// SecondsSince returns the elapsed wall-clock time in seconds.
func (e Elapsed) SecondsSince() float64 { return time.Since(e.start).Seconds() }
