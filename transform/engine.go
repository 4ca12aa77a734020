package transform

import (
	"context"
	"math"
	"math/big"
	"strings"

	"github.com/rahidz/oeis-offline-matcher/budget"
	"github.com/rahidz/oeis-offline-matcher/config"
	"github.com/rahidz/oeis-offline-matcher/model"
	"github.com/rahidz/oeis-offline-matcher/oeiserr"
)

// Chain is one enumerated operator composition together with its result on
// the query.
type Chain struct {
	Steps      []model.ChainStep
	Complexity int
	Output     []*big.Int
}

// Table returns the operator rows enabled by cfg.TransformOperatorSet. An
// empty set means "everything" (used by tests exercising the full table).
func Table(cfg config.Config) []Spec {
	all := append(append(basicOperators(), optInOperators()...), exoticOperators()...)
	if len(cfg.TransformOperatorSet) == 0 {
		return all
	}
	enabled := make(map[string]bool, len(cfg.TransformOperatorSet))
	for _, t := range cfg.TransformOperatorSet {
		enabled[t] = true
	}
	out := make([]Spec, 0, len(all))
	for _, s := range all {
		if enabled[s.Tag] {
			out = append(out, s)
		}
	}
	return out
}

// Enumerate performs the depth-first chain search described in spec.md
// §4.4: up to cfg.MaxTransformDepth operator applications, deduped,
// filtered by the variance floor, under a wall-clock and chain-count
// budget. Deadlines are checked between chains (spec.md §5).
func Enumerate(ctx context.Context, q model.SequenceQuery, cfg config.Config) ([]Chain, oeiserr.StageDiagnostic) {
	diag := oeiserr.StageDiagnostic{Stage: "transform"}
	table := Table(cfg)
	if cfg.MaxTransformDepth <= 0 || len(table) == 0 {
		diag.Skipped = true
		return nil, diag
	}

	elapsed := budget.Start()
	deadline := budgetDeadline(cfg.TransformMaxTime)

	queryVariance := queryVarianceOf(q)
	seen := make(map[string]int) // signature -> index into results with lowest complexity so far
	var results []Chain

	var truncated bool
	var truncatedBy oeiserr.Cap

	type frame struct {
		steps      []model.ChainStep
		complexity int
		terms      []*big.Int
		depth      int
	}

	stack := []frame{{terms: q.Terms}}
	count := 0
	for len(stack) > 0 {
		if budget.Exceeded(ctx) || elapsed.SecondsSince() > deadline {
			truncated = true
			truncatedBy = oeiserr.CapTransformTime
			break
		}
		if cfg.MaxTransformChains > 0 && count >= cfg.MaxTransformChains {
			truncated = true
			truncatedBy = oeiserr.CapMaxChains
			break
		}

		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(f.steps) > 0 {
			count++
			if accept(f.terms, q, queryVariance, cfg.TransformMinVariance) {
				sig := signature(f.terms)
				if idx, ok := seen[sig]; ok {
					if f.complexity < results[idx].Complexity {
						results[idx] = Chain{Steps: f.steps, Complexity: f.complexity, Output: f.terms}
					}
				} else {
					seen[sig] = len(results)
					results = append(results, Chain{Steps: f.steps, Complexity: f.complexity, Output: f.terms})
				}
			}
		}

		if f.depth >= cfg.MaxTransformDepth {
			continue
		}
		for _, spec := range table {
			for _, v := range spec.Variants() {
				out, ok := v.Apply(f.terms)
				if !ok || len(out) == 0 {
					continue
				}
				steps := append(append([]model.ChainStep(nil), f.steps...), v.Step)
				complexity := chainComplexity(steps, table)
				stack = append(stack, frame{
					steps:      steps,
					complexity: complexity,
					terms:      out,
					depth:      f.depth + 1,
				})
			}
		}
	}

	diag.CandidatesPost = len(results)
	diag.Elapsed = elapsed.SecondsSince()
	diag.Truncated = truncated
	diag.TruncatedBy = truncatedBy
	return results, diag
}

// accept implements spec.md §4.4's discard rules: empty/all-zero outputs
// are dropped unless the query itself is all-zero, and outputs below the
// variance floor are dropped unless the query is itself near-zero
// variance.
func accept(out []*big.Int, q model.SequenceQuery, queryVariance, minVariance float64) bool {
	if len(out) == 0 {
		return false
	}
	if allZero(out) && !allZero(q.Terms) {
		return false
	}
	if queryVariance > minVariance {
		if variance(out) < minVariance {
			return false
		}
	}
	return true
}

func allZero(xs []*big.Int) bool {
	for _, x := range xs {
		if x.Sign() != 0 {
			return false
		}
	}
	return true
}

func variance(xs []*big.Int) float64 {
	if len(xs) == 0 {
		return 0
	}
	fs := make([]float64, len(xs))
	var sum float64
	for i, x := range xs {
		f, _ := new(big.Float).SetInt(x).Float64()
		fs[i] = f
		sum += f
	}
	mean := sum / float64(len(fs))
	var ss float64
	for _, f := range fs {
		d := f - mean
		ss += d * d
	}
	return ss / float64(len(fs))
}

func queryVarianceOf(q model.SequenceQuery) float64 { return variance(q.Terms) }

// chainComplexity sums each step's operator weight and adds 1 if the chain
// has more than one step (spec.md §4.4).
func chainComplexity(steps []model.ChainStep, table []Spec) int {
	weight := func(tag string) int {
		for _, s := range table {
			if s.Tag == tag {
				return s.Weight
			}
		}
		return 1
	}
	sum := 0
	for _, s := range steps {
		sum += weight(s.Operator)
	}
	if len(steps) > 1 {
		sum++
	}
	return sum
}

func signature(xs []*big.Int) string {
	var b strings.Builder
	for i, x := range xs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(x.String())
	}
	return b.String()
}

func budgetDeadline(budgetSeconds float64) float64 {
	if budgetSeconds <= 0 {
		return math.MaxFloat64
	}
	return budgetSeconds
}
