package similarity

import (
	"context"
	"math"
	"math/big"
	"testing"

	"github.com/rahidz/oeis-offline-matcher/config"
	"github.com/rahidz/oeis-offline-matcher/model"
	"github.com/rahidz/oeis-offline-matcher/store"
)

func bigs(xs ...int64) []*big.Int {
	out := make([]*big.Int, len(xs))
	for i, x := range xs {
		out[i] = big.NewInt(x)
	}
	return out
}

func rec(t *testing.T, id string, terms ...int64) *model.SequenceRecord {
	t.Helper()
	parsed, err := model.ParseID(id)
	if err != nil {
		t.Fatalf("ParseID(%q): %v", id, err)
	}
	return model.NewSequenceRecord(parsed, "", bigs(terms...), 64)
}

func TestAffineFit_PerfectLinearRelation(t *testing.T) {
	r := []float64{1, 2, 3, 4, 5}
	q := make([]float64, len(r))
	for i, x := range r {
		q[i] = 3*x + 7
	}
	alpha, beta, ok := affineFit(r, q)
	if !ok {
		t.Fatal("affineFit should succeed on a non-constant series")
	}
	if math.Abs(alpha-3) > 1e-9 || math.Abs(beta-7) > 1e-9 {
		t.Errorf("affineFit = (%v, %v), want (3, 7)", alpha, beta)
	}
}

func TestAffineFit_ConstantSeriesIsUndefined(t *testing.T) {
	r := []float64{5, 5, 5, 5}
	q := []float64{1, 2, 3, 4}
	if _, _, ok := affineFit(r, q); ok {
		t.Error("affineFit should fail on a zero-variance series")
	}
}

func TestPearson_PerfectCorrelation(t *testing.T) {
	r := []float64{1, 2, 3, 4}
	q := []float64{2, 4, 6, 8}
	if got := pearson(r, q); math.Abs(got-1) > 1e-9 {
		t.Errorf("pearson = %v, want 1", got)
	}
}

func TestPearson_PerfectAnticorrelation(t *testing.T) {
	r := []float64{1, 2, 3, 4}
	q := []float64{-1, -2, -3, -4}
	if got := pearson(r, q); math.Abs(got+1) > 1e-9 {
		t.Errorf("pearson = %v, want -1", got)
	}
}

func TestRank_FindsAffinelyRelatedCandidate(t *testing.T) {
	target := rec(t, "A000001", 3, 5, 7, 9, 11) // 2*n+1: gcd 1, divides the query's gcd
	noise := rec(t, "A000002", 1, 97, 3, 55, 2)  // unrelated, also gcd 1
	s := store.NewInMemoryStore([]*model.SequenceRecord{target, noise})

	q := model.SequenceQuery{Terms: bigs(1, 2, 3, 4, 5)} // n
	cfg := config.DefaultConfig()

	candidates, diag := Rank(context.Background(), s, q, cfg)
	if diag.CandidatesPost == 0 {
		t.Fatal("expected at least one similarity candidate")
	}
	found := false
	for _, c := range candidates {
		if c.Record.ID == target.ID {
			found = true
			if c.RankScore < cfg.SimilarityMinCorr {
				t.Errorf("RankScore = %v, below the configured minimum correlation", c.RankScore)
			}
		}
	}
	if !found {
		t.Error("an exact affine transform of the query should surface as a similarity candidate")
	}
}

func TestRank_OrderingIsDeterministic(t *testing.T) {
	a := rec(t, "A000002", 1, 2, 3, 4, 5)
	b := rec(t, "A000001", 1, 2, 3, 4, 5) // identical shape, lower id
	s := store.NewInMemoryStore([]*model.SequenceRecord{a, b})
	q := model.SequenceQuery{Terms: bigs(1, 2, 3, 4, 5)}
	cfg := config.DefaultConfig()

	candidates, _ := Rank(context.Background(), s, q, cfg)
	if len(candidates) < 2 {
		t.Fatal("expected both candidates to tie and both to surface")
	}
	if candidates[0].Record.ID != b.ID {
		t.Error("equal-score candidates should be ordered by ascending id")
	}
}
