package analyzer

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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
	require.NoError(t, err)
	return model.NewSequenceRecord(parsed, "", bigs(terms...), 64)
}

func TestAnalyze_RejectsEmptyQuery(t *testing.T) {
	s := store.NewInMemoryStore(nil)
	cfg := config.DefaultConfig()
	_, err := Analyze(context.Background(), s, model.SequenceQuery{}, cfg)
	require.Error(t, err)
}

func TestAnalyze_RejectsTooManyWildcards(t *testing.T) {
	s := store.NewInMemoryStore(nil)
	cfg := config.DefaultConfig()
	q := model.SequenceQuery{Terms: bigs(1, 2, 3, 4, 5), Wildcards: []int{0, 1, 2}}
	_, err := Analyze(context.Background(), s, q, cfg)
	require.Error(t, err)
}

func TestAnalyze_RejectsOutOfRangeWildcard(t *testing.T) {
	s := store.NewInMemoryStore(nil)
	cfg := config.DefaultConfig()
	q := model.SequenceQuery{Terms: bigs(1, 2, 3), Wildcards: []int{5}}
	_, err := Analyze(context.Background(), s, q, cfg)
	require.Error(t, err)
}

func TestAnalyze_FindsExactPrefixMatch(t *testing.T) {
	fib := rec(t, "A000045", 0, 1, 1, 2, 3, 5, 8, 13, 21)
	s := store.NewInMemoryStore([]*model.SequenceRecord{fib})
	cfg := config.DefaultConfig()

	q := model.SequenceQuery{Terms: bigs(0, 1, 1, 2, 3)}
	result, err := Analyze(context.Background(), s, q, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, result.ExactMatches)
	assert.Equal(t, fib.ID, result.ExactMatches[0].ID)
	assert.Equal(t, model.MatchPrefix, result.ExactMatches[0].MatchType)
}

func TestAnalyze_FindsCombinationMatch(t *testing.T) {
	a := rec(t, "A000001", 1, 2, 3, 4, 5)
	// b is not constant: a constant series has no defined correlation, so
	// similarity ranking would never put it in the combination bucket.
	b := rec(t, "A000002", 1, 4, 9, 16, 25)
	s := store.NewInMemoryStore([]*model.SequenceRecord{a, b})
	cfg := config.DefaultConfig()

	// query = 2*a + 3*b, far enough from either that it isn't an exact or
	// transform match on its own, exercising the combination stage.
	q := model.SequenceQuery{Terms: bigs(5, 16, 33, 56, 85), MinMatchLength: 3}
	result, err := Analyze(context.Background(), s, q, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, result.CombinationMatches)

	m := result.CombinationMatches[0]
	assert.Len(t, m.ComponentIDs, 2)
	assert.Contains(t, m.ComponentIDs, a.ID)
	assert.Contains(t, m.ComponentIDs, b.ID)
}

func TestAnalyze_AggregatesDiagnosticsFromEveryStage(t *testing.T) {
	a := rec(t, "A000001", 1, 2, 3, 4, 5)
	s := store.NewInMemoryStore([]*model.SequenceRecord{a})
	cfg := config.DefaultConfig()

	q := model.SequenceQuery{Terms: bigs(1, 2, 3, 4, 5), MinMatchLength: 3}
	result, err := Analyze(context.Background(), s, q, cfg)
	require.NoError(t, err)

	stages := make(map[string]bool)
	for _, d := range result.Diagnostics.Stages {
		stages[d.Stage] = true
	}
	assert.True(t, stages["exact"], "expected an 'exact' stage diagnostic")
}
