// Package oeismatcher provides an offline engine for explaining an integer
// sequence against a local corpus of known sequences.
//
// oeismatcher runs every query through four stages -- exact prefix/
// subsequence matching, transform search (scale, shift, differences, and
// classical sequence transforms), similarity ranking (affine best-fit and
// Pearson correlation), and linear-combination solving (2- or 3-term exact
// rational reconstructions) -- and returns every hit each stage found,
// never just the first.
//
// Basic usage:
//
//	st := store.NewInMemoryStore(records)
//	m := oeismatcher.New(st, oeismatcher.DefaultConfig())
//	q, err := m.ParseQuery("1,1,2,3,5,8,13")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := m.Analyze(ctx, q)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, match := range result.ExactMatches {
//	    fmt.Println(match.ID)
//	}
//
// Profiles trade search depth for latency:
//
//	m := oeismatcher.New(st, oeismatcher.ForProfile(config.ProfileFast))
package oeismatcher

import (
	"context"
	"math/big"
	"strconv"
	"strings"

	"github.com/rahidz/oeis-offline-matcher/analyzer"
	"github.com/rahidz/oeis-offline-matcher/config"
	"github.com/rahidz/oeis-offline-matcher/model"
	"github.com/rahidz/oeis-offline-matcher/store"
)

// Matcher binds a SequenceStore and a Config into a ready-to-query engine.
//
// A Matcher is safe to use concurrently from multiple goroutines: it holds
// no mutable state of its own, only a read-only store reference and an
// immutable Config value.
type Matcher struct {
	store store.SequenceStore
	cfg   config.Config
}

// New returns a Matcher over st configured by cfg.
//
// Example:
//
//	m := oeismatcher.New(myStore, oeismatcher.DefaultConfig())
func New(st store.SequenceStore, cfg config.Config) *Matcher {
	return &Matcher{store: st, cfg: cfg}
}

// DefaultConfig returns the "deep" profile config (spec.md §6's baseline).
func DefaultConfig() config.Config { return config.DefaultConfig() }

// ForProfile returns the config preset for the named profile.
//
// Example:
//
//	m := oeismatcher.New(myStore, oeismatcher.ForProfile(config.ProfileMax))
func ForProfile(p config.Profile) config.Config { return config.ForProfile(p) }

// Analyze runs the full pipeline against q and returns every stage's
// findings. See analyzer.Analyze for the per-stage error and diagnostics
// contract.
func (m *Matcher) Analyze(ctx context.Context, q model.SequenceQuery) (*model.AnalysisResult, error) {
	return analyzer.Analyze(ctx, m.store, q, m.cfg)
}

// ParseQuery parses a comma- or whitespace-separated list of integers into
// a SequenceQuery, using the matcher's configured MinMatchLength. The
// token "?" marks a wildcard position (spec.md §3).
//
// Example:
//
//	q, err := m.ParseQuery("1, 1, 2, ?, 5, 8")
func (m *Matcher) ParseQuery(s string) (model.SequenceQuery, error) {
	q, err := parseTerms(s)
	if err != nil {
		return model.SequenceQuery{}, err
	}
	q.MinMatchLength = m.cfg.MinMatchLength
	return q, nil
}

func parseTerms(s string) (model.SequenceQuery, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	terms := make([]*big.Int, 0, len(fields))
	var wildcards []int
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "?" {
			wildcards = append(wildcards, i)
			terms = append(terms, big.NewInt(0))
			continue
		}
		n, ok := new(big.Int).SetString(f, 10)
		if !ok {
			return model.SequenceQuery{}, &strconvError{token: f}
		}
		terms = append(terms, n)
	}
	return model.SequenceQuery{Terms: terms, Wildcards: wildcards}, nil
}

// strconvError reports a query token that did not parse as an integer.
type strconvError struct{ token string }

func (e *strconvError) Error() string {
	return "oeismatcher: invalid integer token " + strconv.Quote(e.token)
}
