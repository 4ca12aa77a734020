// Package config holds the immutable configuration record threaded by
// value through every stage of the pipeline (spec.md §9 "Global state": no
// process-wide singletons). Its shape and Validate() method follow
// meta.Config / meta.DefaultConfig / meta.Config.Validate in the teacher
// regex engine.
package config

import "fmt"

// Profile selects a bulk preset for the budget-sensitive fields
// (spec.md §6).
type Profile string

const (
	ProfileFast Profile = "fast"
	ProfileDeep Profile = "deep"
	ProfileMax  Profile = "max"
)

// Config controls every tunable named in spec.md §6.
type Config struct {
	MaxStoredTerms int

	MinMatchLength   int
	AllowSubsequence bool
	MaxWildcards     int

	MaxTransformDepth    int
	TransformOperatorSet []string // empty means every operator in the transform table, whatever the profile
	TransformMaxTime     float64  // seconds
	TransformMinVariance float64
	MaxTransformChains   int

	SimilarityMinCorr float64
	SimilarityMaxNMSE float64
	SimilarityTopK    int

	ComboBucketSize         int
	ComboCoeffsA            []int // coefficient set for 'a' (excludes 0)
	ComboCoeffsB            []int // coefficient set for 'b'/'c'
	ComboCoeffDenom         int   // max_denom
	ComboMaxCoeffNum        int   // max_coeff_num
	ComboMaxShift           int
	ComboMaxShiftBack       int
	ComboComponentTransform []string // enabled per-component transforms
	ComboMaxChecks          int
	ComboMaxTime            float64 // seconds

	TripleEnabled   bool
	TripleBucketCap int
	TripleMaxChecks int
	TripleMaxTime   float64 // seconds

	Profile Profile
}

// DefaultConfig returns the "deep" profile: the baseline defaults named
// throughout spec.md §3, §4, §6.
func DefaultConfig() Config {
	return Profile("").deepConfig()
}

// ForProfile returns the Config for one of the three named presets,
// falling back to the "deep" defaults for an unrecognized profile name
// (mirrors meta.DefaultConfig's "sensible defaults" stance).
func ForProfile(p Profile) Config {
	switch p {
	case ProfileFast:
		return p.fastConfig()
	case ProfileMax:
		return p.maxConfig()
	default:
		return p.deepConfig()
	}
}

func baseConfig() Config {
	return Config{
		MaxStoredTerms:   64,
		MinMatchLength:   3,
		AllowSubsequence: false,
		MaxWildcards:     2,

		TransformMinVariance: 1e-9,

		SimilarityMinCorr: 0.9,
		SimilarityMaxNMSE: 0.05,
		SimilarityTopK:    100,

		ComboBucketSize:   60,
		ComboCoeffsA:      symmetricRange(5, true),
		ComboCoeffsB:      symmetricRange(5, false),
		ComboCoeffDenom:   12,
		ComboMaxCoeffNum:  20,
		ComboMaxShift:     3,
		ComboMaxShiftBack: 3,
		ComboComponentTransform: []string{
			"identity", "diff", "partial_sum",
		},

		TripleEnabled:   false,
		TripleBucketCap: 30,
	}
}

func (p Profile) fastConfig() Config {
	c := baseConfig()
	c.Profile = ProfileFast
	c.MaxTransformDepth = 1
	c.TransformMaxTime = 0.5
	c.MaxTransformChains = 2000
	c.ComboMaxChecks = 20000
	c.ComboMaxTime = 1
	c.TripleMaxChecks = 20000
	c.TripleMaxTime = 1
	c.TransformOperatorSet = basicOperators()
	return c
}

func (p Profile) deepConfig() Config {
	c := baseConfig()
	c.Profile = ProfileDeep
	c.MaxTransformDepth = 2
	c.TransformMaxTime = 2
	c.MaxTransformChains = 20000
	c.ComboMaxChecks = 200000
	c.ComboMaxTime = 5
	c.TripleMaxChecks = 200000
	c.TripleMaxTime = 5
	c.TransformOperatorSet = append(basicOperators(), optInOperators()...)
	return c
}

func (p Profile) maxConfig() Config {
	c := baseConfig()
	c.Profile = ProfileMax
	c.MaxTransformDepth = 3
	c.TransformMaxTime = 60
	c.MaxTransformChains = 200000
	c.ComboMaxChecks = 5_000_000
	c.ComboMaxTime = 600
	c.TripleEnabled = true
	c.TripleMaxChecks = 5_000_000
	c.TripleMaxTime = 600
	c.TransformOperatorSet = append(append(basicOperators(), optInOperators()...), exoticOperators()...)
	return c
}

func basicOperators() []string {
	return []string{
		"scale", "affine", "shift_forward", "shift_back", "diff", "diff2",
		"partial_sum", "abs", "gcd_norm", "decimate", "reverse",
		"even_indexed", "odd_indexed", "movsum", "cumprod",
	}
}

func optInOperators() []string {
	return []string{"popcount", "digit_sum", "rle", "rle_decode", "concat_index"}
}

func exoticOperators() []string {
	return []string{"mod", "xor_index", "log", "exp", "binomial", "euler", "mobius"}
}

func symmetricRange(n int, excludeZero bool) []int {
	out := make([]int, 0, 2*n+1)
	for i := -n; i <= n; i++ {
		if excludeZero && i == 0 {
			continue
		}
		out = append(out, i)
	}
	return out
}

// Validate checks every range-bound field, in the style of
// meta.Config.Validate: one ConfigError per first violation found.
func (c Config) Validate() error {
	if c.MaxStoredTerms < 64 {
		return &ConfigError{Field: "MaxStoredTerms", Message: "must be >= 64"}
	}
	if c.MinMatchLength < 1 {
		return &ConfigError{Field: "MinMatchLength", Message: "must be >= 1"}
	}
	if c.MaxWildcards < 0 {
		return &ConfigError{Field: "MaxWildcards", Message: "must be >= 0"}
	}
	if c.MaxTransformDepth < 0 || c.MaxTransformDepth > 3 {
		return &ConfigError{Field: "MaxTransformDepth", Message: "must be between 0 and 3"}
	}
	if c.TransformMaxTime <= 0 {
		return &ConfigError{Field: "TransformMaxTime", Message: "must be > 0"}
	}
	if c.SimilarityTopK < 1 || c.SimilarityTopK > 200 {
		return &ConfigError{Field: "SimilarityTopK", Message: "must be between 1 and 200"}
	}
	if c.SimilarityMinCorr < 0 || c.SimilarityMinCorr > 1 {
		return &ConfigError{Field: "SimilarityMinCorr", Message: "must be between 0 and 1"}
	}
	if c.ComboBucketSize < 1 || c.ComboBucketSize > 200 {
		return &ConfigError{Field: "ComboBucketSize", Message: "must be between 1 and 200"}
	}
	if c.ComboCoeffDenom < 1 {
		return &ConfigError{Field: "ComboCoeffDenom", Message: "must be >= 1"}
	}
	if c.ComboMaxShift < 0 || c.ComboMaxShiftBack < 0 {
		return &ConfigError{Field: "ComboMaxShift", Message: "must be >= 0"}
	}
	if c.ComboMaxTime <= 0 {
		return &ConfigError{Field: "ComboMaxTime", Message: "must be > 0"}
	}
	if c.TripleEnabled && c.TripleBucketCap < 1 {
		return &ConfigError{Field: "TripleBucketCap", Message: "must be >= 1 when triples are enabled"}
	}
	return nil
}

// ConfigError reports an out-of-range configuration field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: invalid %s: %s", e.Field, e.Message)
}
