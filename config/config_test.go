package config

import "testing"

func TestForProfile_Defaults(t *testing.T) {
	fast := ForProfile(ProfileFast)
	deep := ForProfile(ProfileDeep)
	max := ForProfile(ProfileMax)

	if fast.MaxTransformDepth >= deep.MaxTransformDepth || deep.MaxTransformDepth >= max.MaxTransformDepth {
		t.Errorf("MaxTransformDepth should strictly increase fast < deep < max, got %d, %d, %d",
			fast.MaxTransformDepth, deep.MaxTransformDepth, max.MaxTransformDepth)
	}
	if fast.TripleEnabled || deep.TripleEnabled {
		t.Error("triple search should only be enabled in the max profile")
	}
	if !max.TripleEnabled {
		t.Error("max profile should enable triple search")
	}
}

func TestForProfile_UnknownFallsBackToDeep(t *testing.T) {
	got := ForProfile(Profile("bogus"))
	want := ForProfile(ProfileDeep)
	if got.MaxTransformDepth != want.MaxTransformDepth || got.Profile != want.Profile {
		t.Error("an unrecognized profile should fall back to the deep defaults")
	}
}

func TestDefaultConfig_IsDeep(t *testing.T) {
	if DefaultConfig().Profile != ProfileDeep {
		t.Errorf("DefaultConfig().Profile = %v, want %v", DefaultConfig().Profile, ProfileDeep)
	}
}

func TestValidate_RejectsOutOfRangeFields(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}

	bad := c
	bad.MaxStoredTerms = 1
	if err := bad.Validate(); err == nil {
		t.Error("MaxStoredTerms below 64 should fail validation")
	}

	bad = c
	bad.SimilarityTopK = 500
	if err := bad.Validate(); err == nil {
		t.Error("SimilarityTopK above 200 should fail validation")
	}

	bad = c
	bad.TripleEnabled = true
	bad.TripleBucketCap = 0
	if err := bad.Validate(); err == nil {
		t.Error("TripleBucketCap must be positive when triples are enabled")
	}
}

func TestSymmetricRange(t *testing.T) {
	withZero := symmetricRange(2, false)
	want := []int{-2, -1, 0, 1, 2}
	if len(withZero) != len(want) {
		t.Fatalf("symmetricRange(2,false) = %v, want %v", withZero, want)
	}
	for i := range want {
		if withZero[i] != want[i] {
			t.Errorf("symmetricRange(2,false)[%d] = %d, want %d", i, withZero[i], want[i])
		}
	}

	noZero := symmetricRange(2, true)
	for _, v := range noZero {
		if v == 0 {
			t.Error("symmetricRange(2,true) should exclude zero")
		}
	}
}
