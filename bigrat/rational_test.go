package bigrat

import (
	"math/big"
	"testing"
)

func TestNew_Reduces(t *testing.T) {
	r := New(big.NewInt(4), big.NewInt(8))
	if r.Num().Int64() != 1 || r.Den().Int64() != 2 {
		t.Errorf("New(4,8) = %s, want 1/2", r.String())
	}
}

func TestNew_NormalizesSign(t *testing.T) {
	r := New(big.NewInt(3), big.NewInt(-4))
	if r.Num().Int64() != -3 || r.Den().Int64() != 4 {
		t.Errorf("New(3,-4) = %s, want -3/4", r.String())
	}
}

func TestNew_ZeroNumerator(t *testing.T) {
	r := New(big.NewInt(0), big.NewInt(5))
	if !r.IsZero() || r.Den().Int64() != 1 {
		t.Errorf("New(0,5) = %s, want 0/1", r.String())
	}
}

func TestNew_PanicsOnZeroDenominator(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(1,0) did not panic")
		}
	}()
	New(big.NewInt(1), big.NewInt(0))
}

func TestArithmetic(t *testing.T) {
	half := New(big.NewInt(1), big.NewInt(2))
	third := New(big.NewInt(1), big.NewInt(3))

	if sum := half.Add(third); !sum.Equal(New(big.NewInt(5), big.NewInt(6))) {
		t.Errorf("1/2 + 1/3 = %s, want 5/6", sum)
	}
	if diff := half.Sub(third); !diff.Equal(New(big.NewInt(1), big.NewInt(6))) {
		t.Errorf("1/2 - 1/3 = %s, want 1/6", diff)
	}
	if prod := half.Mul(third); !prod.Equal(New(big.NewInt(1), big.NewInt(6))) {
		t.Errorf("1/2 * 1/3 = %s, want 1/6", prod)
	}
	if quot := half.Div(third); !quot.Equal(New(big.NewInt(3), big.NewInt(2))) {
		t.Errorf("1/2 / 1/3 = %s, want 3/2", quot)
	}
}

func TestDiv_PanicsOnZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Div by zero did not panic")
		}
	}()
	FromInt(1).Div(Zero())
}

func TestCmp(t *testing.T) {
	a := New(big.NewInt(2), big.NewInt(3))
	b := New(big.NewInt(3), big.NewInt(4))
	if a.Cmp(b) >= 0 {
		t.Errorf("2/3 should be < 3/4")
	}
	if b.Cmp(a) <= 0 {
		t.Errorf("3/4 should be > 2/3")
	}
	if a.Cmp(a) != 0 {
		t.Errorf("2/3 should equal itself")
	}
}

func TestIsInt(t *testing.T) {
	if !FromInt(4).IsInt() {
		t.Error("4/1 should be an integer")
	}
	if New(big.NewInt(4), big.NewInt(2)).String() != "2" {
		t.Errorf("4/2 should reduce and print as an integer")
	}
	if New(big.NewInt(1), big.NewInt(2)).IsInt() {
		t.Error("1/2 should not be an integer")
	}
}

func TestString(t *testing.T) {
	if got := New(big.NewInt(3), big.NewInt(4)).String(); got != "3/4" {
		t.Errorf("String() = %q, want 3/4", got)
	}
	if got := FromInt(-2).String(); got != "-2" {
		t.Errorf("String() = %q, want -2", got)
	}
}
