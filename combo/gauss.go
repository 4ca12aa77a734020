package combo

import "github.com/rahidz/oeis-offline-matcher/bigrat"

// selectIndependentRows scans coeff rows 0..k-1 (each of width `need`) and
// returns the first `need` row indices whose coefficient vectors are
// linearly independent, reducing them to row-echelon form as it goes.
// Rows are taken in input order and the first one that is independent of
// the rows already chosen is accepted; there is no magnitude-based pivot
// selection here since the arithmetic is exact bigrat.Rational (no
// floating-point cancellation to guard against), so any nonzero pivot
// works equally well.
func selectIndependentRows(rows [][]bigrat.Rational, need int) ([]int, [][]bigrat.Rational, bool) {
	var chosen []int
	reduced := make([][]bigrat.Rational, need) // reduced[c] is the chosen row pivoting on column c

	for r := range rows {
		candidate := append([]bigrat.Rational(nil), rows[r]...)
		// Eliminate against already-chosen, reduced rows.
		row := candidate
		for p := 0; p < need; p++ {
			if reduced[p] == nil || row[p].IsZero() {
				continue
			}
			factor := row[p].Div(reduced[p][p])
			row = subScaled(row, reduced[p], factor)
		}
		pivot := 0
		for pivot < need && row[pivot].IsZero() {
			pivot++
		}
		if pivot == need {
			continue
		}
		reduced[pivot] = row
		chosen = append(chosen, r)
		if len(chosen) == need {
			return chosen, reduced, true
		}
	}
	return nil, nil, false
}

func subScaled(row, pivot []bigrat.Rational, factor bigrat.Rational) []bigrat.Rational {
	out := make([]bigrat.Rational, len(row))
	for i := range row {
		out[i] = row[i].Sub(factor.Mul(pivot[i]))
	}
	return out
}

// solveUpperTriangular back-substitutes an already row-echelon-reduced
// need x (need+1) augmented system (coefficients | rhs) into the need
// unknowns.
func solveUpperTriangular(reduced [][]bigrat.Rational, need int) []bigrat.Rational {
	x := make([]bigrat.Rational, need)
	for i := need - 1; i >= 0; i-- {
		rhs := reduced[i][need]
		for j := i + 1; j < need; j++ {
			rhs = rhs.Sub(reduced[i][j].Mul(x[j]))
		}
		x[i] = rhs.Div(reduced[i][i])
	}
	return x
}

// solveExact picks the first `need` linearly independent rows of the
// augmented system [coeffs | rhs] (one row per aligned position) and
// solves exactly via Gaussian elimination (see selectIndependentRows for
// the row-selection rule).
func solveExact(coeffs [][]bigrat.Rational, rhs []bigrat.Rational, need int) ([]bigrat.Rational, bool) {
	if len(coeffs) < need {
		return nil, false
	}
	augmented := make([][]bigrat.Rational, len(coeffs))
	for i := range coeffs {
		row := make([]bigrat.Rational, need+1)
		copy(row, coeffs[i])
		row[need] = rhs[i]
		augmented[i] = row
	}
	_, reduced, ok := selectIndependentRows(augmented, need)
	if !ok {
		return nil, false
	}
	return solveUpperTriangular(reduced, need), true
}
