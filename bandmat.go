package spiro

import "math"

// bandRow is one row of a band matrix with 5 sub-diagonals and 5
// super-diagonals. a holds the row's 11 band entries, al the multipliers of
// the row's LU decomposition.
type bandRow struct {
	a  [11]float64
	al [5]float64
}

// bandMatrix is a square band matrix, stored row by row.
type bandMatrix []bandRow

// Pivots smaller than this are clamped to avoid division by zero.
const minPivot = 1e-12

// decompose computes the LU decomposition of the first n rows of m in place,
// using partial pivoting. perm receives the row swaps.
//
// Before decomposition, row i has its diagonal at a[5]. Because the first
// five rows have fewer than five sub-diagonal entries, they are shifted left
// so that every row starts at a[0].
func (m bandMatrix) decompose(perm []int, n int) {
	for i := range 5 {
		j := 0
		for ; j < i+6; j++ {
			m[i].a[j] = m[i].a[j+5-i]
		}
		for ; j < 11; j++ {
			m[i].a[j] = 0
		}
	}

	l := 5
	for k := range n {
		pivot := k
		pivotVal := m[k].a[0]
		l = min(l+1, n)

		for j := k + 1; j < l; j++ {
			if math.Abs(m[j].a[0]) > math.Abs(pivotVal) {
				pivotVal = m[j].a[0]
				pivot = j
			}
		}

		perm[k] = pivot
		if pivot != k {
			m[k].a, m[pivot].a = m[pivot].a, m[k].a
		}

		if math.Abs(pivotVal) < minPivot {
			pivotVal = minPivot
		}
		scale := 1 / pivotVal
		for i := k + 1; i < l; i++ {
			x := m[i].a[0] * scale
			m[k].al[i-k-1] = x
			for j := 1; j < 11; j++ {
				m[i].a[j-1] = m[i].a[j] - x*m[k].a[j]
			}
			m[i].a[10] = 0
		}
	}
}

// solve solves the decomposed system for the right-hand side v, in place.
func (m bandMatrix) solve(perm []int, v []float64, n int) {
	l := 5
	for k := range n {
		if i := perm[k]; i != k {
			v[k], v[i] = v[i], v[k]
		}
		if l < n {
			l++
		}
		for i := k + 1; i < l; i++ {
			v[i] -= m[k].al[i-k-1] * v[k]
		}
	}

	l = 1
	for i := n - 1; i >= 0; i-- {
		x := v[i]
		for k := 1; k < l; k++ {
			x -= m[i].a[k] * v[k+i]
		}
		v[i] = x / m[i].a[0]
		if l < 11 {
			l++
		}
	}
}
