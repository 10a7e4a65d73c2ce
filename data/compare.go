// SPDX-License-Identifier: MIT

// Package data - tolerant numerical comparison.
//
// Relation (per entry, complex magnitude):
//
//	|a - b| <= atol + rtol*|b|
//
// Policy:
//   - NaN on either side makes the pair unequal, so Equal and IsZero are false.
//   - Any infinity makes the pair unequal, including Inf vs the same Inf,
//     unless Tolerance.InfEqual is set; then bit-identical infinite values match.
//   - Shape mismatch is handled by the dispatch layer (false, never an error).
package data

import (
	"math"
	"math/cmplx"
)

// CompareKernel decides tolerant equality of two same-shaped operands.
type CompareKernel func(a, b Data, tol Tolerance) bool

// hasNaN reports a NaN in either component.
func hasNaN(v complex128) bool { return math.IsNaN(real(v)) || math.IsNaN(imag(v)) }

// hasInf reports an infinity in either component.
func hasInf(v complex128) bool { return math.IsInf(real(v), 0) || math.IsInf(imag(v), 0) }

// closeTo applies the entry relation under tol.
func closeTo(a, b complex128, tol Tolerance) bool {
	if hasNaN(a) || hasNaN(b) {
		return false
	}
	if hasInf(a) || hasInf(b) {
		return tol.InfEqual && a == b
	}

	return cmplx.Abs(a-b) <= tol.Atol+tol.Rtol*cmplx.Abs(b)
}

// entryIsZero reports |v| <= tol with NaN/Inf treated as non-zero.
func entryIsZero(v complex128, tol float64) bool {
	if hasNaN(v) || hasInf(v) {
		return false
	}

	return cmplx.Abs(v) <= tol
}

// denseEqual walks both flat buffers once; early exit on first violation.
func denseEqual(a, b Data, tol Tolerance) bool {
	da, db := a.(*Dense), b.(*Dense)
	for idx, av := range da.data {
		if !closeTo(av, db.data[idx], tol) {
			return false
		}
	}

	return true
}

// csrEqual merges the two row structures; an entry present on one side only
// is compared against an exact zero on the other.
//
// Complexity: Time O(r + nnz(a) + nnz(b)), Space O(1).
func csrEqual(a, b Data, tol Tolerance) bool {
	ma, mb := a.(*CSR), b.(*CSR)
	for i := 0; i < ma.r; i++ {
		p, pe := ma.indptr[i], ma.indptr[i+1]
		q, qe := mb.indptr[i], mb.indptr[i+1]
		for p < pe || q < qe {
			var av, bv complex128
			switch {
			case q >= qe || (p < pe && ma.indices[p] < mb.indices[q]):
				av = ma.values[p]
				p++
			case p >= pe || mb.indices[q] < ma.indices[p]:
				bv = mb.values[q]
				q++
			default:
				av, bv = ma.values[p], mb.values[q]
				p++
				q++
			}
			if !closeTo(av, bv, tol) {
				return false
			}
		}
	}

	return true
}

// diagEqual compares the two diagonals.
func diagEqual(a, b Data, tol Tolerance) bool {
	da, db := a.(*Diag), b.(*Diag)
	for i, av := range da.values {
		if !closeTo(av, db.values[i], tol) {
			return false
		}
	}

	return true
}
