// SPDX-License-Identifier: MIT

// Package data - CSR (compressed sparse row) storage & unary kernels.
//
// Layout contract:
//   - indptr has length r+1, starts at 0, is non-decreasing, ends at nnz.
//   - indices[indptr[i]:indptr[i+1]] are the column indices of row i,
//     strictly increasing and within [0, c).
//   - values is parallel to indices. Stored values may be explicit zeros.
//
// Entries outside the structure are exact (structural) zeros. Scalar kernels
// act on stored values only, so x*A with x = ±Inf keeps structural zeros at 0.
package data

import (
	"fmt"
	"math/cmplx"
	"sort"
)

// CSR is an immutable compressed-sparse-row matrix.
type CSR struct {
	r, c    int
	indptr  []int
	indices []int
	values  []complex128
}

var _ Data = (*CSR)(nil)

// NewCSR validates and copies the three CSR arrays.
//
// Errors:
//   - ErrInvalidDimensions for negative dimensions or an overflowing rows*cols.
//   - ErrInvalidStructure for any layout violation listed in the file header.
//
// Complexity: Time O(r + nnz), Space O(r + nnz).
func NewCSR(rows, cols int, indptr, indices []int, values []complex128) (*CSR, error) {
	if err := validateDims(rows, cols); err != nil {
		return nil, dataErrorf("NewCSR", err)
	}
	if err := validateCSR(rows, cols, indptr, indices, values); err != nil {
		return nil, dataErrorf("NewCSR", err)
	}
	m := &CSR{
		r:       rows,
		c:       cols,
		indptr:  append([]int(nil), indptr...),
		indices: append([]int(nil), indices...),
		values:  append([]complex128(nil), values...),
	}
	if m.indptr == nil {
		m.indptr = make([]int, rows+1)
	}

	return m, nil
}

// validateCSR checks the layout contract. An empty indptr is accepted only
// when there are no stored entries and is then treated as all-zero rows.
func validateCSR(rows, cols int, indptr, indices []int, values []complex128) error {
	if len(indices) != len(values) {
		return fmt.Errorf("len(indices)=%d != len(values)=%d: %w", len(indices), len(values), ErrInvalidStructure)
	}
	if len(indptr) == 0 {
		if len(values) != 0 {
			return fmt.Errorf("empty indptr with %d values: %w", len(values), ErrInvalidStructure)
		}

		return nil
	}
	if len(indptr) != rows+1 {
		return fmt.Errorf("len(indptr)=%d want %d: %w", len(indptr), rows+1, ErrInvalidStructure)
	}
	if indptr[0] != 0 || indptr[rows] != len(values) {
		return fmt.Errorf("indptr must span [0, %d]: %w", len(values), ErrInvalidStructure)
	}
	for i := 0; i < rows; i++ {
		lo, hi := indptr[i], indptr[i+1]
		if lo > hi || hi > len(values) {
			return fmt.Errorf("indptr decreases or overruns at row %d: %w", i, ErrInvalidStructure)
		}
		for p := lo; p < hi; p++ {
			j := indices[p]
			if j < 0 || j >= cols {
				return fmt.Errorf("row %d: column %d out of [0, %d): %w", i, j, cols, ErrInvalidStructure)
			}
			if p > lo && indices[p-1] >= j {
				return fmt.Errorf("row %d: columns not strictly increasing: %w", i, ErrInvalidStructure)
			}
		}
	}

	return nil
}

// Shape returns (rows, cols).
func (m *CSR) Shape() Shape { return Shape{Rows: m.r, Cols: m.c} }

// Kind returns KindCSR.
func (m *CSR) Kind() Kind { return KindCSR }

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int { return len(m.values) }

// Indptr returns a copy of the row pointer array.
func (m *CSR) Indptr() []int { return append([]int(nil), m.indptr...) }

// Indices returns a copy of the column index array.
func (m *CSR) Indices() []int { return append([]int(nil), m.indices...) }

// Values returns a copy of the stored values.
func (m *CSR) Values() []complex128 { return append([]complex128(nil), m.values...) }

// At returns entry (i, j) via binary search in row i. O(log nnz(row)).
func (m *CSR) At(i, j int) (complex128, error) {
	if err := checkIndex(KindCSR, m.Shape(), i, j); err != nil {
		return 0, err
	}
	lo, hi := m.indptr[i], m.indptr[i+1]
	p := lo + sort.SearchInts(m.indices[lo:hi], j)
	if p < hi && m.indices[p] == j {
		return m.values[p], nil
	}

	return 0, nil
}

// ToArray scatters stored entries into a zero [][]complex128.
func (m *CSR) ToArray() [][]complex128 {
	out := make([][]complex128, m.r)
	for i := range out {
		row := make([]complex128, m.c)
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			row[m.indices[p]] = m.values[p]
		}
		out[i] = row
	}

	return out
}

// Copy returns an independent CSR.
func (m *CSR) Copy() Data {
	return m.withValues(m.Values())
}

// withValues shares indptr/indices (immutable) and takes ownership of values.
func (m *CSR) withValues(values []complex128) *CSR {
	return &CSR{r: m.r, c: m.c, indptr: m.indptr, indices: m.indices, values: values}
}

// mapValues applies f to every stored value.
func (m *CSR) mapValues(f func(complex128) complex128) *CSR {
	values := make([]complex128, len(m.values))
	for p, v := range m.values {
		values[p] = f(v)
	}

	return m.withValues(values)
}

// Neg returns -A.
func (m *CSR) Neg() Data {
	return m.mapValues(func(v complex128) complex128 { return -v })
}

// Conj returns the element-wise conjugate.
func (m *CSR) Conj() Data { return m.mapValues(cmplx.Conj) }

// Transpose returns Aᵀ.
func (m *CSR) Transpose() Data { return m.transpose(false) }

// Adjoint returns A†.
func (m *CSR) Adjoint() Data { return m.transpose(true) }

// transpose builds the CSR of Aᵀ with a counting pass over column indices.
// Rows are visited in increasing order, so output columns come out sorted.
//
// Complexity: Time O(r + c + nnz), Space O(c + nnz).
func (m *CSR) transpose(conj bool) *CSR {
	nnz := len(m.values)
	indptr := make([]int, m.c+1)
	for _, j := range m.indices {
		indptr[j+1]++
	}
	for j := 0; j < m.c; j++ {
		indptr[j+1] += indptr[j]
	}
	next := make([]int, m.c)
	copy(next, indptr[:m.c])
	indices := make([]int, nnz)
	values := make([]complex128, nnz)
	for i := 0; i < m.r; i++ {
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			j := m.indices[p]
			q := next[j]
			indices[q] = i
			v := m.values[p]
			if conj {
				v = cmplx.Conj(v)
			}
			values[q] = v
			next[j]++
		}
	}

	return &CSR{r: m.c, c: m.r, indptr: indptr, indices: indices, values: values}
}

// Trace sums stored diagonal entries; *ShapeError if not square.
func (m *CSR) Trace() (complex128, error) {
	if err := validateSquare("Trace", m.Shape()); err != nil {
		return 0, err
	}
	var sum complex128
	for i := 0; i < m.r; i++ {
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			if m.indices[p] == i {
				sum += m.values[p]
			}
		}
	}

	return sum, nil
}

// MulScalar returns x*A on stored values.
func (m *CSR) MulScalar(x complex128) Data {
	return m.mapValues(func(v complex128) complex128 { return x * v })
}

// DivScalar returns A/x on stored values.
func (m *CSR) DivScalar(x complex128) Data {
	return m.mapValues(func(v complex128) complex128 { return v / x })
}

// IsZero checks stored values only; structural zeros are exact.
func (m *CSR) IsZero(tol float64) bool {
	for _, v := range m.values {
		if !entryIsZero(v, tol) {
			return false
		}
	}

	return true
}
