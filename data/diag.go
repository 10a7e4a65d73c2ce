// SPDX-License-Identifier: MIT

// Package data - Diag storage: main diagonal only.
//
// A Diag of shape r×c stores min(r, c) values; every off-diagonal entry is a
// structural zero. Diag is a restrictive kind: it is never picked as a common
// fallback kind, and converting general data into it may fail with
// *StructuralConversionError.
package data

import (
	"fmt"
	"math/cmplx"
)

// Diag is an immutable rectangular diagonal matrix.
type Diag struct {
	r, c   int
	values []complex128 // len == min(r, c)
}

var _ Data = (*Diag)(nil)

// NewDiag copies values onto the main diagonal of an r×c matrix.
// A nil values slice yields the zero matrix.
//
// Errors:
//   - ErrInvalidDimensions for negative dimensions or an overflowing rows*cols.
//   - ErrBufferLength when len(values) != min(rows, cols).
func NewDiag(rows, cols int, values []complex128) (*Diag, error) {
	if err := validateDims(rows, cols); err != nil {
		return nil, dataErrorf("NewDiag", err)
	}
	n := min(rows, cols)
	if values == nil {
		return newDiag(rows, cols), nil
	}
	if len(values) != n {
		return nil, dataErrorf("NewDiag", fmt.Errorf("len=%d want %d: %w", len(values), n, ErrBufferLength))
	}

	return &Diag{r: rows, c: cols, values: append([]complex128(nil), values...)}, nil
}

// newDiag allocates a zero r×c Diag. Dimensions are assumed valid.
func newDiag(r, c int) *Diag {
	return &Diag{r: r, c: c, values: make([]complex128, min(r, c))}
}

// Shape returns (rows, cols).
func (m *Diag) Shape() Shape { return Shape{Rows: m.r, Cols: m.c} }

// Kind returns KindDiag.
func (m *Diag) Kind() Kind { return KindDiag }

// NNZ returns min(r, c).
func (m *Diag) NNZ() int { return len(m.values) }

// Values returns a copy of the diagonal.
func (m *Diag) Values() []complex128 { return append([]complex128(nil), m.values...) }

// At returns the diagonal value for i == j and 0 elsewhere.
func (m *Diag) At(i, j int) (complex128, error) {
	if err := checkIndex(KindDiag, m.Shape(), i, j); err != nil {
		return 0, err
	}
	if i != j {
		return 0, nil
	}

	return m.values[i], nil
}

// ToArray expands to a [][]complex128.
func (m *Diag) ToArray() [][]complex128 {
	out := make([][]complex128, m.r)
	for i := range out {
		out[i] = make([]complex128, m.c)
		if i < len(m.values) {
			out[i][i] = m.values[i]
		}
	}

	return out
}

// Copy returns an independent Diag.
func (m *Diag) Copy() Data { return m.mapValues(nil) }

// mapValues returns a Diag of the same shape with f applied (identity when f is nil).
func (m *Diag) mapValues(f func(complex128) complex128) *Diag {
	values := make([]complex128, len(m.values))
	for i, v := range m.values {
		if f != nil {
			v = f(v)
		}
		values[i] = v
	}

	return &Diag{r: m.r, c: m.c, values: values}
}

// Neg returns -A.
func (m *Diag) Neg() Data {
	return m.mapValues(func(v complex128) complex128 { return -v })
}

// Conj returns the element-wise conjugate.
func (m *Diag) Conj() Data { return m.mapValues(cmplx.Conj) }

// Transpose swaps the shape; the diagonal is unchanged.
func (m *Diag) Transpose() Data {
	out := m.mapValues(nil)
	out.r, out.c = m.c, m.r

	return out
}

// Adjoint swaps the shape and conjugates the diagonal.
func (m *Diag) Adjoint() Data {
	out := m.mapValues(cmplx.Conj)
	out.r, out.c = m.c, m.r

	return out
}

// Trace sums the diagonal; *ShapeError if not square.
func (m *Diag) Trace() (complex128, error) {
	if err := validateSquare("Trace", m.Shape()); err != nil {
		return 0, err
	}
	var sum complex128
	for _, v := range m.values {
		sum += v
	}

	return sum, nil
}

// MulScalar returns x*A on the diagonal.
func (m *Diag) MulScalar(x complex128) Data {
	return m.mapValues(func(v complex128) complex128 { return x * v })
}

// DivScalar returns A/x on the diagonal.
func (m *Diag) DivScalar(x complex128) Data {
	return m.mapValues(func(v complex128) complex128 { return v / x })
}

// IsZero checks the diagonal only.
func (m *Diag) IsZero(tol float64) bool {
	for _, v := range m.values {
		if !entryIsZero(v, tol) {
			return false
		}
	}

	return true
}
