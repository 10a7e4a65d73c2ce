// SPDX-License-Identifier: MIT

// Package data - Dense storage (row-major) & unary kernels.
//
// Purpose:
//   - Provide a cache-friendly row-major complex buffer with offset i*cols + j.
//   - Accept row- or column-major raw buffers at the construction boundary.
//   - Serve as the universal fallback kind of the dispatch layer.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) copy; At: O(1); unary kernels: O(r*c); Trace: O(n).
package data

import (
	"fmt"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/cmplxs"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// Dense is an immutable row-major matrix of complex128 values.
//   - r,c hold dimensions (>= 0).
//   - data has length r*c; offset of (i, j) is i*c + j.
type Dense struct {
	r, c int
	data []complex128
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Data         = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// newDense allocates a zero-filled r×c Dense. Dimensions are assumed valid.
func newDense(r, c int) *Dense {
	return &Dense{r: r, c: c, data: make([]complex128, r*c)}
}

// NewDense builds an r×c Dense from a raw buffer in the given order.
// A nil buf yields the zero matrix. The buffer is copied; the caller keeps ownership.
//
// Errors:
//   - ErrInvalidDimensions for negative dimensions or an overflowing rows*cols.
//   - ErrBufferLength when len(buf) != rows*cols.
//
// Complexity: Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, buf []complex128, order Order) (*Dense, error) {
	if err := validateDims(rows, cols); err != nil {
		return nil, dataErrorf("NewDense", err)
	}
	out := newDense(rows, cols)
	if buf == nil {
		return out, nil
	}
	if len(buf) != rows*cols {
		return nil, dataErrorf("NewDense", fmt.Errorf("len=%d want %d: %w", len(buf), rows*cols, ErrBufferLength))
	}
	if order == ColMajor {
		for j := 0; j < cols; j++ {
			for i := 0; i < rows; i++ {
				out.data[i*cols+j] = buf[j*rows+i]
			}
		}

		return out, nil
	}
	copy(out.data, buf)

	return out, nil
}

// NewDenseReal is NewDense for real-valued buffers (imaginary parts are zero).
func NewDenseReal(rows, cols int, buf []float64, order Order) (*Dense, error) {
	if buf == nil {
		return NewDense(rows, cols, nil, order)
	}
	cbuf := make([]complex128, len(buf))
	for i, v := range buf {
		cbuf[i] = complex(v, 0)
	}

	return NewDense(rows, cols, cbuf, order)
}

// FromRows builds a Dense from a 2-D slice. All rows must share one length.
// An empty outer slice yields 0×0 (a 0×c shape needs Zeros); r empty rows
// yield r×0.
func FromRows(rows [][]complex128) (*Dense, error) {
	r := len(rows)
	if r == 0 {
		return newDense(0, 0), nil
	}
	c := len(rows[0])
	out := newDense(r, c)
	for i, row := range rows {
		if len(row) != c {
			return nil, dataErrorf("FromRows", fmt.Errorf("row %d has %d entries, want %d: %w", i, len(row), c, ErrBufferLength))
		}
		copy(out.data[i*c:(i+1)*c], row)
	}

	return out, nil
}

// Zeros returns the rows×cols zero Dense.
func Zeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols, nil, RowMajor)
}

// Identity returns the n×n identity Dense.
func Identity(n int) (*Dense, error) {
	out, err := Zeros(n, n)
	if err != nil {
		return nil, dataErrorf("Identity", err)
	}
	for i := 0; i < n; i++ {
		out.data[i*n+i] = 1
	}

	return out, nil
}

// Shape returns (rows, cols).
func (m *Dense) Shape() Shape { return Shape{Rows: m.r, Cols: m.c} }

// Kind returns KindDense.
func (m *Dense) Kind() Kind { return KindDense }

// NNZ returns r*c: every entry is stored.
func (m *Dense) NNZ() int { return len(m.data) }

// At returns entry (i, j) or ErrOutOfRange.
func (m *Dense) At(i, j int) (complex128, error) {
	if err := checkIndex(KindDense, m.Shape(), i, j); err != nil {
		return 0, err
	}

	return m.data[i*m.c+j], nil
}

// RawRowMajor returns a copy of the backing buffer in row-major order.
func (m *Dense) RawRowMajor() []complex128 {
	out := make([]complex128, len(m.data))
	copy(out, m.data)

	return out
}

// ToArray returns a [][]complex128 copy.
func (m *Dense) ToArray() [][]complex128 {
	out := make([][]complex128, m.r)
	for i := range out {
		row := make([]complex128, m.c)
		copy(row, m.data[i*m.c:(i+1)*m.c])
		out[i] = row
	}

	return out
}

// Copy returns an independent Dense.
func (m *Dense) Copy() Data { return m.clone() }

func (m *Dense) clone() *Dense {
	return &Dense{r: m.r, c: m.c, data: m.RawRowMajor()}
}

// Neg returns -A with exact sign flips on both parts.
func (m *Dense) Neg() Data {
	out := newDense(m.r, m.c)
	for idx, v := range m.data {
		out.data[idx] = -v
	}

	return out
}

// Conj returns the element-wise conjugate.
func (m *Dense) Conj() Data {
	out := newDense(m.r, m.c)
	for idx, v := range m.data {
		out.data[idx] = cmplx.Conj(v)
	}

	return out
}

// Transpose returns Aᵀ.
func (m *Dense) Transpose() Data { return m.transpose(false) }

// Adjoint returns A†.
func (m *Dense) Adjoint() Data { return m.transpose(true) }

// transpose writes out[j][i] = A[i][j] (conjugated when conj), fixed i→j order.
func (m *Dense) transpose(conj bool) *Dense {
	out := newDense(m.c, m.r)
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			v := m.data[i*m.c+j]
			if conj {
				v = cmplx.Conj(v)
			}
			out.data[j*m.r+i] = v
		}
	}

	return out
}

// Trace returns Σ A[i,i]; *ShapeError if the matrix is not square.
func (m *Dense) Trace() (complex128, error) {
	if err := validateSquare("Trace", m.Shape()); err != nil {
		return 0, err
	}
	var sum complex128
	for i := 0; i < m.r; i++ {
		sum += m.data[i*m.c+i]
	}

	return sum, nil
}

// MulScalar returns x*A.
func (m *Dense) MulScalar(x complex128) Data {
	out := m.clone()
	cmplxs.Scale(x, out.data)

	return out
}

// DivScalar returns A/x using complex division entry by entry.
func (m *Dense) DivScalar(x complex128) Data {
	out := newDense(m.r, m.c)
	for idx, v := range m.data {
		out.data[idx] = v / x
	}

	return out
}

// IsZero reports whether every entry is within tol of zero.
func (m *Dense) IsZero(tol float64) bool {
	for _, v := range m.data {
		if !entryIsZero(v, tol) {
			return false
		}
	}

	return true
}

// String implements fmt.Stringer for debugging: one bracketed row per line.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%v", m.data[i*m.c+j])
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
