// SPDX-License-Identifier: MIT

// Package data: domain types shared by every representation kind.
// This file contains ONLY the public vocabulary (Shape, Kind, Op, Order) and
// the Data capability interface. Errors and options live in dedicated files.
package data

import (
	"fmt"
	"strings"
)

// Shape is the immutable (rows, cols) pair of a 2-D matrix.
type Shape struct {
	Rows int
	Cols int
}

// String formats the shape as "(r, c)".
func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d)", s.Rows, s.Cols)
}

// IsSquare reports Rows == Cols.
func (s Shape) IsSquare() bool { return s.Rows == s.Cols }

// Size returns Rows*Cols.
func (s Shape) Size() int { return s.Rows * s.Cols }

// T returns the transposed shape (Cols, Rows).
func (s Shape) T() Shape { return Shape{Rows: s.Cols, Cols: s.Rows} }

// Kind identifies a concrete storage layout. The zero value is invalid.
type Kind uint8

// Built-in kinds, in registration order of the built-in registry.
const (
	KindDense Kind = iota + 1 // row-major contiguous buffer
	KindCSR                   // compressed sparse rows
	KindDiag                  // main diagonal only
)

// KindUser is the first identifier available to kinds registered by callers.
const KindUser Kind = 16

// String returns the canonical name of built-in kinds and "kind(n)" otherwise.
func (k Kind) String() string {
	switch k {
	case KindDense:
		return "dense"
	case KindCSR:
		return "csr"
	case KindDiag:
		return "diag"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind maps a built-in kind name (case-insensitive) to its identifier.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dense":
		return KindDense, nil
	case "csr", "sparse":
		return KindCSR, nil
	case "diag", "diagonal":
		return KindDiag, nil
	}

	return 0, fmt.Errorf("ParseKind(%q): %w", name, ErrUnknownKind)
}

// Op names a dispatchable binary operation.
type Op uint8

// Dispatchable operations.
const (
	OpAdd Op = iota + 1
	OpSub
	OpMatmul
	OpEqual
)

// String returns the operation tag used in error messages.
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "Add"
	case OpSub:
		return "Sub"
	case OpMatmul:
		return "Matmul"
	case OpEqual:
		return "Equal"
	default:
		return fmt.Sprintf("op(%d)", uint8(o))
	}
}

// Order selects the layout of raw buffers at the construction boundary.
type Order uint8

const (
	RowMajor Order = iota // buf[i*cols+j] holds (i, j)
	ColMajor              // buf[j*rows+i] holds (i, j)
)

// Data is the capability interface every representation kind must satisfy.
// There are no default implementations: a kind that misses a method does not
// compile, and a kind that misses a converter does not register.
//
// Instances are immutable. Every method returns a new value (or a scalar) and
// never mutates the receiver, so concurrent reads are always safe.
type Data interface {
	// Shape returns the (rows, cols) of the matrix. O(1).
	Shape() Shape

	// Kind returns the representation identifier. O(1).
	Kind() Kind

	// At returns entry (i, j); ErrOutOfRange on bad indices.
	At(i, j int) (complex128, error)

	// ToArray returns a lossless dense row-major [][]complex128 copy.
	ToArray() [][]complex128

	// NNZ returns the number of stored entries (r*c for dense kinds).
	NNZ() int

	// Copy returns an independent value of the same kind.
	Copy() Data

	// Neg returns -A; double negation is bit-exact.
	Neg() Data

	// Conj returns the element-wise complex conjugate.
	Conj() Data

	// Transpose returns Aᵀ.
	Transpose() Data

	// Adjoint returns the conjugate transpose A†.
	Adjoint() Data

	// Trace returns Σ A[i,i]; *ShapeError when the matrix is not square.
	Trace() (complex128, error)

	// MulScalar returns x*A (IEEE-754 on stored entries).
	MulScalar(x complex128) Data

	// DivScalar returns A/x (IEEE-754 on stored entries; no masking of ±Inf).
	DivScalar(x complex128) Data

	// IsZero reports whether every entry has magnitude <= tol (NaN/Inf => false).
	IsZero(tol float64) bool
}
