// SPDX-License-Identifier: MIT
// Package: data
//
// Purpose:
//   - Provide a single, canonical source of truth for shape and index checks.
//   - Keep kernels minimal: kernels assume validated operands.
//
// Determinism & Performance:
//   - All checks are O(1) and allocate only when they fail.

package data

import (
	"fmt"
	"math"
)

// Reasons used inside ShapeError (no magic strings at call sites).
const (
	reasonNotSquare     = "is not square"
	reasonMismatch      = "incompatible shapes"
	reasonInnerMismatch = "inner dimensions differ"
)

// maxEntries bounds rows*cols so that a complex128 buffer of that length is
// addressable and the product itself cannot wrap.
const maxEntries = math.MaxInt / 16

// validateDims rejects negative dimensions and shapes whose entry count
// overflows. Every kind checks it, so a shape always fits a Dense buffer.
func validateDims(rows, cols int) error {
	if rows < 0 || cols < 0 {
		return ErrInvalidDimensions
	}
	if rows != 0 && cols > maxEntries/rows {
		return fmt.Errorf("%d x %d exceeds %d entries: %w", rows, cols, maxEntries, ErrInvalidDimensions)
	}

	return nil
}

// validateNotNil returns ErrNilData if any operand is nil.
func validateNotNil(ds ...Data) error {
	for _, d := range ds {
		if d == nil {
			return ErrNilData
		}
	}

	return nil
}

// validateSameShape requires identical shapes (Add/Sub).
func validateSameShape(op string, a, b Shape) error {
	if a != b {
		return &ShapeError{Op: op, Shapes: []Shape{a, b}, Reason: reasonMismatch}
	}

	return nil
}

// validateMatmul requires a.Cols == b.Rows.
func validateMatmul(op string, a, b Shape) error {
	if a.Cols != b.Rows {
		return &ShapeError{Op: op, Shapes: []Shape{a, b}, Reason: reasonInnerMismatch}
	}

	return nil
}

// validateSquare requires Rows == Cols.
func validateSquare(op string, s Shape) error {
	if !s.IsSquare() {
		return &ShapeError{Op: op, Shapes: []Shape{s}, Reason: reasonNotSquare}
	}

	return nil
}

// checkIndex validates (i, j) against s.
func checkIndex(kind Kind, s Shape, i, j int) error {
	if i < 0 || i >= s.Rows || j < 0 || j >= s.Cols {
		return fmt.Errorf("%s.At(%d,%d): %w", kind, i, j, ErrOutOfRange)
	}

	return nil
}
