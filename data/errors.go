// SPDX-License-Identifier: MIT
// Package data: sentinel and typed error set.
//
// Every message is prefixed with "data: ..." for consistency. Callers match
// sentinels with errors.Is and typed errors with errors.As; typed errors
// unwrap to their sentinel so both styles work on the same value.
//
// ERROR PRIORITY (enforced in dispatch):
// nil -> unknown kind -> shape -> structural conversion -> kernel failure.
//
// Numerical edge cases (NaN, ±Inf, division by a tiny scalar) are never errors;
// they propagate as IEEE-754 values.

package data

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrShape signals that an operation requires square or compatible shapes
	// and its operands do not satisfy it. Always raised through *ShapeError.
	ErrShape = errors.New("data: shape error")

	// ErrStructuralConversion signals that a restrictive kind (e.g. Diag)
	// cannot hold the source values without loss.
	ErrStructuralConversion = errors.New("data: structural conversion error")

	// ErrRegistration signals an inconsistent kind/kernel registry at build time.
	ErrRegistration = errors.New("data: registration error")

	// ErrInvalidDimensions indicates a negative row or column count, or a
	// shape with more entries than a buffer can address.
	ErrInvalidDimensions = errors.New("data: invalid dimensions")

	// ErrOutOfRange indicates that an index is outside the valid bounds.
	ErrOutOfRange = errors.New("data: index out of range")

	// ErrBufferLength indicates a raw buffer whose length disagrees with the shape.
	ErrBufferLength = errors.New("data: buffer length does not match shape")

	// ErrInvalidStructure indicates malformed sparse index arrays
	// (non-monotone indptr, unsorted or duplicate column indices, bounds).
	ErrInvalidStructure = errors.New("data: invalid sparse structure")

	// ErrNilData indicates that a nil Data value was passed.
	ErrNilData = errors.New("data: nil data")

	// ErrUnknownKind indicates a kind identifier that is not registered.
	ErrUnknownKind = errors.New("data: unknown representation kind")
)

// dataErrorf wraps err with an operation tag, preserving it for errors.Is/As.
// Use only when err != nil.
func dataErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ShapeError reports the offending shape(s) of a failed operation.
type ShapeError struct {
	Op     string  // operation tag, e.g. "Trace" or "Matmul"
	Shapes []Shape // offending shapes in operand order
	Reason string  // short human-readable reason
}

// Error renders the single-shape form "Op: matrix shape (r, c) reason" or the
// multi-shape form "Op: reason: (r1, c1) and (r2, c2)".
func (e *ShapeError) Error() string {
	if len(e.Shapes) == 1 {
		return fmt.Sprintf("%s: matrix shape %s %s", e.Op, e.Shapes[0], e.Reason)
	}
	parts := make([]string, len(e.Shapes))
	for i, s := range e.Shapes {
		parts[i] = s.String()
	}

	return fmt.Sprintf("%s: %s: %s", e.Op, e.Reason, strings.Join(parts, " and "))
}

// Unwrap exposes ErrShape to errors.Is.
func (e *ShapeError) Unwrap() error { return ErrShape }

// StructuralConversionError reports the first entry a restrictive kind could not hold.
type StructuralConversionError struct {
	From, To Kind
	Row, Col int
	Value    complex128
}

func (e *StructuralConversionError) Error() string {
	return fmt.Sprintf("Convert(%s -> %s): entry (%d, %d) = %v cannot be represented",
		e.From, e.To, e.Row, e.Col, e.Value)
}

// Unwrap exposes ErrStructuralConversion to errors.Is.
func (e *StructuralConversionError) Unwrap() error { return ErrStructuralConversion }

// RegistrationError reports why the registry refused to build.
type RegistrationError struct {
	Kind   Kind
	Reason string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("data: registration: kind %s: %s", e.Kind, e.Reason)
}

// Unwrap exposes ErrRegistration to errors.Is.
func (e *RegistrationError) Unwrap() error { return ErrRegistration }
