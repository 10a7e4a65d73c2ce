// SPDX-License-Identifier: MIT

// Package data - package-level operations on the default registry.
//
// Binary operations dispatch through Default(). Unary operations are methods
// of every kind and keep the operand's kind; the functions here only add the
// nil check so callers get ErrNilData instead of a panic.
package data

// Add returns a + b using the default registry.
func Add(a, b Data) (Data, error) { return Default().Add(a, b) }

// Sub returns a - b using the default registry.
func Sub(a, b Data) (Data, error) { return Default().Sub(a, b) }

// Matmul returns a × b using the default registry.
func Matmul(a, b Data) (Data, error) { return Default().Matmul(a, b) }

// Equal reports tolerant equality using the default registry.
func Equal(a, b Data, opts ...Option) bool { return Default().Equal(a, b, opts...) }

// IsZero reports whether every entry of a is within atol of zero.
func IsZero(a Data, opts ...Option) bool { return Default().IsZero(a, opts...) }

// Convert returns d as kind `to` using the default registry.
func Convert(d Data, to Kind) (Data, error) { return Default().Convert(d, to) }

// Create builds a value of kind from raw rows using the default registry.
// See Registry.Create for empty shapes.
func Create(kind Kind, rows [][]complex128) (Data, error) { return Default().Create(kind, rows) }

// unary applies f after the nil check.
func unary(tag string, a Data, f func(Data) Data) (Data, error) {
	if a == nil {
		return nil, dataErrorf(tag, ErrNilData)
	}

	return f(a), nil
}

// Neg returns -a, same kind.
func Neg(a Data) (Data, error) { return unary("Neg", a, Data.Neg) }

// Conj returns the element-wise conjugate, same kind.
func Conj(a Data) (Data, error) { return unary("Conj", a, Data.Conj) }

// Transpose returns aᵀ, same kind.
func Transpose(a Data) (Data, error) { return unary("Transpose", a, Data.Transpose) }

// Adjoint returns the conjugate transpose, same kind.
func Adjoint(a Data) (Data, error) { return unary("Adjoint", a, Data.Adjoint) }

// Copy returns an independent value equal to a, same kind.
func Copy(a Data) (Data, error) { return unary("Copy", a, Data.Copy) }

// MulScalar returns x·a, same kind. Structural zeros stay zero.
func MulScalar(a Data, x complex128) (Data, error) {
	return unary("MulScalar", a, func(d Data) Data { return d.MulScalar(x) })
}

// DivScalar returns a/x, same kind. Division by zero follows IEEE-754 on
// stored values only.
func DivScalar(a Data, x complex128) (Data, error) {
	return unary("DivScalar", a, func(d Data) Data { return d.DivScalar(x) })
}

// Trace returns the diagonal sum; *ShapeError for non-square input.
func Trace(a Data) (complex128, error) {
	if a == nil {
		return 0, dataErrorf("Trace", ErrNilData)
	}

	return a.Trace()
}

// ToArray returns a row-major 2-D copy of a.
func ToArray(a Data) ([][]complex128, error) {
	if a == nil {
		return nil, dataErrorf("ToArray", ErrNilData)
	}

	return a.ToArray(), nil
}
