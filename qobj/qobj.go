// SPDX-License-Identifier: MIT

// Package qobj - the user-facing quantum object.
//
// A Qobj holds exactly one data.Data value and caches its shape. Every
// operator forwards to the registry the object was created with, so mixed
// representations follow the same dispatch rules as the data package.
//
// Invariants:
//   - q.Data() is never nil and q.Shape() == q.Data().Shape().
//   - Values are immutable; operators return new objects.
package qobj

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/qdata/data"
)

// Qobj is an immutable quantum object (state or operator).
type Qobj struct {
	data  data.Data
	shape data.Shape
	reg   *data.Registry
}

// Option configures construction.
type Option func(*options)

type options struct {
	reg  *data.Registry
	kind data.Kind // zero keeps the input kind (FromArray: Dense)
}

// WithRegistry dispatches every operator of the object through reg.
// Panics if reg is nil.
func WithRegistry(reg *data.Registry) Option {
	if reg == nil {
		panic("qobj: WithRegistry: nil registry")
	}

	return func(o *options) { o.reg = reg }
}

// WithKind converts the held data to kind at construction.
func WithKind(kind data.Kind) Option {
	return func(o *options) { o.kind = kind }
}

func gather(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.reg == nil {
		o.reg = data.Default()
	}

	return o
}

// New wraps d. With WithKind, d is converted first (restrictive kinds may
// fail with *data.StructuralConversionError).
func New(d data.Data, opts ...Option) (*Qobj, error) {
	if d == nil {
		return nil, fmt.Errorf("qobj.New: %w", data.ErrNilData)
	}
	o := gather(opts)
	if o.kind != 0 {
		conv, err := o.reg.Convert(d, o.kind)
		if err != nil {
			return nil, fmt.Errorf("qobj.New: %w", err)
		}
		d = conv
	}

	return &Qobj{data: d, shape: d.Shape(), reg: o.reg}, nil
}

// FromArray builds an object from raw rows; Dense unless WithKind says otherwise.
func FromArray(rows [][]complex128, opts ...Option) (*Qobj, error) {
	o := gather(opts)
	kind := o.kind
	if kind == 0 {
		kind = data.KindDense
	}
	d, err := o.reg.Create(kind, rows)
	if err != nil {
		return nil, fmt.Errorf("qobj.FromArray: %w", err)
	}

	return &Qobj{data: d, shape: d.Shape(), reg: o.reg}, nil
}

// Identity returns the n×n identity operator, stored as Diag unless WithKind
// requests another kind.
func Identity(n int, opts ...Option) (*Qobj, error) {
	id, err := data.Identity(n)
	if err != nil {
		return nil, fmt.Errorf("qobj.Identity: %w", err)
	}
	o := gather(opts)
	if o.kind == 0 {
		opts = append(opts, WithKind(data.KindDiag))
	}

	return New(id, opts...)
}

// wrap keeps the receiver's registry.
func (q *Qobj) wrap(d data.Data) *Qobj {
	return &Qobj{data: d, shape: d.Shape(), reg: q.reg}
}

// Data returns the held representation.
func (q *Qobj) Data() data.Data { return q.data }

// Shape returns the cached shape.
func (q *Qobj) Shape() data.Shape { return q.shape }

// Kind returns the kind of the held representation.
func (q *Qobj) Kind() data.Kind { return q.data.Kind() }

// Full returns the entries as a dense 2-D slice.
func (q *Qobj) Full() [][]complex128 { return q.data.ToArray() }

// binary validates other and forwards to the registry.
func (q *Qobj) binary(other *Qobj, f func(a, b data.Data) (data.Data, error)) (*Qobj, error) {
	if other == nil {
		return nil, fmt.Errorf("qobj: %w", data.ErrNilData)
	}
	out, err := f(q.data, other.data)
	if err != nil {
		return nil, err
	}

	return q.wrap(out), nil
}

// Add returns q + other; *data.ShapeError naming both shapes on mismatch.
func (q *Qobj) Add(other *Qobj) (*Qobj, error) { return q.binary(other, q.reg.Add) }

// Sub returns q - other; *data.ShapeError naming both shapes on mismatch.
func (q *Qobj) Sub(other *Qobj) (*Qobj, error) { return q.binary(other, q.reg.Sub) }

// Matmul returns q × other; *data.ShapeError when inner dimensions differ.
func (q *Qobj) Matmul(other *Qobj) (*Qobj, error) { return q.binary(other, q.reg.Matmul) }

// MulScalar returns x·q.
func (q *Qobj) MulScalar(x complex128) *Qobj { return q.wrap(q.data.MulScalar(x)) }

// DivScalar returns q/x.
func (q *Qobj) DivScalar(x complex128) *Qobj { return q.wrap(q.data.DivScalar(x)) }

// Neg returns -q.
func (q *Qobj) Neg() *Qobj { return q.wrap(q.data.Neg()) }

// Dag returns the adjoint (conjugate transpose).
func (q *Qobj) Dag() *Qobj { return q.wrap(q.data.Adjoint()) }

// Conj returns the element-wise conjugate.
func (q *Qobj) Conj() *Qobj { return q.wrap(q.data.Conj()) }

// Trans returns the transpose.
func (q *Qobj) Trans() *Qobj { return q.wrap(q.data.Transpose()) }

// Copy returns an independent object with equal entries and kind.
func (q *Qobj) Copy() *Qobj { return q.wrap(q.data.Copy()) }

// Tr returns the trace; *data.ShapeError for non-square objects.
func (q *Qobj) Tr() (complex128, error) { return q.data.Trace() }

// Equal is total: nil other or differing shapes yield false.
func (q *Qobj) Equal(other *Qobj, opts ...data.Option) bool {
	if other == nil {
		return false
	}

	return q.reg.Equal(q.data, other.data, opts...)
}

// IsZero reports whether every entry is within atol of zero.
func (q *Qobj) IsZero(opts ...data.Option) bool { return q.reg.IsZero(q.data, opts...) }

// To returns the object converted to kind.
func (q *Qobj) To(kind data.Kind) (*Qobj, error) {
	d, err := q.reg.Convert(q.data, kind)
	if err != nil {
		return nil, err
	}

	return q.wrap(d), nil
}

// IsHerm reports a square object equal to its adjoint within tolerance.
func (q *Qobj) IsHerm(opts ...data.Option) bool {
	return q.shape.IsSquare() && q.reg.Equal(q.data, q.data.Adjoint(), opts...)
}

// Type infers the object type from its shape.
func (q *Qobj) Type() Type { return TypeOf(q.shape) }

// String renders a short header followed by the rows.
func (q *Qobj) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Qobj: shape=%s type=%s kind=%s\n", q.shape, q.Type(), q.reg.Name(q.Kind()))
	for _, row := range q.Full() {
		fmt.Fprintln(&sb, row)
	}

	return sb.String()
}
