// SPDX-License-Identifier: MIT

package qobj

import (
	"fmt"

	"github.com/katalvlaran/qdata/data"
)

// Expect returns the expectation value of the operator op in state.
//
//   - ket |ψ⟩ (n×1): ⟨ψ|op|ψ⟩
//   - bra ⟨ψ| (1×n): computed on its adjoint ket
//   - operator ρ (n×n): Tr(op·ρ)
//
// Errors:
//   - ErrNilData for a nil argument.
//   - *data.ShapeError when op is not square or its size differs from state.
func Expect(op, state *Qobj) (complex128, error) {
	const tag = "Expect"
	if op == nil || state == nil {
		return 0, fmt.Errorf("%s: %w", tag, data.ErrNilData)
	}
	if !op.shape.IsSquare() {
		return 0, &data.ShapeError{Op: tag, Shapes: []data.Shape{op.shape}, Reason: "is not square"}
	}
	if state.Type() == TypeBra {
		state = state.Dag()
	}
	if op.shape.Cols != state.shape.Rows || state.Type() == TypeOther {
		return 0, &data.ShapeError{Op: tag, Shapes: []data.Shape{op.shape, state.shape}, Reason: "incompatible shapes"}
	}

	aPsi, err := op.Matmul(state)
	if err != nil {
		return 0, err
	}
	if state.shape.IsSquare() {
		return aPsi.Tr()
	}
	inner, err := state.Dag().Matmul(aPsi)
	if err != nil {
		return 0, err
	}

	return inner.data.At(0, 0)
}
