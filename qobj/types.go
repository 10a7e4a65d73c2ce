// SPDX-License-Identifier: MIT

package qobj

import "github.com/katalvlaran/qdata/data"

// Type classifies an object by shape.
type Type uint8

const (
	TypeOther Type = iota // neither vector nor square
	TypeKet               // column vector (n×1, n > 1)
	TypeBra               // row vector (1×n, n > 1)
	TypeOper              // square
)

// String returns "ket", "bra", "oper" or "other".
func (t Type) String() string {
	switch t {
	case TypeKet:
		return "ket"
	case TypeBra:
		return "bra"
	case TypeOper:
		return "oper"
	default:
		return "other"
	}
}

// TypeOf classifies s. Square shapes, including 1×1, are operators.
func TypeOf(s data.Shape) Type {
	switch {
	case s.IsSquare():
		return TypeOper
	case s.Cols == 1:
		return TypeKet
	case s.Rows == 1:
		return TypeBra
	default:
		return TypeOther
	}
}
