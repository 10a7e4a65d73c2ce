// Package data stores 2-D complex matrices in interchangeable representation
// kinds and dispatches arithmetic between them.
//
// The data package provides:
//
//   - Dense (row-major), CSR (compressed sparse rows) and Diag (main diagonal)
//     storage behind the Data interface.
//   - A Registry that resolves, at build time, which kernel runs for every
//     (operation, kind, kind) triple. Exact kernels win; otherwise both
//     operands convert to the cheapest common total kind.
//   - Tolerant comparison (|a-b| <= atol + rtol*|b|, NaN never equal,
//     infinities equal only on request).
//   - Package-level facades (Add, Sub, Matmul, Equal, Convert, ...) over a
//     process-wide default registry built once by Init or Default.
//
// Values are immutable: every operation returns a new value, and the kind of
// a unary result equals the kind of its operand. Structural zeros of CSR and
// Diag stay exact zeros under scalar operations and products.
//
// Diag is a restrictive kind: converting a matrix with an off-diagonal value
// into it fails with *StructuralConversionError instead of truncating.
//
// See the examples in this package for usage patterns.
package data
