// SPDX-License-Identifier: MIT

package accel

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/gonum"
)

// impl is gonum's native BLAS; stateless and safe for concurrent use.
var impl gonum.Implementation

// Zgemm computes c = a·b for row-major complex buffers:
// a is m×k, b is k×n, c is m×n and must be zero-filled by the caller.
//
// Degenerate products (any of m, n, k zero) leave c untouched, which is the
// correct empty-sum result for a zero-filled c.
//
// Complexity: O(m*n*k).
func Zgemm(m, n, k int, a, b, c []complex128) {
	if m == 0 || n == 0 || k == 0 {
		return
	}
	impl.Zgemm(blas.NoTrans, blas.NoTrans, m, n, k, 1, a, k, b, n, 0, c, n)
}
