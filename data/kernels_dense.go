// SPDX-License-Identifier: MIT
// Package data provides the Dense×Dense binary kernels: element-wise addition,
// subtraction and matrix multiplication. Kernels assume validated operands;
// shape checks live in the dispatch layer.
//
// Purpose:
//   - Keep the flat-slice loops of the universal fallback kind in one place.
//   - Offer two interchangeable matmul kernels: a reference loop and a BLAS
//     path selected once at registry build from the accel capability flag.
//
// Notes:
//   - Matmul never skips zero entries: 0*Inf must still yield NaN in dense
//     products, as IEEE-754 requires.

package data

import (
	"runtime"

	"github.com/katalvlaran/qdata/accel"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/cmplxs"
)

// BinaryKernel computes op(a, b) for operands of the kinds it was registered for.
type BinaryKernel func(a, b Data) (Data, error)

// Names of the Dense matmul backends, reported by Registry.MatmulBackend.
const (
	BackendReference = "reference"
	BackendBLAS      = "blas"
)

// denseAdd computes C = A + B over the flat buffers.
func denseAdd(a, b Data) (Data, error) {
	da, db := a.(*Dense), b.(*Dense)
	out := newDense(da.r, da.c)
	cmplxs.AddTo(out.data, da.data, db.data)

	return out, nil
}

// denseSub computes C = A - B over the flat buffers.
func denseSub(a, b Data) (Data, error) {
	da, db := a.(*Dense), b.(*Dense)
	out := newDense(da.r, da.c)
	cmplxs.SubTo(out.data, da.data, db.data)

	return out, nil
}

// denseMatmulBLAS delegates C = A×B to gonum's Zgemm. Operands holding NaN
// or ±Inf take the reference loop instead, since BLAS may skip zero scalars.
//
// Complexity: Time O(m*k*n), Space O(m*n).
func denseMatmulBLAS(a, b Data) (Data, error) {
	da, db := a.(*Dense), b.(*Dense)
	out := newDense(da.r, db.c)
	if anyNonFinite(da.data) || anyNonFinite(db.data) {
		denseMatmulRows(da, db, out, 0, da.r)

		return out, nil
	}
	accel.Zgemm(da.r, db.c, da.c, da.data, db.data, out.data)

	return out, nil
}

// anyNonFinite reports a NaN or infinite component in buf.
func anyNonFinite(buf []complex128) bool {
	for _, v := range buf {
		if hasNaN(v) || hasInf(v) {
			return true
		}
	}

	return false
}

// referenceMatmul returns the reference kernel bound to a parallel threshold.
// Products whose m*k*n reaches threshold are split into contiguous row blocks;
// every row is still accumulated in the same k order, so results are
// bit-identical to the sequential loop.
//
// Implementation:
//   - Stage 1: allocate C (m×n, zeros).
//   - Stage 2: for small work, run rows [0, m) inline.
//   - Stage 3: otherwise fan out one errgroup task per row block.
//
// Complexity: Time O(m*k*n), Space O(m*n).
func referenceMatmul(threshold int) BinaryKernel {
	return func(a, b Data) (Data, error) {
		da, db := a.(*Dense), b.(*Dense)
		m, k, n := da.r, da.c, db.c
		out := newDense(m, n)
		if m < 2 || m*k*n < threshold {
			denseMatmulRows(da, db, out, 0, m)

			return out, nil
		}
		workers := min(runtime.GOMAXPROCS(0), m)
		block := (m + workers - 1) / workers
		var g errgroup.Group
		for lo := 0; lo < m; lo += block {
			hi := min(lo+block, m)
			g.Go(func() error {
				denseMatmulRows(da, db, out, lo, hi)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		return out, nil
	}
}

// denseMatmulRows accumulates rows [lo, hi) of C = A×B in i→l→j order.
// Row blocks are disjoint, so concurrent callers never share a write.
func denseMatmulRows(a, b, out *Dense, lo, hi int) {
	k, n := a.c, b.c
	for i := lo; i < hi; i++ {
		row := out.data[i*n : (i+1)*n]
		for l := 0; l < k; l++ {
			av := a.data[i*k+l]
			brow := b.data[l*n : (l+1)*n]
			for j, bv := range brow {
				row[j] += av * bv
			}
		}
	}
}
