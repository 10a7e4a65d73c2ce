// SPDX-License-Identifier: MIT

// Package data - same-kind kernels for CSR and Diag.
//
// CSR add/sub keep the union of both structures (explicit zeros produced by
// cancellation stay stored). CSR matmul is Gustavson's row-by-row product with
// a dense accumulator and sorted column emission.
package data

import "sort"

// csrAdd computes A + B row by row.
func csrAdd(a, b Data) (Data, error) { return csrCombine(a.(*CSR), b.(*CSR), false), nil }

// csrSub computes A - B row by row.
func csrSub(a, b Data) (Data, error) { return csrCombine(a.(*CSR), b.(*CSR), true), nil }

// csrCombine merges two same-shaped CSR matrices.
//
// Complexity: Time O(r + nnz(a) + nnz(b)), Space O(nnz(a) + nnz(b)).
func csrCombine(a, b *CSR, sub bool) *CSR {
	indptr := make([]int, a.r+1)
	indices := make([]int, 0, len(a.values)+len(b.values))
	values := make([]complex128, 0, len(a.values)+len(b.values))
	for i := 0; i < a.r; i++ {
		p, pe := a.indptr[i], a.indptr[i+1]
		q, qe := b.indptr[i], b.indptr[i+1]
		for p < pe || q < qe {
			switch {
			case q >= qe || (p < pe && a.indices[p] < b.indices[q]):
				indices = append(indices, a.indices[p])
				values = append(values, a.values[p])
				p++
			case p >= pe || b.indices[q] < a.indices[p]:
				v := b.values[q]
				if sub {
					v = -v
				}
				indices = append(indices, b.indices[q])
				values = append(values, v)
				q++
			default:
				v := a.values[p] + b.values[q]
				if sub {
					v = a.values[p] - b.values[q]
				}
				indices = append(indices, a.indices[p])
				values = append(values, v)
				p++
				q++
			}
		}
		indptr[i+1] = len(values)
	}

	return &CSR{r: a.r, c: a.c, indptr: indptr, indices: indices, values: values}
}

// csrMatmul computes A×B with Gustavson's algorithm.
//
// Implementation:
//   - mark[j] == i flags column j as touched in row i; acc[j] holds its sum.
//   - Touched columns are sorted before emission to keep the CSR contract.
//
// Complexity: Time O(flops + Σ t_i log t_i), Space O(n + nnz(C)).
func csrMatmul(a, b Data) (Data, error) {
	ma, mb := a.(*CSR), b.(*CSR)
	m, n := ma.r, mb.c
	acc := make([]complex128, n)
	mark := make([]int, n)
	for j := range mark {
		mark[j] = -1
	}
	indptr := make([]int, m+1)
	var indices []int
	var values []complex128
	cols := make([]int, 0, n)
	for i := 0; i < m; i++ {
		cols = cols[:0]
		for p := ma.indptr[i]; p < ma.indptr[i+1]; p++ {
			l, av := ma.indices[p], ma.values[p]
			for q := mb.indptr[l]; q < mb.indptr[l+1]; q++ {
				j := mb.indices[q]
				if mark[j] != i {
					mark[j] = i
					acc[j] = 0
					cols = append(cols, j)
				}
				acc[j] += av * mb.values[q]
			}
		}
		sort.Ints(cols)
		for _, j := range cols {
			indices = append(indices, j)
			values = append(values, acc[j])
		}
		indptr[i+1] = len(values)
	}

	return &CSR{r: m, c: n, indptr: indptr, indices: indices, values: values}, nil
}

// diagAdd computes A + B on the diagonals.
func diagAdd(a, b Data) (Data, error) {
	da, db := a.(*Diag), b.(*Diag)
	out := newDiag(da.r, da.c)
	for i := range out.values {
		out.values[i] = da.values[i] + db.values[i]
	}

	return out, nil
}

// diagSub computes A - B on the diagonals.
func diagSub(a, b Data) (Data, error) {
	da, db := a.(*Diag), b.(*Diag)
	out := newDiag(da.r, da.c)
	for i := range out.values {
		out.values[i] = da.values[i] - db.values[i]
	}

	return out, nil
}

// diagMatmul multiplies two diagonals: for A (r×k) and B (k×c) the product is
// the r×c diagonal with entries a[i]*b[i] for i < min(r, k, c) and zero beyond.
func diagMatmul(a, b Data) (Data, error) {
	da, db := a.(*Diag), b.(*Diag)
	out := newDiag(da.r, db.c)
	n := min(len(out.values), len(da.values), len(db.values))
	for i := 0; i < n; i++ {
		out.values[i] = da.values[i] * db.values[i]
	}

	return out, nil
}
