// SPDX-License-Identifier: MIT

// Package data - mixed-kind matmul kernels registered as exact dispatch keys.
//
// Result kinds:
//   - CSR×Dense, Dense×CSR, Diag×Dense, Dense×Diag -> Dense
//   - Diag×CSR, CSR×Diag                          -> CSR
//
// Structural zeros of the sparse operand do not take part in products, so a
// Dense ±Inf next to a structural zero contributes nothing (same policy as
// the same-kind sparse kernels).
package data

// csrDenseMatmul computes A(m×k, CSR) × B(k×n, Dense).
//
// Complexity: Time O(nnz(A)*n), Space O(m*n).
func csrDenseMatmul(a, b Data) (Data, error) {
	ma, db := a.(*CSR), b.(*Dense)
	n := db.c
	out := newDense(ma.r, n)
	for i := 0; i < ma.r; i++ {
		row := out.data[i*n : (i+1)*n]
		for p := ma.indptr[i]; p < ma.indptr[i+1]; p++ {
			av := ma.values[p]
			brow := db.data[ma.indices[p]*n : (ma.indices[p]+1)*n]
			for j, bv := range brow {
				row[j] += av * bv
			}
		}
	}

	return out, nil
}

// denseCSRMatmul computes A(m×k, Dense) × B(k×n, CSR).
//
// Complexity: Time O(m*nnz(B)), Space O(m*n).
func denseCSRMatmul(a, b Data) (Data, error) {
	da, mb := a.(*Dense), b.(*CSR)
	k, n := da.c, mb.c
	out := newDense(da.r, n)
	for i := 0; i < da.r; i++ {
		row := out.data[i*n : (i+1)*n]
		for l := 0; l < k; l++ {
			av := da.data[i*k+l]
			for q := mb.indptr[l]; q < mb.indptr[l+1]; q++ {
				row[mb.indices[q]] += av * mb.values[q]
			}
		}
	}

	return out, nil
}

// diagDenseMatmul scales row i of B by a[i] for i < min(r, k); other rows stay zero.
func diagDenseMatmul(a, b Data) (Data, error) {
	ma, db := a.(*Diag), b.(*Dense)
	n := db.c
	out := newDense(ma.r, n)
	for i, av := range ma.values {
		src := db.data[i*n : (i+1)*n]
		dst := out.data[i*n : (i+1)*n]
		for j, bv := range src {
			dst[j] = av * bv
		}
	}

	return out, nil
}

// denseDiagMatmul scales column j of A by b[j] for j < min(k, n); other columns stay zero.
func denseDiagMatmul(a, b Data) (Data, error) {
	da, mb := a.(*Dense), b.(*Diag)
	k, n := da.c, mb.c
	out := newDense(da.r, n)
	for i := 0; i < da.r; i++ {
		for j, bv := range mb.values {
			out.data[i*n+j] = da.data[i*k+j] * bv
		}
	}

	return out, nil
}

// diagCSRMatmul scales row i of B by a[i]; rows at or beyond min(r, k) are empty.
func diagCSRMatmul(a, b Data) (Data, error) {
	ma, mb := a.(*Diag), b.(*CSR)
	indptr := make([]int, ma.r+1)
	var indices []int
	var values []complex128
	for i := 0; i < ma.r; i++ {
		if i < len(ma.values) {
			av := ma.values[i]
			for q := mb.indptr[i]; q < mb.indptr[i+1]; q++ {
				indices = append(indices, mb.indices[q])
				values = append(values, av*mb.values[q])
			}
		}
		indptr[i+1] = len(values)
	}

	return &CSR{r: ma.r, c: mb.c, indptr: indptr, indices: indices, values: values}, nil
}

// csrDiagMatmul scales column j of A by b[j]; columns at or beyond min(k, n) drop out.
func csrDiagMatmul(a, b Data) (Data, error) {
	ma, mb := a.(*CSR), b.(*Diag)
	indptr := make([]int, ma.r+1)
	var indices []int
	var values []complex128
	for i := 0; i < ma.r; i++ {
		for p := ma.indptr[i]; p < ma.indptr[i+1]; p++ {
			j := ma.indices[p]
			if j >= len(mb.values) {
				break // columns are sorted: the rest of the row is out of range too
			}
			indices = append(indices, j)
			values = append(values, ma.values[p]*mb.values[j])
		}
		indptr[i+1] = len(values)
	}

	return &CSR{r: ma.r, c: mb.c, indptr: indptr, indices: indices, values: values}, nil
}
