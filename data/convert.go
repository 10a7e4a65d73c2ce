// SPDX-License-Identifier: MIT

// Package data - converters between built-in kinds.
//
// Rules:
//   - Conversion into Dense is total and lossless for every kind.
//   - Dense -> CSR stores every entry that is not an exact zero (NaN is stored).
//   - Conversion into Diag is structural: any off-diagonal value other than an
//     exact zero raises *StructuralConversionError; nothing is truncated.
package data

// Converter turns a value of one kind into another kind.
type Converter func(Data) (Data, error)

// Default conversion costs of the built-in registry. Costs only rank
// candidate common kinds; they are not measured timings.
const (
	costDiagToCSR   = 1
	costCSRToDense  = 2
	costDiagToDense = 2
	costDenseToCSR  = 3
	costDenseToDiag = 3
	costCSRToDiag   = 2
)

// asDense returns d as *Dense or wraps ErrUnknownKind.
func asDense(d Data) (*Dense, error) {
	m, ok := d.(*Dense)
	if !ok {
		return nil, dataErrorf("asDense", ErrUnknownKind)
	}

	return m, nil
}

// denseIdentity is the Dense kind's own FromDense.
func denseIdentity(m *Dense) (Data, error) { return m, nil }

// csrToDense scatters stored entries.
func csrToDense(d Data) (*Dense, error) {
	m, ok := d.(*CSR)
	if !ok {
		return nil, dataErrorf("csrToDense", ErrUnknownKind)
	}
	out := newDense(m.r, m.c)
	for i := 0; i < m.r; i++ {
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			out.data[i*m.c+m.indices[p]] = m.values[p]
		}
	}

	return out, nil
}

// denseToCSR keeps every entry that is not an exact zero.
//
// Complexity: Time O(r*c), Space O(r + nnz).
func denseToCSR(m *Dense) (Data, error) {
	indptr := make([]int, m.r+1)
	var indices []int
	var values []complex128
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			if v := m.data[i*m.c+j]; v != 0 {
				indices = append(indices, j)
				values = append(values, v)
			}
		}
		indptr[i+1] = len(values)
	}

	return &CSR{r: m.r, c: m.c, indptr: indptr, indices: indices, values: values}, nil
}

// diagToDense places the diagonal into a zero Dense.
func diagToDense(d Data) (*Dense, error) {
	m, ok := d.(*Diag)
	if !ok {
		return nil, dataErrorf("diagToDense", ErrUnknownKind)
	}
	out := newDense(m.r, m.c)
	for i, v := range m.values {
		out.data[i*m.c+i] = v
	}

	return out, nil
}

// denseToDiag accepts only matrices whose off-diagonal entries are exact zeros.
func denseToDiag(m *Dense) (Data, error) {
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			if v := m.data[i*m.c+j]; i != j && v != 0 {
				return nil, &StructuralConversionError{From: KindDense, To: KindDiag, Row: i, Col: j, Value: v}
			}
		}
	}
	out := newDiag(m.r, m.c)
	for i := range out.values {
		out.values[i] = m.data[i*m.c+i]
	}

	return out, nil
}

// diagToCSR stores every diagonal value (lossless, including zeros).
func diagToCSR(d Data) (Data, error) {
	m := d.(*Diag)
	n := len(m.values)
	indptr := make([]int, m.r+1)
	indices := make([]int, n)
	for i := 0; i < m.r; i++ {
		indptr[i+1] = min(i+1, n)
	}
	for i := range indices {
		indices[i] = i
	}

	return &CSR{r: m.r, c: m.c, indptr: indptr, indices: indices, values: m.Values()}, nil
}

// csrToDiag keeps stored diagonal values and rejects off-diagonal non-zeros.
func csrToDiag(d Data) (Data, error) {
	m := d.(*CSR)
	out := newDiag(m.r, m.c)
	for i := 0; i < m.r; i++ {
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			j, v := m.indices[p], m.values[p]
			if i == j {
				out.values[i] = v
				continue
			}
			if v != 0 {
				return nil, &StructuralConversionError{From: KindCSR, To: KindDiag, Row: i, Col: j, Value: v}
			}
		}
	}

	return out, nil
}
