// SPDX-License-Identifier: MIT

package data_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/qdata/data"
)

// ExampleMatmul multiplies a sparse matrix by a dense one.
func ExampleMatmul() {
	a, _ := data.Create(data.KindCSR, [][]complex128{{1, 2, 3}, {4, 5, 6}})
	b, _ := data.FromRows([][]complex128{{7, 8}, {9, 10}, {11, 12}})

	p, err := data.Matmul(a, b)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(p.Kind(), p.ToArray())
	// Output:
	// dense [[(58+0i) (64+0i)] [(139+0i) (154+0i)]]
}

// ExampleConvert shows that Diag refuses data it cannot hold.
func ExampleConvert() {
	id, _ := data.Identity(2)
	d, _ := data.Convert(id, data.KindDiag)
	fmt.Println(d.Kind(), d.NNZ())

	full, _ := data.FromRows([][]complex128{{1, 2}, {3, 4}})
	_, err := data.Convert(full, data.KindDiag)
	fmt.Println(errors.Is(err, data.ErrStructuralConversion))
	// Output:
	// diag 2
	// true
}

// ExampleTrace reports the shape error of a non-square matrix.
func ExampleTrace() {
	m, _ := data.Zeros(2, 3)
	_, err := data.Trace(m)
	fmt.Println(err)
	// Output:
	// Trace: matrix shape (2, 3) is not square
}

// ExampleEqual contrasts the default policy with an explicit tolerance.
func ExampleEqual() {
	a, _ := data.FromRows([][]complex128{{1}})
	b, _ := data.FromRows([][]complex128{{1.001}})
	fmt.Println(data.Equal(a, b), data.Equal(a, b, data.WithAtol(1e-2)))
	// Output:
	// false true
}

// ExampleRegistry_Plan inspects how a mixed addition is dispatched.
func ExampleRegistry_Plan() {
	reg, _ := data.NewRegistry()
	p, _ := reg.Plan(data.OpAdd, data.KindDiag, data.KindCSR)
	fmt.Println(p.Exact, p.Target, p.Cost)
	// Output:
	// false csr 1
}
