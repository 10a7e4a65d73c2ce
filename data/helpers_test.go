// SPDX-License-Identifier: MIT
// Package data_test contains shared fixtures.
//
// Purpose:
//   - Build small deterministic matrices of every kind.
//   - Keep random data finite so numeric policy never interferes.

package data_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/qdata/data"
	"github.com/stretchr/testify/require"
)

// Fixtures used across kind combinations: A is 2×3, B is 3×2, A×B = P.
var (
	rowsA = [][]complex128{{1, 2, 3}, {4, 5, 6}}
	rowsB = [][]complex128{{7, 8}, {9, 10}, {11, 12}}
	rowsP = [][]complex128{{58, 64}, {139, 154}}
)

var allKinds = []data.Kind{data.KindDense, data.KindCSR, data.KindDiag}

func mustRows(tb testing.TB, rows [][]complex128) *data.Dense {
	tb.Helper()
	m, err := data.FromRows(rows)
	require.NoError(tb, err)

	return m
}

func mustCreate(tb testing.TB, reg *data.Registry, kind data.Kind, rows [][]complex128) data.Data {
	tb.Helper()
	d, err := reg.Create(kind, rows)
	require.NoError(tb, err)
	require.Equal(tb, kind, d.Kind())

	return d
}

func mustRegistry(tb testing.TB, opts ...data.Option) *data.Registry {
	tb.Helper()
	reg, err := data.NewRegistry(opts...)
	require.NoError(tb, err)

	return reg
}

// randRows returns an r×c matrix with entries in [-1, 1) + i[-1, 1).
// density in (0, 1] controls the share of entries that are not zero.
func randRows(rng *rand.Rand, r, c int, density float64) [][]complex128 {
	out := make([][]complex128, r)
	for i := range out {
		out[i] = make([]complex128, c)
		for j := range out[i] {
			if rng.Float64() < density {
				out[i][j] = complex(2*rng.Float64()-1, 2*rng.Float64()-1)
			}
		}
	}

	return out
}

// diagRows keeps only the main diagonal of rows.
func diagRows(rows [][]complex128) [][]complex128 {
	out := make([][]complex128, len(rows))
	for i, row := range rows {
		out[i] = make([]complex128, len(row))
		if i < len(row) {
			out[i][i] = row[i]
		}
	}

	return out
}

// naiveMatmul is the textbook triple loop used as an oracle.
func naiveMatmul(a, b [][]complex128) [][]complex128 {
	m := len(a)
	if m == 0 {
		return nil
	}
	k, n := len(a[0]), 0
	if len(b) > 0 {
		n = len(b[0])
	}
	out := make([][]complex128, m)
	for i := range out {
		out[i] = make([]complex128, n)
		for j := 0; j < n; j++ {
			var s complex128
			for l := 0; l < k; l++ {
				s += a[i][l] * b[l][j]
			}
			out[i][j] = s
		}
	}

	return out
}
