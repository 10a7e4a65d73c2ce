// Package data_test provides benchmarks for dispatch and the Dense kernels,
// using deterministic random fill.
package data_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/qdata/data"
)

// benchSizes are the square matrix sizes to benchmark.
var benchSizes = []int{32, 128, 256}

// sinks to defeat dead-code elimination
var (
	sinkD data.Data
	sinkB bool
)

func benchPair(b *testing.B, reg *data.Registry, n int, ka, kb data.Kind, density float64) (data.Data, data.Data) {
	b.Helper()
	rng := rand.New(rand.NewSource(1337))

	return mustCreate(b, reg, ka, randRows(rng, n, n, density)), mustCreate(b, reg, kb, randRows(rng, n, n, density))
}

func BenchmarkMatmulDense(b *testing.B) {
	for _, backend := range []struct {
		name string
		opts []data.Option
	}{{"default", nil}, {"reference", []data.Option{data.WithReferenceKernels()}}} {
		reg := mustRegistry(b, backend.opts...)
		for _, n := range benchSizes {
			b.Run(fmt.Sprintf("%s/n=%d", backend.name, n), func(b *testing.B) {
				x, y := benchPair(b, reg, n, data.KindDense, data.KindDense, 1)
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					out, err := reg.Matmul(x, y)
					if err != nil {
						b.Fatal(err)
					}
					sinkD = out
				}
			})
		}
	}
}

func BenchmarkMatmulCSR(b *testing.B) {
	reg := mustRegistry(b)
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			x, y := benchPair(b, reg, n, data.KindCSR, data.KindCSR, 0.05)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				out, err := reg.Matmul(x, y)
				if err != nil {
					b.Fatal(err)
				}
				sinkD = out
			}
		})
	}
}

// BenchmarkAddMixed measures the conversion fallback of Diag + CSR.
func BenchmarkAddMixed(b *testing.B) {
	reg := mustRegistry(b)
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			rng := rand.New(rand.NewSource(42))
			x := mustCreate(b, reg, data.KindDiag, diagRows(randRows(rng, n, n, 1)))
			y := mustCreate(b, reg, data.KindCSR, randRows(rng, n, n, 0.05))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				out, err := reg.Add(x, y)
				if err != nil {
					b.Fatal(err)
				}
				sinkD = out
			}
		})
	}
}

func BenchmarkEqual(b *testing.B) {
	reg := mustRegistry(b)
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			x, _ := benchPair(b, reg, n, data.KindDense, data.KindDense, 1)
			y := x.Copy()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				sinkB = reg.Equal(x, y)
			}
		})
	}
}
