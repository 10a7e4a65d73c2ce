// SPDX-License-Identifier: MIT

package data

import (
	"sync"

	"github.com/katalvlaran/qdata/accel"
)

// NewBuiltinBuilder returns a Builder preloaded with Dense, CSR and Diag,
// their converters, kernels and compare kernels. Callers may register
// further kinds before Build.
//
// The Dense×Dense matmul kernel is chosen here, once: the BLAS kernel when
// accel.Available() and reference kernels were not requested, otherwise the
// reference loop.
func NewBuiltinBuilder(opts ...Option) *Builder {
	b := NewBuilder(opts...)

	b.RegisterKind(KindSpec{
		Kind: KindDense, Name: "dense", Total: true,
		FromDense: denseIdentity,
		ToDense:   asDense,
	})
	b.RegisterKind(KindSpec{
		Kind: KindCSR, Name: "csr", Total: true,
		FromDense:     denseToCSR,
		ToDense:       csrToDense,
		FromDenseCost: costDenseToCSR,
		ToDenseCost:   costCSRToDense,
	})
	b.RegisterKind(KindSpec{
		Kind: KindDiag, Name: "diag", Total: false,
		FromDense:     denseToDiag,
		ToDense:       diagToDense,
		FromDenseCost: costDenseToDiag,
		ToDenseCost:   costDiagToDense,
	})

	b.RegisterConverter(KindDiag, KindCSR, costDiagToCSR, diagToCSR)
	b.RegisterConverter(KindCSR, KindDiag, costCSRToDiag, csrToDiag)

	b.RegisterKernel(OpAdd, KindDense, KindDense, KindDense, denseAdd)
	b.RegisterKernel(OpSub, KindDense, KindDense, KindDense, denseSub)
	if accel.Available() && !b.opts.reference {
		b.RegisterKernel(OpMatmul, KindDense, KindDense, KindDense, denseMatmulBLAS)
		b.backend = BackendBLAS
	} else {
		b.RegisterKernel(OpMatmul, KindDense, KindDense, KindDense, referenceMatmul(b.opts.parallelThreshold))
		b.backend = BackendReference
	}

	b.RegisterKernel(OpAdd, KindCSR, KindCSR, KindCSR, csrAdd)
	b.RegisterKernel(OpSub, KindCSR, KindCSR, KindCSR, csrSub)
	b.RegisterKernel(OpMatmul, KindCSR, KindCSR, KindCSR, csrMatmul)

	b.RegisterKernel(OpAdd, KindDiag, KindDiag, KindDiag, diagAdd)
	b.RegisterKernel(OpSub, KindDiag, KindDiag, KindDiag, diagSub)
	b.RegisterKernel(OpMatmul, KindDiag, KindDiag, KindDiag, diagMatmul)

	b.RegisterKernel(OpMatmul, KindCSR, KindDense, KindDense, csrDenseMatmul)
	b.RegisterKernel(OpMatmul, KindDense, KindCSR, KindDense, denseCSRMatmul)
	b.RegisterKernel(OpMatmul, KindDiag, KindDense, KindDense, diagDenseMatmul)
	b.RegisterKernel(OpMatmul, KindDense, KindDiag, KindDense, denseDiagMatmul)
	b.RegisterKernel(OpMatmul, KindDiag, KindCSR, KindCSR, diagCSRMatmul)
	b.RegisterKernel(OpMatmul, KindCSR, KindDiag, KindCSR, csrDiagMatmul)

	b.RegisterCompare(KindDense, KindDense, denseEqual)
	b.RegisterCompare(KindCSR, KindCSR, csrEqual)
	b.RegisterCompare(KindDiag, KindDiag, diagEqual)

	return b
}

// NewRegistry builds the built-in registry with opts.
func NewRegistry(opts ...Option) (*Registry, error) {
	return NewBuiltinBuilder(opts...).Build()
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Init builds the process-wide default registry exactly once. The first
// call's options win; later calls return the same registry and ignore opts.
// Init panics if the built-in registry fails to build.
func Init(opts ...Option) *Registry {
	defaultOnce.Do(func() {
		reg, err := NewRegistry(opts...)
		if err != nil {
			panic(err)
		}
		defaultReg = reg
	})

	return defaultReg
}

// Default returns the default registry, building it with default options on
// first use.
func Default() *Registry { return Init() }
