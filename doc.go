// SPDX-License-Identifier: MIT

// Package qdata is the numerical data layer of a quantum toolbox: operators and
// states are backed by interchangeable representations behind one algebraic
// interface, with registry-driven dispatch for mixed-representation operations.
//
// Everything lives in subpackages:
//
//	data/      representation kinds (Dense, CSR, Diag), kernels, conversions,
//	           the dispatch registry and tolerant comparison
//	accel/     one-shot acceleration probe and the BLAS-backed product
//	qobj/      Qobj, the wrapper that forwards operators to the registry
//	bath/      capability interface for environment models
//	codec/     lossless MessagePack export and import
//	config/    QDATA_* environment configuration
//	logging/   zerolog construction
//	cmd/qdata  command line: selfcheck, plans, create, inspect, convert
//
// Quick start:
//
//	a, _ := data.Create(data.KindCSR, [][]complex128{{0, 1}, {1, 0}})
//	b, _ := data.Create(data.KindDiag, [][]complex128{{1, 0}, {0, -1}})
//	p, _ := data.Matmul(a, b) // CSR×Diag runs its own kernel
//	fmt.Println(p.Kind(), p.ToArray())
package qdata
