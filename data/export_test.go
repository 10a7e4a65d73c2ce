// SPDX-License-Identifier: MIT

package data

// White-box bridges for data_test. Compiled only with tests.
var (
	ExportedReferenceMatmul = referenceMatmul
	ExportedDenseMatmulBLAS = denseMatmulBLAS
	ExportedDenseIdentity   = denseIdentity
	ExportedDenseToCSR      = denseToCSR
	ExportedCSRToDense      = csrToDense
)

// OptionsSnapshot is a read-only view of the resolved options.
type OptionsSnapshot struct {
	Tol               Tolerance
	Reference         bool
	ParallelThreshold int
}

// GatherOptionsSnapshot_TestOnly resolves opts over the defaults.
func GatherOptionsSnapshot_TestOnly(opts ...Option) OptionsSnapshot {
	o := gatherOptions(defaultOptions(), opts...)

	return OptionsSnapshot{Tol: o.tol, Reference: o.reference, ParallelThreshold: o.parallelThreshold}
}
