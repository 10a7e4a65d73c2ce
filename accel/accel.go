// SPDX-License-Identifier: MIT

// Package accel detects, once per process, whether the accelerated
// linear-algebra path may be used by the data kernels.
//
// Purpose:
//   - Probe CPU SIMD capabilities a single time and freeze the result.
//   - Expose an immutable "acceleration available" flag to kernel selection.
//   - Wrap the BLAS routines the kernels delegate to when the flag is set.
//
// Notes:
//   - The flag changes performance only. Callers always have a reference
//     kernel producing the same values within tolerance.
//   - Init may force the reference path, but only before the first probe;
//     the flag is never re-evaluated mid-run.
package accel

import (
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sys/cpu"
)

// Features records the CPU capabilities observed by the probe.
type Features struct {
	Arch   string // runtime.GOARCH at probe time
	AVX2   bool   // amd64: 256-bit SIMD
	FMA    bool   // amd64: fused multiply-add
	AVX512 bool   // amd64: AVX-512F + AVX-512DQ
	ASIMD  bool   // arm64: Advanced SIMD
}

// String returns a compact, human-readable summary such as "amd64: AVX2, FMA".
func (f Features) String() string {
	var names []string
	if f.AVX512 {
		names = append(names, "AVX-512")
	}
	if f.AVX2 {
		names = append(names, "AVX2")
	}
	if f.FMA {
		names = append(names, "FMA")
	}
	if f.ASIMD {
		names = append(names, "ASIMD")
	}
	if len(names) == 0 {
		return f.Arch + ": no SIMD features detected"
	}

	return f.Arch + ": " + strings.Join(names, ", ")
}

// SIMD reports whether any feature usable by the BLAS kernels was found.
func (f Features) SIMD() bool {
	return f.AVX2 || f.AVX512 || f.ASIMD
}

var (
	probeOnce sync.Once
	features  Features
	available bool
	disabled  bool
)

// Init performs the one-time probe. When off is true the accelerated path is
// disabled regardless of the hardware. Only the first call to Init or
// Available has an effect; the returned value is the frozen flag.
func Init(off bool) bool {
	probeOnce.Do(func() { probe(off) })

	return available
}

// Available returns the frozen acceleration flag, probing on first use.
func Available() bool {
	return Init(false)
}

// Disabled reports whether acceleration was switched off by configuration
// (as opposed to missing hardware support).
func Disabled() bool {
	Init(false)

	return disabled
}

// Detected returns the features recorded by the probe.
func Detected() Features {
	Init(false)

	return features
}

// probe reads CPU flags and freezes the package state. Called under probeOnce.
func probe(off bool) {
	features = Features{
		Arch:   runtime.GOARCH,
		AVX2:   cpu.X86.HasAVX2,
		FMA:    cpu.X86.HasFMA,
		AVX512: cpu.X86.HasAVX512F && cpu.X86.HasAVX512DQ,
		ASIMD:  cpu.ARM64.HasASIMD,
	}
	disabled = off
	available = !off && features.SIMD()
}
