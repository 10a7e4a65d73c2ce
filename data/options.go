// SPDX-License-Identifier: MIT

// Package data: functional configuration for the registry and numeric policy.
// This file defines:
//   - documented defaults (constants, single source of truth),
//   - Option / Options (functional options with unexported state),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper that applies setters over the defaults.
//
// Design goals:
//   - Deterministic behavior: options are resolved once per call or per build.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//   - No dead switches: each flag changes observable behavior and is tested.
package data

import (
	"math"

	"github.com/rs/zerolog"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultAtol is the absolute tolerance of Equal and the zero threshold of IsZero.
	DefaultAtol = 1e-12

	// DefaultRtol is the relative tolerance of Equal.
	DefaultRtol = 1e-12

	// DefaultInfEqual keeps infinities unequal to everything, including themselves.
	DefaultInfEqual = false

	// DefaultParallelThreshold is the m*k*n work size from which the reference
	// Dense matmul splits its rows across goroutines.
	DefaultParallelThreshold = 1 << 18
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicAtolInvalid      = "data: WithAtol: atol must be finite, non-negative"
	panicRtolInvalid      = "data: WithRtol: rtol must be finite, non-negative"
	panicThresholdInvalid = "data: WithParallelThreshold: threshold must be > 0"
)

// Tolerance bundles the comparison policy of Equal and IsZero.
type Tolerance struct {
	Atol     float64 // absolute term; IsZero threshold
	Rtol     float64 // relative term, scaled by |b|
	InfEqual bool    // identical infinities compare equal when true
}

// DefaultTolerance returns the package defaults.
func DefaultTolerance() Tolerance {
	return Tolerance{Atol: DefaultAtol, Rtol: DefaultRtol, InfEqual: DefaultInfEqual}
}

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	tol               Tolerance
	logger            zerolog.Logger
	reference         bool // force reference kernels even when accel is available
	parallelThreshold int
}

// defaultOptions returns the zero-config state.
func defaultOptions() Options {
	return Options{
		tol:               DefaultTolerance(),
		logger:            zerolog.Nop(),
		parallelThreshold: DefaultParallelThreshold,
	}
}

// gatherOptions applies opts over base in order; later setters win.
func gatherOptions(base Options, opts ...Option) Options {
	for _, opt := range opts {
		if opt != nil {
			opt(&base)
		}
	}

	return base
}

// isNonFinite reports NaN or ±Inf.
func isNonFinite(x float64) bool { return math.IsNaN(x) || math.IsInf(x, 0) }

// WithAtol sets the absolute tolerance. Panics unless atol is finite and >= 0.
func WithAtol(atol float64) Option {
	if isNonFinite(atol) || atol < 0 {
		panic(panicAtolInvalid)
	}

	return func(o *Options) { o.tol.Atol = atol }
}

// WithRtol sets the relative tolerance. Panics unless rtol is finite and >= 0.
func WithRtol(rtol float64) Option {
	if isNonFinite(rtol) || rtol < 0 {
		panic(panicRtolInvalid)
	}

	return func(o *Options) { o.tol.Rtol = rtol }
}

// WithInfEqual lets identical infinite entries compare equal.
// By default any infinity makes Equal false.
func WithInfEqual() Option {
	return func(o *Options) { o.tol.InfEqual = true }
}

// WithTolerance replaces the whole comparison policy; validates like WithAtol/WithRtol.
func WithTolerance(t Tolerance) Option {
	setAtol, setRtol := WithAtol(t.Atol), WithRtol(t.Rtol)

	return func(o *Options) {
		setAtol(o)
		setRtol(o)
		o.tol.InfEqual = t.InfEqual
	}
}

// WithLogger attaches a structured logger used at registry build time.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithReferenceKernels forces the reference Dense matmul even when the
// accelerated path is available. Useful for reproducibility checks.
func WithReferenceKernels() Option {
	return func(o *Options) { o.reference = true }
}

// WithParallelThreshold sets the m*k*n size from which the reference matmul
// fans out over row blocks. Panics if n <= 0.
func WithParallelThreshold(n int) Option {
	if n <= 0 {
		panic(panicThresholdInvalid)
	}

	return func(o *Options) { o.parallelThreshold = n }
}
