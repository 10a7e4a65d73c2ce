// SPDX-License-Identifier: MIT

// Package bath declares the capability a reservoir model must expose to the
// solvers, and pairs a reservoir with its system coupling operator.
//
// No concrete reservoir models live here; callers implement Bath.
package bath

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/qdata/qobj"
)

// Statistics is the particle statistics of a reservoir.
type Statistics uint8

const (
	Bosonic Statistics = iota + 1
	Fermionic
)

// String returns "bosonic", "fermionic" or "statistics(n)".
func (s Statistics) String() string {
	switch s {
	case Bosonic:
		return "bosonic"
	case Fermionic:
		return "fermionic"
	default:
		return fmt.Sprintf("statistics(%d)", uint8(s))
	}
}

// ParseStatistics accepts "bosonic"/"boson" and "fermionic"/"fermion".
func ParseStatistics(name string) (Statistics, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bosonic", "boson":
		return Bosonic, nil
	case "fermionic", "fermion":
		return Fermionic, nil
	}

	return 0, fmt.Errorf("ParseStatistics(%q): %w", name, ErrStatistics)
}

// Bath is the explicit capability set of a reservoir model.
type Bath interface {
	Statistics() Statistics
	Temperature() float64
	// SpectralDensity J(ω) evaluated at each frequency.
	SpectralDensity(w []float64) []float64
	// CorrelationFunction C(t) evaluated at each time.
	CorrelationFunction(t []float64) []complex128
	// PowerSpectrum S(ω) evaluated at each frequency.
	PowerSpectrum(w []float64) []float64
}

var (
	// ErrNilBath indicates a missing reservoir model.
	ErrNilBath = errors.New("bath: nil bath")

	// ErrTemperature indicates a negative or non-finite temperature.
	ErrTemperature = errors.New("bath: temperature must be finite and >= 0")

	// ErrStatistics indicates unknown particle statistics.
	ErrStatistics = errors.New("bath: unknown statistics")

	// ErrCoupling indicates a missing, non-square or non-Hermitian coupling operator.
	ErrCoupling = errors.New("bath: coupling must be a square Hermitian operator")
)

// Environment is a reservoir together with the system operator it couples to.
type Environment struct {
	Bath     Bath
	Coupling *qobj.Qobj
}

// NewEnvironment validates b and coupling.
//
// Errors:
//   - ErrNilBath when b is nil.
//   - ErrStatistics when b reports statistics other than Bosonic/Fermionic.
//   - ErrTemperature for negative, NaN or infinite temperatures.
//   - ErrCoupling when coupling is nil, not square or not Hermitian.
func NewEnvironment(b Bath, coupling *qobj.Qobj) (*Environment, error) {
	if b == nil {
		return nil, ErrNilBath
	}
	if s := b.Statistics(); s != Bosonic && s != Fermionic {
		return nil, fmt.Errorf("NewEnvironment: %s: %w", s, ErrStatistics)
	}
	if temp := b.Temperature(); math.IsNaN(temp) || math.IsInf(temp, 0) || temp < 0 {
		return nil, fmt.Errorf("NewEnvironment: T=%v: %w", temp, ErrTemperature)
	}
	if coupling == nil {
		return nil, fmt.Errorf("NewEnvironment: nil operator: %w", ErrCoupling)
	}
	if !coupling.Shape().IsSquare() || !coupling.IsHerm() {
		return nil, fmt.Errorf("NewEnvironment: shape %s: %w", coupling.Shape(), ErrCoupling)
	}

	return &Environment{Bath: b, Coupling: coupling}, nil
}

// Dim is the Hilbert-space dimension of the coupling operator.
func (e *Environment) Dim() int { return e.Coupling.Shape().Rows }
