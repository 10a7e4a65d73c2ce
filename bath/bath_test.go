// SPDX-License-Identifier: MIT

package bath_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/qdata/bath"
	"github.com/katalvlaran/qdata/data"
	"github.com/katalvlaran/qdata/qobj"
	"github.com/stretchr/testify/require"
)

// ohmic is a minimal Bath used to exercise the interface: J(ω) = αω e^{-ω/ωc}.
type ohmic struct {
	stats  bath.Statistics
	temp   float64
	alpha  float64
	cutoff float64
}

func (o ohmic) Statistics() bath.Statistics { return o.stats }
func (o ohmic) Temperature() float64        { return o.temp }

func (o ohmic) SpectralDensity(w []float64) []float64 {
	out := make([]float64, len(w))
	for i, x := range w {
		if x > 0 {
			out[i] = o.alpha * x * math.Exp(-x/o.cutoff)
		}
	}

	return out
}

func (o ohmic) CorrelationFunction(t []float64) []complex128 {
	return make([]complex128, len(t))
}

func (o ohmic) PowerSpectrum(w []float64) []float64 { return o.SpectralDensity(w) }

func sigma(t *testing.T, rows [][]complex128) *qobj.Qobj {
	t.Helper()
	q, err := qobj.FromArray(rows, qobj.WithKind(data.KindCSR))
	require.NoError(t, err)

	return q
}

func TestStatistics(t *testing.T) {
	require.Equal(t, "bosonic", bath.Bosonic.String())
	require.Equal(t, "fermionic", bath.Fermionic.String())
	require.Equal(t, "statistics(9)", bath.Statistics(9).String())

	for in, want := range map[string]bath.Statistics{
		"bosonic": bath.Bosonic, "Boson": bath.Bosonic, " fermion ": bath.Fermionic, "FERMIONIC": bath.Fermionic,
	} {
		got, err := bath.ParseStatistics(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := bath.ParseStatistics("anyonic")
	require.ErrorIs(t, err, bath.ErrStatistics)
}

func TestNewEnvironment(t *testing.T) {
	sx := sigma(t, [][]complex128{{0, 1}, {1, 0}})
	b := ohmic{stats: bath.Bosonic, temp: 0.5, alpha: 0.1, cutoff: 5}

	env, err := bath.NewEnvironment(b, sx)
	require.NoError(t, err)
	require.Equal(t, 2, env.Dim())
	require.Same(t, sx, env.Coupling)

	j := env.Bath.SpectralDensity([]float64{-1, 0, 5})
	require.Equal(t, 0.0, j[0])
	require.Equal(t, 0.0, j[1])
	require.InDelta(t, 0.5*math.Exp(-1), j[2], 1e-15)
}

func TestNewEnvironment_Errors(t *testing.T) {
	sx := sigma(t, [][]complex128{{0, 1}, {1, 0}})
	cases := []struct {
		name     string
		b        bath.Bath
		coupling *qobj.Qobj
		want     error
	}{
		{"nil bath", nil, sx, bath.ErrNilBath},
		{"unknown statistics", ohmic{stats: 0}, sx, bath.ErrStatistics},
		{"negative temperature", ohmic{stats: bath.Fermionic, temp: -1}, sx, bath.ErrTemperature},
		{"NaN temperature", ohmic{stats: bath.Bosonic, temp: math.NaN()}, sx, bath.ErrTemperature},
		{"infinite temperature", ohmic{stats: bath.Bosonic, temp: math.Inf(1)}, sx, bath.ErrTemperature},
		{"nil coupling", ohmic{stats: bath.Bosonic}, nil, bath.ErrCoupling},
		{"non-square coupling", ohmic{stats: bath.Bosonic}, sigma(t, [][]complex128{{1, 0}}), bath.ErrCoupling},
		{"non-Hermitian coupling", ohmic{stats: bath.Bosonic}, sigma(t, [][]complex128{{0, 1}, {0, 0}}), bath.ErrCoupling},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env, err := bath.NewEnvironment(tc.b, tc.coupling)
			require.Nil(t, env)
			require.ErrorIs(t, err, tc.want)
		})
	}
}
