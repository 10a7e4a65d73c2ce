// SPDX-License-Identifier: MIT

package data_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/qdata/data"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// propKinds are the total kinds; random data never fits Diag.
var propKinds = []data.Kind{data.KindDense, data.KindCSR}

// TestAlgebraicLaws_PropertyBased checks that results do not depend on the
// operand kinds and that the usual algebraic identities hold up to tolerance.
func TestAlgebraicLaws_PropertyBased(t *testing.T) {
	reg := mustRegistry(t)
	tol := []data.Option{data.WithAtol(1e-9), data.WithRtol(1e-9)}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60
	properties := gopter.NewProperties(parameters)

	create := func(rng *rand.Rand, r, c int) (map[data.Kind]data.Data, bool) {
		rows := randRows(rng, r, c, 0.5)
		out := make(map[data.Kind]data.Data, len(propKinds))
		for _, k := range propKinds {
			d, err := reg.Create(k, rows)
			if err != nil {
				return nil, false
			}
			out[k] = d
		}
		if r == 0 || c == 0 {
			// FromRows cannot express empty columns; fall back to Zeros.
			for _, k := range propKinds {
				z, err := data.Zeros(r, c)
				if err != nil {
					return nil, false
				}
				if out[k], err = reg.Convert(z, k); err != nil {
					return nil, false
				}
			}
		}

		return out, true
	}

	properties.Property("Add commutes for every kind pair", prop.ForAll(
		func(r, c int, seed int64) bool {
			rng := rand.New(rand.NewSource(seed))
			as, ok1 := create(rng, r, c)
			bs, ok2 := create(rng, r, c)
			if !ok1 || !ok2 {
				return false
			}
			for _, ka := range propKinds {
				for _, kb := range propKinds {
					ab, err := reg.Add(as[ka], bs[kb])
					if err != nil {
						return false
					}
					ba, err := reg.Add(bs[kb], as[ka])
					if err != nil || !reg.Equal(ab, ba, tol...) {
						return false
					}
				}
			}

			return true
		},
		gen.IntRange(1, 6), gen.IntRange(1, 6), gen.Int64(),
	))

	properties.Property("A - A is zero", prop.ForAll(
		func(r, c int, seed int64) bool {
			as, ok := create(rand.New(rand.NewSource(seed)), r, c)
			if !ok {
				return false
			}
			for _, k := range propKinds {
				z, err := reg.Sub(as[k], as[k])
				if err != nil || !reg.IsZero(z) {
					return false
				}
			}

			return true
		},
		gen.IntRange(1, 6), gen.IntRange(1, 6), gen.Int64(),
	))

	properties.Property("Matmul agrees across kinds and with the naive product", prop.ForAll(
		func(m, k, n int, seed int64) bool {
			rng := rand.New(rand.NewSource(seed))
			ra, rb := randRows(rng, m, k, 0.6), randRows(rng, k, n, 0.6)
			want := mustRowsOK(naiveMatmul(ra, rb))
			if want == nil {
				return false
			}
			for _, ka := range propKinds {
				for _, kb := range propKinds {
					a, err := reg.Create(ka, ra)
					if err != nil {
						return false
					}
					b, err := reg.Create(kb, rb)
					if err != nil {
						return false
					}
					out, err := reg.Matmul(a, b)
					if err != nil || !reg.Equal(out, want, tol...) {
						return false
					}
				}
			}

			return true
		},
		gen.IntRange(1, 5), gen.IntRange(1, 5), gen.IntRange(1, 5), gen.Int64(),
	))

	properties.Property("(AB)† = B†A†", prop.ForAll(
		func(m, k, n int, seed int64) bool {
			rng := rand.New(rand.NewSource(seed))
			for _, kind := range propKinds {
				a, err := reg.Create(kind, randRows(rng, m, k, 0.7))
				if err != nil {
					return false
				}
				b, err := reg.Create(kind, randRows(rng, k, n, 0.7))
				if err != nil {
					return false
				}
				ab, err := reg.Matmul(a, b)
				if err != nil {
					return false
				}
				rhs, err := reg.Matmul(b.Adjoint(), a.Adjoint())
				if err != nil || !reg.Equal(ab.Adjoint(), rhs, tol...) {
					return false
				}
			}

			return true
		},
		gen.IntRange(1, 5), gen.IntRange(1, 5), gen.IntRange(1, 5), gen.Int64(),
	))

	properties.Property("conversion round-trips are exact", prop.ForAll(
		func(r, c int, seed int64) bool {
			rows := randRows(rand.New(rand.NewSource(seed)), r, c, 0.4)
			for _, from := range propKinds {
				d, err := reg.Create(from, rows)
				if err != nil {
					return false
				}
				for _, to := range propKinds {
					there, err := reg.Convert(d, to)
					if err != nil {
						return false
					}
					back, err := reg.Convert(there, from)
					if err != nil || !reg.Equal(d, back, data.WithAtol(0), data.WithRtol(0)) {
						return false
					}
				}
			}

			return true
		},
		gen.IntRange(1, 6), gen.IntRange(1, 6), gen.Int64(),
	))

	properties.Property("Equal is reflexive and symmetric on finite data", prop.ForAll(
		func(r, c int, seed int64) bool {
			rng := rand.New(rand.NewSource(seed))
			as, ok := create(rng, r, c)
			if !ok {
				return false
			}
			bs, ok := create(rng, r, c)
			if !ok {
				return false
			}
			for _, ka := range propKinds {
				if !reg.Equal(as[ka], as[ka]) {
					return false
				}
				for _, kb := range propKinds {
					// The rtol term scales with |b|, so symmetry is only exact without it.
					if reg.Equal(as[ka], bs[kb], data.WithRtol(0)) != reg.Equal(bs[kb], as[ka], data.WithRtol(0)) {
						return false
					}
				}
			}

			return true
		},
		gen.IntRange(0, 5), gen.IntRange(0, 5), gen.Int64(),
	))

	properties.Property("a+a = 2a, -(-a) = a and (a†)† = a for every kind", prop.ForAll(
		func(r, c int, seed int64) bool {
			rows := randRows(rand.New(rand.NewSource(seed)), r, c, 0.5)
			kinds := propKinds
			if r == c {
				// Square inputs also feed Diag through their diagonal.
				kinds = append(kinds[:len(kinds):len(kinds)], data.KindDiag)
			}
			for _, k := range kinds {
				src := rows
				if k == data.KindDiag {
					src = diagRows(rows)
				}
				a, err := reg.Create(k, src)
				if err != nil {
					return false
				}
				twice, err := reg.Add(a, a)
				if err != nil || !reg.Equal(twice, a.MulScalar(2)) {
					return false
				}
				exact := []data.Option{data.WithAtol(0), data.WithRtol(0)}
				if !reg.Equal(a.Neg().Neg(), a, exact...) || !reg.Equal(a.Adjoint().Adjoint(), a, exact...) {
					return false
				}
			}

			return true
		},
		gen.IntRange(1, 5), gen.IntRange(1, 5), gen.Int64(),
	))

	properties.Property("trace is invariant under transpose", prop.ForAll(
		func(n int, seed int64) bool {
			rows := randRows(rand.New(rand.NewSource(seed)), n, n, 0.5)
			for _, k := range propKinds {
				d, err := reg.Create(k, rows)
				if err != nil {
					return false
				}
				t1, err1 := d.Trace()
				t2, err2 := d.Transpose().Trace()
				if err1 != nil || err2 != nil || t1 != t2 {
					return false
				}
			}

			return true
		},
		gen.IntRange(1, 6), gen.Int64(),
	))

	properties.TestingRun(t)
}

// mustRowsOK is FromRows without a testing.TB, for use inside properties.
func mustRowsOK(rows [][]complex128) *data.Dense {
	d, err := data.FromRows(rows)
	if err != nil {
		return nil
	}

	return d
}
