// SPDX-License-Identifier: MIT

package codec_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/katalvlaran/qdata/codec"
	"github.com/katalvlaran/qdata/data"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

// tagged is a caller-defined kind backed by a Dense.
type tagged struct{ *data.Dense }

const kindTagged = data.KindUser + 3

func (tagged) Kind() data.Kind { return kindTagged }

func taggedRegistry(t *testing.T) *data.Registry {
	t.Helper()
	reg, err := data.NewBuiltinBuilder().RegisterKind(data.KindSpec{
		Kind: kindTagged, Name: "tagged", Total: true,
		FromDense:     func(m *data.Dense) (data.Data, error) { return tagged{m}, nil },
		ToDense:       func(d data.Data) (*data.Dense, error) { return d.(tagged).Dense, nil },
		FromDenseCost: 1, ToDenseCost: 1,
	}).Build()
	require.NoError(t, err)

	return reg
}

func TestRoundTrip_BuiltinKinds(t *testing.T) {
	rows := [][]complex128{{1 + 2i, 0, 0}, {0, -3.5, 0}}
	for _, k := range []data.Kind{data.KindDense, data.KindCSR, data.KindDiag} {
		t.Run(k.String(), func(t *testing.T) {
			d, err := data.Create(k, rows)
			require.NoError(t, err)
			b, err := codec.Encode(d)
			require.NoError(t, err)
			back, err := codec.Decode(b)
			require.NoError(t, err)
			require.Equal(t, k, back.Kind())
			require.Equal(t, d.Shape(), back.Shape())
			require.Equal(t, d.NNZ(), back.NNZ())
			require.Equal(t, rows, back.ToArray())
		})
	}
}

func TestRoundTrip_CSRStructure(t *testing.T) {
	sp, err := data.NewCSR(3, 3, []int{0, 2, 2, 3}, []int{0, 2, 1}, []complex128{1, 0, 2i})
	require.NoError(t, err)
	b, err := codec.Encode(sp)
	require.NoError(t, err)
	back, err := codec.Decode(b)
	require.NoError(t, err)
	csr := back.(*data.CSR)
	require.Equal(t, sp.Indptr(), csr.Indptr())
	require.Equal(t, sp.Indices(), csr.Indices())
	require.Equal(t, sp.Values(), csr.Values())
}

func TestRoundTrip_NonFiniteBits(t *testing.T) {
	vals := []complex128{complex(math.NaN(), math.Inf(-1)), complex(math.Copysign(0, -1), 1e-300)}
	d, err := data.NewDense(1, 2, vals, data.RowMajor)
	require.NoError(t, err)
	b, err := codec.Encode(d)
	require.NoError(t, err)
	back, err := codec.Decode(b)
	require.NoError(t, err)
	got := back.(*data.Dense).RawRowMajor()
	for i, v := range vals {
		require.Equal(t, math.Float64bits(real(v)), math.Float64bits(real(got[i])))
		require.Equal(t, math.Float64bits(imag(v)), math.Float64bits(imag(got[i])))
	}
}

func TestRoundTrip_EmptyShapes(t *testing.T) {
	for _, shape := range []data.Shape{{Rows: 0, Cols: 0}, {Rows: 3, Cols: 0}} {
		z, err := data.Zeros(shape.Rows, shape.Cols)
		require.NoError(t, err)
		for _, k := range []data.Kind{data.KindDense, data.KindCSR, data.KindDiag} {
			d, err := data.Convert(z, k)
			require.NoError(t, err)
			b, err := codec.Encode(d)
			require.NoError(t, err)
			back, err := codec.Decode(b)
			require.NoError(t, err)
			require.Equal(t, shape, back.Shape())
			require.Equal(t, k, back.Kind())
		}
	}
}

func TestRoundTrip_UserKind(t *testing.T) {
	reg := taggedRegistry(t)
	m, err := data.FromRows([][]complex128{{1, 2}, {3, 4i}})
	require.NoError(t, err)
	c := codec.New(reg)

	b, err := c.Encode(tagged{m})
	require.NoError(t, err)
	back, err := c.Decode(b)
	require.NoError(t, err)
	require.Equal(t, kindTagged, back.Kind())
	require.Equal(t, m.ToArray(), back.ToArray())

	// The default registry has never heard of "tagged".
	_, err = codec.Decode(b)
	require.ErrorIs(t, err, codec.ErrUnknownKind)
}

func TestWriteRead(t *testing.T) {
	var buf bytes.Buffer
	c := codec.New(nil)
	first, err := data.Create(data.KindDiag, [][]complex128{{1, 0}, {0, 2}})
	require.NoError(t, err)
	second, err := data.Create(data.KindCSR, [][]complex128{{0, 5}})
	require.NoError(t, err)
	require.NoError(t, c.Write(&buf, first))
	require.NoError(t, c.Write(&buf, second))

	got, err := c.Read(&buf)
	require.NoError(t, err)
	require.True(t, data.Equal(first, got))
	got, err = c.Read(&buf)
	require.NoError(t, err)
	require.Equal(t, data.KindCSR, got.Kind())
	require.True(t, data.Equal(second, got))
}

func TestDecode_Errors(t *testing.T) {
	marshal := func(m map[string]any) []byte {
		b, err := msgpack.Marshal(m)
		require.NoError(t, err)
		return b
	}
	cases := []struct {
		name string
		in   []byte
		want error
	}{
		{"bad version", marshal(map[string]any{"v": 9, "kind": "dense", "layout": "dense"}), codec.ErrVersion},
		{"unknown kind", marshal(map[string]any{"v": 1, "kind": "coo", "layout": "dense"}), codec.ErrUnknownKind},
		{"unknown layout", marshal(map[string]any{"v": 1, "kind": "dense", "layout": "coo"}), codec.ErrMalformed},
		{"re/im mismatch", marshal(map[string]any{"v": 1, "kind": "dense", "layout": "dense", "rows": 1, "cols": 1,
			"re": []float64{1}, "im": []float64{}}), codec.ErrMalformed},
		{"buffer length", marshal(map[string]any{"v": 1, "kind": "dense", "layout": "dense", "rows": 2, "cols": 2,
			"re": []float64{1}, "im": []float64{0}}), data.ErrBufferLength},
		{"bad CSR", marshal(map[string]any{"v": 1, "kind": "csr", "layout": "csr", "rows": 1, "cols": 2,
			"re": []float64{1, 2}, "im": []float64{0, 0}, "indptr": []int{0, 2}, "indices": []int{1, 0}}), data.ErrInvalidStructure},
		{"overflowing shape", marshal(map[string]any{"v": 1, "kind": "dense", "layout": "dense", "rows": 1 << 32, "cols": 1 << 32,
			"re": []float64{}, "im": []float64{}}), data.ErrInvalidDimensions},
		{"overflowing diag shape", marshal(map[string]any{"v": 1, "kind": "diag", "layout": "diag", "rows": 1 << 32, "cols": 1 << 32,
			"re": []float64{}, "im": []float64{}}), data.ErrInvalidDimensions},
		{"diag kind from full dense", marshal(map[string]any{"v": 1, "kind": "diag", "layout": "dense", "rows": 1, "cols": 2,
			"re": []float64{1, 2}, "im": []float64{0, 0}}), data.ErrStructuralConversion},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := codec.Decode(tc.in)
			require.ErrorIs(t, err, tc.want)
		})
	}
	_, err := codec.Decode([]byte{0xc1})
	require.Error(t, err)
	_, err = codec.Encode(nil)
	require.ErrorIs(t, err, data.ErrNilData)
}
