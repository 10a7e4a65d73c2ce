// SPDX-License-Identifier: MIT

// Package codec exports and imports representation instances losslessly as
// MessagePack envelopes.
//
// Envelope fields:
//   - v:       format version (currently 1)
//   - kind:    registered name of the kind to restore
//   - layout:  storage layout of the payload: dense, csr or diag
//   - rows, cols
//   - re, im:  real and imaginary parts of the stored values
//   - indptr, indices: CSR structure (csr layout only)
//
// Built-in kinds travel in their own layout. Caller-defined kinds travel as a
// dense payload and are converted back through the registry on decode.
package codec

import (
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/qdata/data"
	"github.com/vmihailenco/msgpack/v5"
)

// Version is the envelope format written by Encode.
const Version = 1

// Payload layouts.
const (
	layoutDense = "dense"
	layoutCSR   = "csr"
	layoutDiag  = "diag"
)

var (
	// ErrUnknownKind indicates an envelope naming a kind the registry does not know.
	ErrUnknownKind = errors.New("codec: unknown kind")

	// ErrVersion indicates an unsupported envelope version.
	ErrVersion = errors.New("codec: unsupported version")

	// ErrMalformed indicates an envelope whose fields disagree with each other.
	ErrMalformed = errors.New("codec: malformed envelope")
)

type envelope struct {
	Version int       `msgpack:"v"`
	Kind    string    `msgpack:"kind"`
	Layout  string    `msgpack:"layout"`
	Rows    int       `msgpack:"rows"`
	Cols    int       `msgpack:"cols"`
	Re      []float64 `msgpack:"re"`
	Im      []float64 `msgpack:"im"`
	Indptr  []int     `msgpack:"indptr,omitempty"`
	Indices []int     `msgpack:"indices,omitempty"`
}

// Codec encodes against one registry; the registry names kinds and restores
// caller-defined ones.
type Codec struct {
	reg *data.Registry
}

// New returns a Codec over reg, or over data.Default() when reg is nil.
func New(reg *data.Registry) *Codec {
	if reg == nil {
		reg = data.Default()
	}

	return &Codec{reg: reg}
}

// Encode serializes d.
func (c *Codec) Encode(d data.Data) ([]byte, error) {
	env, err := c.envelope(d)
	if err != nil {
		return nil, err
	}
	b, err := msgpack.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("Encode: %w", err)
	}

	return b, nil
}

// Write encodes d onto w.
func (c *Codec) Write(w io.Writer, d data.Data) error {
	env, err := c.envelope(d)
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(w).Encode(env); err != nil {
		return fmt.Errorf("Write: %w", err)
	}

	return nil
}

// Decode restores a value encoded by Encode.
func (c *Codec) Decode(b []byte) (data.Data, error) {
	var env envelope
	if err := msgpack.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}

	return c.restore(&env)
}

// Read decodes one value from r.
func (c *Codec) Read(r io.Reader) (data.Data, error) {
	var env envelope
	if err := msgpack.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("Read: %w", err)
	}

	return c.restore(&env)
}

// envelope flattens d into its wire form.
func (c *Codec) envelope(d data.Data) (*envelope, error) {
	if d == nil {
		return nil, fmt.Errorf("Encode: %w", data.ErrNilData)
	}
	s := d.Shape()
	env := &envelope{Version: Version, Kind: c.reg.Name(d.Kind()), Rows: s.Rows, Cols: s.Cols}
	switch m := d.(type) {
	case *data.Dense:
		env.Layout = layoutDense
		env.Re, env.Im = split(m.RawRowMajor())
	case *data.CSR:
		env.Layout = layoutCSR
		env.Re, env.Im = split(m.Values())
		env.Indptr, env.Indices = m.Indptr(), m.Indices()
	case *data.Diag:
		env.Layout = layoutDiag
		env.Re, env.Im = split(m.Values())
	default:
		dense, err := c.reg.Convert(d, data.KindDense)
		if err != nil {
			return nil, fmt.Errorf("Encode: %w", err)
		}
		env.Layout = layoutDense
		env.Re, env.Im = split(dense.(*data.Dense).RawRowMajor())
	}

	return env, nil
}

// restore rebuilds the payload through the kinds' validating constructors,
// then converts to the named kind when it differs from the layout.
func (c *Codec) restore(env *envelope) (data.Data, error) {
	const tag = "Decode"
	if env.Version != Version {
		return nil, fmt.Errorf("%s: v=%d: %w", tag, env.Version, ErrVersion)
	}
	kind, err := c.reg.KindByName(env.Kind)
	if err != nil {
		return nil, fmt.Errorf("%s(%q): %w", tag, env.Kind, ErrUnknownKind)
	}
	if len(env.Re) != len(env.Im) {
		return nil, fmt.Errorf("%s: len(re)=%d len(im)=%d: %w", tag, len(env.Re), len(env.Im), ErrMalformed)
	}
	values := join(env.Re, env.Im)

	var d data.Data
	switch env.Layout {
	case layoutDense:
		d, err = data.NewDense(env.Rows, env.Cols, values, data.RowMajor)
	case layoutCSR:
		d, err = data.NewCSR(env.Rows, env.Cols, env.Indptr, env.Indices, values)
	case layoutDiag:
		d, err = data.NewDiag(env.Rows, env.Cols, values)
	default:
		return nil, fmt.Errorf("%s: layout %q: %w", tag, env.Layout, ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}
	if d.Kind() == kind {
		return d, nil
	}
	out, err := c.reg.Convert(d, kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}

	return out, nil
}

// Encode serializes d with the default registry.
func Encode(d data.Data) ([]byte, error) { return New(nil).Encode(d) }

// Decode restores b with the default registry.
func Decode(b []byte) (data.Data, error) { return New(nil).Decode(b) }

func split(values []complex128) (re, im []float64) {
	re = make([]float64, len(values))
	im = make([]float64, len(values))
	for i, v := range values {
		re[i], im[i] = real(v), imag(v)
	}

	return re, im
}

func join(re, im []float64) []complex128 {
	out := make([]complex128, len(re))
	for i := range re {
		out[i] = complex(re[i], im[i])
	}

	return out
}
