// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/qdata/codec"
	"github.com/katalvlaran/qdata/data"
	"github.com/katalvlaran/qdata/qobj"
)

// maxPrintDim bounds the matrices inspect prints in full.
const maxPrintDim = 8

// check is one named selfcheck step.
type check struct {
	name string
	fn   func() error
}

func (e *env) selfcheck(args []string) error {
	fs := flag.NewFlagSet("selfcheck", flag.ContinueOnError)
	fs.SetOutput(e.out)
	if err := fs.Parse(args); err != nil {
		return err
	}

	checks := []check{
		{"identity survives diag round-trip", e.checkIdentityRoundTrip},
		{"full matrix refuses diag", e.checkStructural},
		{"2x3 by 3x2 product across kinds", e.checkProduct},
		{"trace of 2x3 is a shape error", e.checkTrace},
		{"NaN is never equal", e.checkNaN},
		{"pauli expectation values", e.checkExpect},
	}
	failed := 0
	for _, c := range checks {
		if err := c.fn(); err != nil {
			failed++
			fmt.Fprintf(e.out, "FAIL %s: %v\n", c.name, err)
			e.log.Error().Err(err).Str("check", c.name).Msg("selfcheck failed")
			continue
		}
		fmt.Fprintf(e.out, "ok   %s\n", c.name)
	}
	e.log.Info().
		Int("checks", len(checks)).
		Int("failed", failed).
		Str("matmul_backend", e.reg.MatmulBackend()).
		Msg("selfcheck finished")
	if failed > 0 {
		return fmt.Errorf("selfcheck: %d of %d checks failed", failed, len(checks))
	}

	return nil
}

func (e *env) checkIdentityRoundTrip() error {
	id, err := data.Identity(2)
	if err != nil {
		return err
	}
	dg, err := e.reg.Convert(id, data.KindDiag)
	if err != nil {
		return err
	}
	back, err := e.reg.Convert(dg, data.KindDense)
	if err != nil {
		return err
	}
	if !e.reg.Equal(id, back) {
		return fmt.Errorf("got %v", back.ToArray())
	}

	return nil
}

func (e *env) checkStructural() error {
	_, err := e.reg.Create(data.KindDiag, [][]complex128{{1, 2}, {3, 4}})
	if !errors.Is(err, data.ErrStructuralConversion) {
		return fmt.Errorf("want structural conversion error, got %v", err)
	}

	return nil
}

func (e *env) checkProduct() error {
	a := [][]complex128{{1, 2, 3}, {4, 5, 6}}
	b := [][]complex128{{7, 8}, {9, 10}, {11, 12}}
	want, err := data.FromRows([][]complex128{{58, 64}, {139, 154}})
	if err != nil {
		return err
	}
	for _, ka := range []data.Kind{data.KindDense, data.KindCSR} {
		for _, kb := range []data.Kind{data.KindDense, data.KindCSR} {
			x, err := e.reg.Create(ka, a)
			if err != nil {
				return err
			}
			y, err := e.reg.Create(kb, b)
			if err != nil {
				return err
			}
			p, err := e.reg.Matmul(x, y)
			if err != nil {
				return err
			}
			if !e.reg.Equal(p, want) {
				return fmt.Errorf("%s×%s: got %v", ka, kb, p.ToArray())
			}
		}
	}

	return nil
}

func (e *env) checkTrace() error {
	z, err := data.Zeros(2, 3)
	if err != nil {
		return err
	}
	_, err = z.Trace()
	var se *data.ShapeError
	if !errors.As(err, &se) || !strings.Contains(err.Error(), "(2, 3)") {
		return fmt.Errorf("want shape error naming (2, 3), got %v", err)
	}

	return nil
}

func (e *env) checkNaN() error {
	n, err := data.FromRows([][]complex128{{complex(math.NaN(), 0)}})
	if err != nil {
		return err
	}
	if e.reg.Equal(n, n) {
		return errors.New("NaN compared equal to itself")
	}

	return nil
}

func (e *env) checkExpect() error {
	opts := []qobj.Option{qobj.WithRegistry(e.reg), qobj.WithKind(data.KindCSR)}
	up, err := qobj.FromArray([][]complex128{{1}, {0}}, qobj.WithRegistry(e.reg))
	if err != nil {
		return err
	}
	sz, err := qobj.FromArray([][]complex128{{1, 0}, {0, -1}}, opts...)
	if err != nil {
		return err
	}
	sx, err := qobj.FromArray([][]complex128{{0, 1}, {1, 0}}, opts...)
	if err != nil {
		return err
	}
	if !sz.IsHerm() || !sx.IsHerm() {
		return errors.New("pauli matrices are not Hermitian")
	}
	vz, err := qobj.Expect(sz, up)
	if err != nil {
		return err
	}
	vx, err := qobj.Expect(sx, up)
	if err != nil {
		return err
	}
	if vz != 1 || vx != 0 {
		return fmt.Errorf("<z>=%v <x>=%v, want 1 and 0", vz, vx)
	}

	return nil
}

func (e *env) plans(args []string) error {
	fs := flag.NewFlagSet("plans", flag.ContinueOnError)
	fs.SetOutput(e.out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "matmul backend: %s\n", e.reg.MatmulBackend())
	for _, p := range e.reg.Plans() {
		route := "exact"
		if !p.Exact {
			route = fmt.Sprintf("via %s (cost %d)", e.reg.Name(p.Target), p.Cost)
		}
		fmt.Fprintf(e.out, "%-6s %-5s x %-5s %s\n", p.Op, e.reg.Name(p.A), e.reg.Name(p.B), route)
	}

	return nil
}

func (e *env) create(args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(e.out)
	rows := fs.String("rows", "", `matrix rows, ";" between rows and "," between entries`)
	kindName := fs.String("kind", "", "target kind (default from QDATA_DEFAULT_KIND)")
	outPath := fs.String("out", "", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *rows == "" || *outPath == "" {
		return errors.New("create: -rows and -out are required")
	}
	kind, err := e.kindFlag(*kindName)
	if err != nil {
		return err
	}
	parsed, err := parseRows(*rows)
	if err != nil {
		return err
	}
	d, err := e.reg.Create(kind, parsed)
	if err != nil {
		return err
	}
	if err := e.writeFile(*outPath, d); err != nil {
		return err
	}
	e.log.Info().Str("kind", e.reg.Name(d.Kind())).Str("shape", d.Shape().String()).Str("out", *outPath).Msg("matrix written")

	return nil
}

func (e *env) inspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(e.out)
	in := fs.String("in", "", "encoded input file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	d, err := e.readFile(*in)
	if err != nil {
		return err
	}
	q, err := qobj.New(d, qobj.WithRegistry(e.reg))
	if err != nil {
		return err
	}
	s := q.Shape()
	fmt.Fprintf(e.out, "kind:  %s\n", e.reg.Name(q.Kind()))
	fmt.Fprintf(e.out, "shape: %s\n", s)
	fmt.Fprintf(e.out, "type:  %s\n", q.Type())
	fmt.Fprintf(e.out, "nnz:   %d\n", d.NNZ())
	if s.IsSquare() {
		tr, err := q.Tr()
		if err != nil {
			return err
		}
		fmt.Fprintf(e.out, "trace: %v\n", tr)
		fmt.Fprintf(e.out, "herm:  %t\n", q.IsHerm())
	}
	fmt.Fprintf(e.out, "zero:  %t\n", q.IsZero())
	if s.Rows <= maxPrintDim && s.Cols <= maxPrintDim {
		for _, row := range q.Full() {
			fmt.Fprintln(e.out, row)
		}
	}

	return nil
}

func (e *env) convert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(e.out)
	in := fs.String("in", "", "encoded input file")
	kindName := fs.String("kind", "", "target kind")
	outPath := fs.String("out", "", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *kindName == "" || *outPath == "" {
		return errors.New("convert: -kind and -out are required")
	}
	kind, err := e.kindFlag(*kindName)
	if err != nil {
		return err
	}
	d, err := e.readFile(*in)
	if err != nil {
		return err
	}
	conv, err := e.reg.Convert(d, kind)
	if err != nil {
		return err
	}
	if err := e.writeFile(*outPath, conv); err != nil {
		return err
	}
	e.log.Info().Str("from", e.reg.Name(d.Kind())).Str("to", e.reg.Name(kind)).Str("out", *outPath).Msg("matrix converted")

	return nil
}

// kindFlag resolves a -kind value, falling back to the configured default.
func (e *env) kindFlag(name string) (data.Kind, error) {
	if name == "" {
		return e.kind, nil
	}

	return e.reg.KindByName(name)
}

func (e *env) readFile(path string) (data.Data, error) {
	if path == "" {
		return nil, errors.New("missing -in")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return codec.New(e.reg).Read(f)
}

func (e *env) writeFile(path string, d data.Data) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return codec.New(e.reg).Write(f, d)
}

// parseRows reads "1,2;3,4i" into rows. Entries use strconv complex syntax.
func parseRows(s string) ([][]complex128, error) {
	var rows [][]complex128
	for i, line := range strings.Split(s, ";") {
		fields := strings.Split(line, ",")
		row := make([]complex128, len(fields))
		for j, f := range fields {
			v, err := strconv.ParseComplex(strings.TrimSpace(f), 128)
			if err != nil {
				return nil, fmt.Errorf("entry (%d, %d): %w", i, j, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}

	return rows, nil
}
