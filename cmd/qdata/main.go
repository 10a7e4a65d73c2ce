// SPDX-License-Identifier: MIT

// Command qdata creates, inspects and converts encoded operators and runs a
// self-check of the dispatch registry.
//
// Usage:
//
//	qdata selfcheck
//	qdata plans
//	qdata create  -rows "1,0;0,1i" [-kind diag] -out op.qd
//	qdata inspect -in op.qd
//	qdata convert -in op.qd -kind csr -out op_csr.qd
//
// Configuration comes from QDATA_* environment variables (see package config).
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/qdata/accel"
	"github.com/katalvlaran/qdata/config"
	"github.com/katalvlaran/qdata/data"
	"github.com/katalvlaran/qdata/logging"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "qdata:", err)
		os.Exit(1)
	}
}

// env is what every subcommand needs.
type env struct {
	cfg  *config.Config
	log  zerolog.Logger
	reg  *data.Registry
	kind data.Kind
	out  io.Writer
}

// setup loads configuration, freezes the acceleration flag and builds the
// registry. The process-wide default registry is initialized with the same
// options so facades agree with the commands.
func setup(out io.Writer) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.Logging())
	accel.Init(!cfg.Accel)
	log.Debug().
		Str("cpu", accel.Detected().String()).
		Bool("accel", accel.Available()).
		Bool("disabled", accel.Disabled()).
		Msg("acceleration probed")

	reg := data.Init(cfg.DataOptions(log)...)
	kind, err := cfg.Kind()
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, log: log, reg: reg, kind: kind, out: out}, nil
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return fmt.Errorf("missing command")
	}
	cmd, rest := args[0], args[1:]
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		usage(out)
		return nil
	}
	e, err := setup(out)
	if err != nil {
		return err
	}
	switch cmd {
	case "selfcheck":
		return e.selfcheck(rest)
	case "plans":
		return e.plans(rest)
	case "create":
		return e.create(rest)
	case "inspect":
		return e.inspect(rest)
	case "convert":
		return e.convert(rest)
	default:
		usage(out)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: qdata <command> [flags]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  selfcheck   verify dispatch, conversion and comparison invariants")
	fmt.Fprintln(w, "  plans       print the resolved dispatch plan of every kind pair")
	fmt.Fprintln(w, "  create      encode a matrix given as rows (\"1,2;3,4i\")")
	fmt.Fprintln(w, "  inspect     describe an encoded matrix")
	fmt.Fprintln(w, "  convert     re-encode a matrix as another kind")
}
