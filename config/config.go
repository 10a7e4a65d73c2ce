// SPDX-License-Identifier: MIT

// Package config provides process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/katalvlaran/qdata/data"
	"github.com/katalvlaran/qdata/logging"
	"github.com/rs/zerolog"
)

// Environment variable names.
const (
	EnvAtol        = "QDATA_ATOL"
	EnvRtol        = "QDATA_RTOL"
	EnvInfEqual    = "QDATA_INF_EQUAL"
	EnvAccel       = "QDATA_ACCEL"
	EnvDefaultKind = "QDATA_DEFAULT_KIND"
	EnvLogLevel    = "QDATA_LOG_LEVEL"
	EnvLogPretty   = "QDATA_LOG_PRETTY"
)

// ErrInvalid indicates a malformed or out-of-range setting.
var ErrInvalid = errors.New("config: invalid value")

// Config holds process configuration.
type Config struct {
	Atol        float64 // Equal/IsZero absolute tolerance
	Rtol        float64 // Equal relative tolerance
	InfEqual    bool    // identical infinities compare equal
	Accel       bool    // allow the accelerated matmul path
	DefaultKind string  // kind used when building objects from raw rows
	LogLevel    string
	LogPretty   bool
}

// Default returns the configuration used when no variable is set.
func Default() *Config {
	return &Config{
		Atol:        data.DefaultAtol,
		Rtol:        data.DefaultRtol,
		InfEqual:    data.DefaultInfEqual,
		Accel:       true,
		DefaultKind: "dense",
		LogLevel:    "info",
	}
}

// Load reads a .env file if present, then the QDATA_* environment variables.
// A missing .env is fine; an unreadable or malformed one is an error, and so
// are malformed values.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf(".env: %v: %w", err, ErrInvalid)
	}

	cfg := Default()
	var err error
	if cfg.Atol, err = getEnvAsFloat(EnvAtol, cfg.Atol); err != nil {
		return nil, err
	}
	if cfg.Rtol, err = getEnvAsFloat(EnvRtol, cfg.Rtol); err != nil {
		return nil, err
	}
	if cfg.InfEqual, err = getEnvAsBool(EnvInfEqual, cfg.InfEqual); err != nil {
		return nil, err
	}
	if cfg.Accel, err = getEnvAsBool(EnvAccel, cfg.Accel); err != nil {
		return nil, err
	}
	if cfg.LogPretty, err = getEnvAsBool(EnvLogPretty, cfg.LogPretty); err != nil {
		return nil, err
	}
	cfg.DefaultKind = getEnv(EnvDefaultKind, cfg.DefaultKind)
	cfg.LogLevel = getEnv(EnvLogLevel, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects tolerances the data package would refuse and unknown kinds.
func (c *Config) Validate() error {
	if math.IsNaN(c.Atol) || math.IsInf(c.Atol, 0) || c.Atol < 0 {
		return fmt.Errorf("%s=%v: %w", EnvAtol, c.Atol, ErrInvalid)
	}
	if math.IsNaN(c.Rtol) || math.IsInf(c.Rtol, 0) || c.Rtol < 0 {
		return fmt.Errorf("%s=%v: %w", EnvRtol, c.Rtol, ErrInvalid)
	}
	if _, err := c.Kind(); err != nil {
		return fmt.Errorf("%s=%q: %w", EnvDefaultKind, c.DefaultKind, ErrInvalid)
	}

	return nil
}

// Kind resolves DefaultKind.
func (c *Config) Kind() (data.Kind, error) { return data.ParseKind(c.DefaultKind) }

// Logging returns the logger configuration.
func (c *Config) Logging() logging.Config {
	return logging.Config{Level: c.LogLevel, Pretty: c.LogPretty}
}

// DataOptions translates the configuration into registry options.
// Call only on a validated Config: the tolerance options panic otherwise.
func (c *Config) DataOptions(log zerolog.Logger) []data.Option {
	opts := []data.Option{
		data.WithTolerance(data.Tolerance{Atol: c.Atol, Rtol: c.Rtol, InfEqual: c.InfEqual}),
		data.WithLogger(log),
	}
	if !c.Accel {
		opts = append(opts, data.WithReferenceKernels())
	}

	return opts
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w", key, value, ErrInvalid)
	}

	return f, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s=%q: %w", key, value, ErrInvalid)
	}

	return b, nil
}
