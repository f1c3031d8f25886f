package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/segfit/blob"
	"github.com/arloliu/segfit/format"
)

// Config holds defaults for the fit command. Flags set on the command line
// take precedence over values loaded from a config file.
type Config struct {
	// Cost is the penalty charged once per segment.
	Cost float64 `yaml:"cost"`
	// Unit is the duration of one x unit, e.g. "1us" or "1s".
	Unit string `yaml:"unit"`
	// Format is the output format of fit: text, json or blob.
	Format string `yaml:"format"`
	// Compression applies to both blob payloads.
	Compression string `yaml:"compression"`
	// BoundaryEncoding is raw or delta.
	BoundaryEncoding string `yaml:"boundary_encoding"`
	// CoefficientEncoding is raw or gorilla.
	CoefficientEncoding string `yaml:"coefficient_encoding"`
	// Summary prints goodness-of-fit statistics in text output.
	Summary bool `yaml:"summary"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Cost:                1.0,
		Unit:                "1us",
		Format:              "text",
		Compression:         "zstd",
		BoundaryEncoding:    "delta",
		CoefficientEncoding: "raw",
	}
}

// LoadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks every field that names a unit, format or encoding.
func (c Config) Validate() error {
	if c.Cost < 0 {
		return fmt.Errorf("cost must be non-negative, got %g", c.Cost)
	}

	if _, err := c.unit(); err != nil {
		return err
	}

	switch c.Format {
	case "text", "json", "blob":
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}

	_, err := c.encoderOptions()

	return err
}

func (c Config) unit() (time.Duration, error) {
	unit, err := time.ParseDuration(c.Unit)
	if err != nil {
		return 0, fmt.Errorf("invalid unit %q: %w", c.Unit, err)
	}
	if unit <= 0 {
		return 0, fmt.Errorf("unit must be positive, got %s", unit)
	}

	return unit, nil
}

func (c Config) encoderOptions() ([]blob.SegmentEncoderOption, error) {
	comp, err := format.ParseCompressionType(c.Compression)
	if err != nil {
		return nil, err
	}

	boundary, err := format.ParseEncodingType(c.BoundaryEncoding)
	if err != nil {
		return nil, err
	}

	coefficient, err := format.ParseEncodingType(c.CoefficientEncoding)
	if err != nil {
		return nil, err
	}

	opts := []blob.SegmentEncoderOption{
		blob.WithCompression(comp),
		blob.WithBoundaryEncoding(boundary),
		blob.WithCoefficientEncoding(coefficient),
	}

	// surface invalid combinations, e.g. gorilla boundaries, before encoding
	if _, err := blob.NewSegmentEncoder(opts...); err != nil {
		return nil, err
	}

	return opts, nil
}
