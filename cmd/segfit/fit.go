package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/arloliu/segfit/blob"
	"github.com/arloliu/segfit/regression"
	"github.com/arloliu/segfit/series"
)

type fitFlags struct {
	cost                float64
	unit                string
	format              string
	compression         string
	boundaryEncoding    string
	coefficientEncoding string
	summary             bool
	name                string
	output              string
	origin              int64
}

func newFitCmd(a *app) *cobra.Command {
	flags := &fitFlags{}
	defaults := DefaultConfig()

	cmd := &cobra.Command{
		Use:   "fit [file]",
		Short: "Fit segments to x,y CSV data read from a file or stdin",
		Example: `  segfit fit --cost 2.5 data.csv
  segfit fit --unit 1s --format blob -o cpu.seg cpu.csv
  cat data.csv | segfit fit --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			return a.runFit(cmd, flags, path)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&flags.cost, "cost", defaults.Cost, "penalty charged once per segment")
	f.StringVar(&flags.unit, "unit", defaults.Unit, "duration of one x unit")
	f.StringVar(&flags.format, "format", defaults.Format, "output format: text, json or blob")
	f.StringVar(&flags.compression, "compression", defaults.Compression, "blob compression: none, zstd, s2 or lz4")
	f.StringVar(&flags.boundaryEncoding, "boundary-encoding", defaults.BoundaryEncoding, "blob boundary encoding: raw or delta")
	f.StringVar(&flags.coefficientEncoding, "coefficient-encoding", defaults.CoefficientEncoding, "blob coefficient encoding: raw or gorilla")
	f.BoolVar(&flags.summary, "summary", defaults.Summary, "include goodness-of-fit statistics")
	f.StringVar(&flags.name, "name", "", "series name, defaults to the input file name")
	f.StringVarP(&flags.output, "output", "o", "", "write output to a file instead of stdout")
	f.Int64Var(&flags.origin, "origin", 0, "x value mapped to zero, defaults to the first x")

	return cmd
}

// resolveConfig layers explicitly set flags over the config file.
func (a *app) resolveConfig(cmd *cobra.Command, flags *fitFlags) (Config, error) {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return cfg, err
	}

	f := cmd.Flags()
	if f.Changed("cost") {
		cfg.Cost = flags.cost
	}
	if f.Changed("unit") {
		cfg.Unit = flags.unit
	}
	if f.Changed("format") {
		cfg.Format = strings.ToLower(flags.format)
	}
	if f.Changed("compression") {
		cfg.Compression = flags.compression
	}
	if f.Changed("boundary-encoding") {
		cfg.BoundaryEncoding = flags.boundaryEncoding
	}
	if f.Changed("coefficient-encoding") {
		cfg.CoefficientEncoding = flags.coefficientEncoding
	}
	if f.Changed("summary") {
		cfg.Summary = flags.summary
	}

	return cfg, cfg.Validate()
}

func (a *app) runFit(cmd *cobra.Command, flags *fitFlags, path string) (err error) {
	cfg, err := a.resolveConfig(cmd, flags)
	if err != nil {
		return err
	}
	a.logger.Debug("resolved config", "config", a.configPath, "cost", cfg.Cost, "unit", cfg.Unit, "format", cfg.Format)

	in, err := a.openInput(path)
	if err != nil {
		return err
	}
	defer in.Close()

	name := flags.name
	if name == "" {
		name = "stdin"
		if path != "" && path != "-" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
	}

	s, err := readSeries(in, name)
	if err != nil {
		return err
	}
	a.logger.Debug("read series", "name", name, "points", s.Len())

	unit, _ := cfg.unit()
	opts := []series.Option{series.WithUnit(unit)}
	if cmd.Flags().Changed("origin") {
		opts = append(opts, series.WithOrigin(flags.origin))
	}

	fit, err := s.Fit(cfg.Cost, opts...)
	if err != nil {
		return err
	}
	a.logger.Info("fitted series", "name", name, "segments", fit.SegmentCount(), "total_cost", fit.Result.TotalCost)

	out := a.stdout
	if flags.output != "" {
		file, createErr := os.Create(flags.output)
		if createErr != nil {
			return createErr
		}
		defer closeOutput(file, flags.output, &err)
		out = file
	}

	if cfg.Format == "blob" {
		if isTerminal(out) {
			return errors.New("refusing to write a binary blob to a terminal, use --output")
		}

		encOpts, err := cfg.encoderOptions()
		if err != nil {
			return err
		}

		encoder, err := blob.NewSegmentEncoder(encOpts...)
		if err != nil {
			return err
		}

		data, err := encoder.Encode(fit)
		if err != nil {
			return err
		}

		boundary, coefficient := encoder.Stats()
		a.logger.Debug("encoded blob", "bytes", len(data),
			"boundary_ratio", boundary.CompressionRatio(), "coefficient_ratio", coefficient.CompressionRatio())

		_, err = out.Write(data)

		return err
	}

	var summary *regression.Summary
	if cfg.Summary {
		if summary, err = fit.Summarize(s); err != nil {
			return fmt.Errorf("summarize: %w", err)
		}
	}

	result := newFitOutput(name, fit, summary)
	if cfg.Format == "json" {
		return writeJSON(out, result)
	}

	return writeText(out, result)
}

// closeOutput closes a written file and stores its error in err unless err
// already holds one.
func closeOutput(c io.Closer, name string, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("close %s: %w", name, cerr)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
