package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arloliu/segfit/blob"
)

func newDecodeCmd(a *app) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Print the segments stored in a segment blob",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			return a.runDecode(path, outputFormat)
		},
	}

	cmd.Flags().StringVar(&outputFormat, "format", "text", "output format: text or json")

	return cmd
}

func (a *app) runDecode(path, outputFormat string) error {
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("unknown output format %q", outputFormat)
	}

	in, err := a.openInput(path)
	if err != nil {
		return err
	}
	defer in.Close()

	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	b, err := blob.DecodeSegments(data)
	if err != nil {
		return fmt.Errorf("decode blob: %w", err)
	}
	a.logger.Debug("decoded blob", "bytes", len(data), "segments", b.SegmentCount(),
		"boundary_encoding", b.BoundaryEncoding(), "coefficient_encoding", b.CoefficientEncoding())

	result := newFitOutput("", b.Fit(), nil)
	if outputFormat == "json" {
		return writeJSON(a.stdout, result)
	}

	return writeText(a.stdout, result)
}
