package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/arloliu/segfit/regression"
	"github.com/arloliu/segfit/series"
)

type segmentOutput struct {
	Start     int64   `json:"start"`
	First     int     `json:"first"`
	Last      int     `json:"last"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	Error     float64 `json:"error"`
}

type fitOutput struct {
	Series    string          `json:"series,omitempty"`
	SeriesID  string          `json:"series_id"`
	Origin    int64           `json:"origin"`
	Unit      string          `json:"unit"`
	Points    int             `json:"points"`
	TotalCost float64         `json:"total_cost"`
	Segments  []segmentOutput `json:"segments"`
	RSquared  *float64        `json:"r_squared,omitempty"`
	RMSE      *float64        `json:"rmse,omitempty"`
}

func newFitOutput(name string, fit *series.Fit, summary *regression.Summary) fitOutput {
	out := fitOutput{
		Series:    name,
		SeriesID:  fmt.Sprintf("%016x", fit.SeriesID),
		Origin:    fit.Origin,
		Unit:      fit.Unit.String(),
		Points:    fit.Len(),
		TotalCost: fit.Result.TotalCost,
		Segments:  make([]segmentOutput, fit.SegmentCount()),
	}

	for i, s := range fit.Result.Segments {
		out.Segments[i] = segmentOutput{
			Start:     fit.Starts[i],
			First:     s.First,
			Last:      s.Last,
			Slope:     s.Info.Slope,
			Intercept: s.Info.Intercept,
			Error:     s.Info.Error,
		}
	}

	if summary != nil {
		out.RSquared = &summary.Overall.RSquared
		out.RMSE = &summary.Overall.RMSE
	}

	return out
}

func writeJSON(w io.Writer, out fitOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

func writeText(w io.Writer, out fitOutput) error {
	header := fmt.Sprintf("series %s: %d segments over %d points, total cost %g\n", out.SeriesID, len(out.Segments), out.Points, out.TotalCost)
	if out.Series != "" {
		header = fmt.Sprintf("series %s (%s): %d segments over %d points, total cost %g\n", out.Series, out.SeriesID, len(out.Segments), out.Points, out.TotalCost)
	}
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tstart\tpoints\tslope\tintercept\terror")
	for i, s := range out.Segments {
		fmt.Fprintf(tw, "%d\t%d\t%d-%d\t%g\t%g\t%g\n", i, s.Start, s.First, s.Last, s.Slope, s.Intercept, s.Error)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if out.RSquared != nil {
		_, err := fmt.Fprintf(w, "r_squared %.4f rmse %.4f\n", *out.RSquared, *out.RMSE)
		return err
	}

	return nil
}
