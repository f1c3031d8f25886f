package regression

import (
	"fmt"
	"slices"
	"strings"
)

// Estimator predicts y for a given x.
type Estimator interface {
	Estimate(x float64) float64
}

// Line is a straight line y = Intercept + Slope*x.
type Line struct {
	Slope     float64
	Intercept float64
}

var (
	_ Estimator = Line{}
	_ Estimator = (*Piecewise)(nil)
)

// Estimate returns the value of the line at x.
func (l Line) Estimate(x float64) float64 {
	return l.Intercept + l.Slope*x
}

// String returns the line formula.
func (l Line) String() string {
	return fmt.Sprintf("y = %.4f + %.4f*x", l.Intercept, l.Slope)
}

// Stats holds goodness-of-fit metrics.
type Stats struct {
	// RSquared is the coefficient of determination.
	RSquared float64
	// RMSE is the root mean square error.
	RMSE float64
	// Points is the number of points the metrics were computed over.
	Points int
}

// String returns a string representation of the statistics.
func (s Stats) String() string {
	return fmt.Sprintf("R²: %.4f, RMSE: %.4f, Points: %d", s.RSquared, s.RMSE, s.Points)
}

// SegmentStats holds the line and statistics of one segment.
type SegmentStats struct {
	Line  Line
	Stats Stats
	First int
	Last  int
}

// Summary describes how well a segmentation fits its points.
//
// Fields:
//   - Segments: Per-segment lines and statistics, left to right
//   - Overall: Statistics of the whole piecewise fit
//   - Baseline: Statistics of a single least-squares line through all points
type Summary struct {
	Segments []SegmentStats
	Overall  Stats
	Baseline Stats
}

// String returns a multi-line representation of the summary.
func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Summary{Segments: %d, Overall: {%s}, Baseline: {%s}}", len(s.Segments), s.Overall, s.Baseline)
	for _, seg := range s.Segments {
		fmt.Fprintf(&sb, "\n  [%d, %d] %s (%s)", seg.First, seg.Last, seg.Line, seg.Stats)
	}

	return sb.String()
}

// Piecewise is a piecewise-linear function.
//
// Segment i covers x from Starts[i] up to, but excluding, Starts[i+1]. Values
// before the first start use the first line and values after the last start
// use the last line.
type Piecewise struct {
	Starts []float64
	Lines  []Line
}

// Estimate returns the value of the piecewise function at x.
func (p *Piecewise) Estimate(x float64) float64 {
	return p.Lines[p.index(x)].Estimate(x)
}

// index returns the segment covering x.
func (p *Piecewise) index(x float64) int {
	i, found := slices.BinarySearch(p.Starts, x)
	if found {
		return i
	}
	if i == 0 {
		return 0
	}

	return i - 1
}
