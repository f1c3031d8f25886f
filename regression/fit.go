package regression

import (
	"math"

	"github.com/arloliu/segfit/segment"
)

// FitLine fits y = a + b*x by ordinary least squares.
//
// Parameters:
//   - x: Independent values
//   - y: Dependent values, same length as x
//
// Returns:
//   - Line: The fitted line; the zero line for empty input, a flat line when
//     all x are equal
//   - Stats: R² and RMSE of the fit
func FitLine(x, y []float64) (Line, Stats) {
	n := len(x)
	if n == 0 {
		return Line{}, Stats{}
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i := 0; i < n; i++ {
		xi := x[i]
		yi := y[i]
		sumX += xi
		sumY += yi
		sumXY += xi * yi
		sumX2 += xi * xi
	}

	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var b float64
	if denom := sumX2 - float64(n)*meanX*meanX; denom != 0 {
		b = (sumXY - float64(n)*meanX*meanY) / denom
	}
	a := meanY - b*meanX

	line := Line{Slope: b, Intercept: a}

	return line, lineStats(line, x, y)
}

// NewPiecewise builds the piecewise function of a segmentation of points.
func NewPiecewise[C segment.Coordinate](points []segment.Point[C], result *segment.Result[float64]) (*Piecewise, error) {
	if err := result.Validate(len(points)); err != nil {
		return nil, err
	}

	p := &Piecewise{
		Starts: make([]float64, len(result.Segments)),
		Lines:  make([]Line, len(result.Segments)),
	}
	for i, s := range result.Segments {
		p.Starts[i] = float64(points[s.First].X)
		p.Lines[i] = Line{Slope: s.Info.Slope, Intercept: s.Info.Intercept}
	}

	return p, nil
}

// Summarize computes goodness-of-fit statistics of a segmentation.
//
// Parameters:
//   - points: The points that were segmented
//   - result: The segmentation of points
//
// Returns:
//   - *Summary: Per-segment, overall and baseline statistics
//   - error: errs.ErrNonContiguousSegments if result does not cover points
func Summarize[C segment.Coordinate](points []segment.Point[C], result *segment.Result[float64]) (*Summary, error) {
	if err := result.Validate(len(points)); err != nil {
		return nil, err
	}

	x := make([]float64, len(points))
	y := make([]float64, len(points))
	for i, p := range points {
		x[i] = float64(p.X)
		y[i] = float64(p.Y)
	}

	summary := &Summary{Segments: make([]SegmentStats, 0, len(result.Segments))}
	predicted := make([]float64, len(points))

	for _, s := range result.Segments {
		line := Line{Slope: s.Info.Slope, Intercept: s.Info.Intercept}
		for i := s.First; i <= s.Last; i++ {
			predicted[i] = line.Estimate(x[i])
		}

		summary.Segments = append(summary.Segments, SegmentStats{
			Line:  line,
			Stats: newStats(y[s.First:s.Last+1], predicted[s.First:s.Last+1]),
			First: s.First,
			Last:  s.Last,
		})
	}

	summary.Overall = newStats(y, predicted)
	_, summary.Baseline = FitLine(x, y)

	return summary, nil
}

func lineStats(line Line, x, y []float64) Stats {
	predicted := make([]float64, len(x))
	for i := range x {
		predicted[i] = line.Estimate(x[i])
	}

	return newStats(y, predicted)
}

func newStats(observed, predicted []float64) Stats {
	return Stats{
		RSquared: calculateRSquared(observed, predicted),
		RMSE:     calculateRMSE(observed, predicted),
		Points:   len(observed),
	}
}

// calculateRSquared calculates the coefficient of determination (R²).
func calculateRSquared(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	mean := calculateMean(observed)
	ssTot := 0.0 // Total sum of squares
	ssRes := 0.0 // Residual sum of squares

	for i := range observed {
		ssTot += (observed[i] - mean) * (observed[i] - mean)
		ssRes += (observed[i] - predicted[i]) * (observed[i] - predicted[i])
	}

	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}

		return 0
	}

	return 1.0 - (ssRes / ssTot)
}

// calculateRMSE calculates the root mean square error.
func calculateRMSE(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	sumSq := 0.0
	for i := range observed {
		diff := observed[i] - predicted[i]
		sumSq += diff * diff
	}

	return math.Sqrt(sumSq / float64(len(observed)))
}

// calculateMean calculates the arithmetic mean of values.
func calculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
