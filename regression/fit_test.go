package regression

import (
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/segfit/errs"
	"github.com/arloliu/segfit/segment"
)

func threeLines() []segment.Point[float64] {
	return []segment.Point[float64]{
		{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1},
		{X: 4, Y: 2}, {X: 5, Y: 3}, {X: 6, Y: 4}, {X: 7, Y: 5},
		{X: 8, Y: 3}, {X: 9, Y: 1}, {X: 10, Y: -1}, {X: 11, Y: -3}, {X: 12, Y: -5},
	}
}

func TestFitLine(t *testing.T) {
	t.Run("ExactLine", func(t *testing.T) {
		x := []float64{1, 2, 3, 4, 5}
		y := []float64{5, 7, 9, 11, 13}

		line, stats := FitLine(x, y)
		assert.InDelta(t, 2.0, line.Slope, 1e-12)
		assert.InDelta(t, 3.0, line.Intercept, 1e-12)
		assert.InDelta(t, 1.0, stats.RSquared, 1e-12)
		assert.InDelta(t, 0.0, stats.RMSE, 1e-12)
		assert.Equal(t, 5, stats.Points)
		assert.InDelta(t, 23.0, line.Estimate(10), 1e-12)
	})

	t.Run("Empty", func(t *testing.T) {
		line, stats := FitLine(nil, nil)
		assert.Equal(t, Line{}, line)
		assert.Equal(t, Stats{}, stats)
	})

	t.Run("SameX", func(t *testing.T) {
		line, stats := FitLine([]float64{2, 2, 2}, []float64{1, 2, 3})
		assert.Zero(t, line.Slope)
		assert.InDelta(t, 2.0, line.Intercept, 1e-12)
		assert.Zero(t, stats.RSquared)
	})

	t.Run("MatchesGonum", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(1, 2))
		x := make([]float64, 100)
		y := make([]float64, 100)
		for i := range x {
			x[i] = float64(i) + rng.Float64()
			y[i] = 0.7*x[i] - 4 + rng.NormFloat64()
		}

		line, stats := FitLine(x, y)
		alpha, beta := stat.LinearRegression(x, y, nil, false)
		assert.InDelta(t, beta, line.Slope, 1e-9)
		assert.InDelta(t, alpha, line.Intercept, 1e-9)

		predicted := make([]float64, len(x))
		for i := range x {
			predicted[i] = line.Estimate(x[i])
		}
		assert.InDelta(t, stat.RSquaredFrom(predicted, y, nil), stats.RSquared, 1e-9)
	})
}

func TestSummarize(t *testing.T) {
	points := threeLines()
	result, err := segment.SolveFloat64(points, 0.1)
	require.NoError(t, err)

	summary, err := Summarize(points, result)
	require.NoError(t, err)
	require.Len(t, summary.Segments, 3)

	for _, s := range summary.Segments {
		assert.InDelta(t, 1.0, s.Stats.RSquared, 1e-12, "segment [%d, %d]", s.First, s.Last)
		assert.InDelta(t, 0.0, s.Stats.RMSE, 1e-12)
	}
	assert.Equal(t, 2, summary.Segments[0].Stats.Points)
	assert.Equal(t, 4, summary.Segments[1].Stats.Points)
	assert.Equal(t, 6, summary.Segments[2].Stats.Points)

	assert.InDelta(t, 1.0, summary.Overall.RSquared, 1e-12)
	assert.Equal(t, len(points), summary.Overall.Points)
	assert.Less(t, summary.Baseline.RSquared, summary.Overall.RSquared)
	assert.Greater(t, summary.Baseline.RMSE, 1.0)

	str := summary.String()
	assert.True(t, strings.HasPrefix(str, "Summary{Segments: 3"))
	assert.Contains(t, str, "[6, 11] y = 19.0000 + -2.0000*x")
}

func TestSummarize_OneSegment(t *testing.T) {
	points := threeLines()
	result, err := segment.SolveFloat64(points, 500)
	require.NoError(t, err)

	summary, err := Summarize(points, result)
	require.NoError(t, err)
	require.Len(t, summary.Segments, 1)

	// A single optimal segment is the least-squares line of all points.
	assert.InDelta(t, summary.Baseline.RSquared, summary.Overall.RSquared, 1e-9)
	assert.InDelta(t, summary.Baseline.RMSE, summary.Overall.RMSE, 1e-9)
	assert.InDelta(t, math.Sqrt(result.Segments[0].Info.Error/float64(len(points))), summary.Overall.RMSE, 1e-9)
}

func TestSummarize_Coverage(t *testing.T) {
	points := threeLines()
	info := segment.SegmentInfo[float64]{}

	tests := []struct {
		name   string
		result *segment.Result[float64]
	}{
		{"Nil", nil},
		{"Empty", &segment.Result[float64]{}},
		{"Gap", &segment.Result[float64]{Segments: []segment.SegmentResult[float64]{
			{Info: info, First: 0, Last: 3}, {Info: info, First: 5, Last: 11},
		}}},
		{"Short", &segment.Result[float64]{Segments: []segment.SegmentResult[float64]{
			{Info: info, First: 0, Last: 10},
		}}},
		{"Reversed", &segment.Result[float64]{Segments: []segment.SegmentResult[float64]{
			{Info: info, First: 0, Last: -1},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Summarize(points, tt.result)
			require.ErrorIs(t, err, errs.ErrNonContiguousSegments)

			_, err = NewPiecewise(points, tt.result)
			require.ErrorIs(t, err, errs.ErrNonContiguousSegments)
		})
	}
}

func TestPiecewise(t *testing.T) {
	points := threeLines()
	result, err := segment.SolveFloat64(points, 0.1)
	require.NoError(t, err)

	p, err := NewPiecewise(points, result)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 3, 7}, p.Starts)

	tests := []struct {
		x, want float64
	}{
		{0, 1},
		{1, 1},
		{2.5, 1},
		{3, 1},
		{4, 2},
		{6.5, 4.5},
		{7, 5},
		{12, -5},
		{13, -7},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, p.Estimate(tt.x), 1e-9, "x=%v", tt.x)
	}

	for _, pt := range points {
		assert.InDelta(t, pt.Y, p.Estimate(pt.X), 1e-9)
	}
}

func TestCalculateRSquared(t *testing.T) {
	assert.Zero(t, calculateRSquared(nil, nil))
	assert.Equal(t, 1.0, calculateRSquared([]float64{2, 2}, []float64{2, 2}))
	assert.Zero(t, calculateRSquared([]float64{2, 2}, []float64{1, 3}))
	assert.InDelta(t, 0.75, calculateRSquared([]float64{0, 2}, []float64{0.5, 1.5}), 1e-12)
}

func TestCalculateRMSE(t *testing.T) {
	assert.Zero(t, calculateRMSE(nil, nil))
	assert.InDelta(t, 1.0, calculateRMSE([]float64{1, 2}, []float64{0, 3}), 1e-12)
	assert.InDelta(t, 2.0, calculateMean([]float64{1, 2, 3}), 1e-12)
	assert.Zero(t, calculateMean(nil))
}
