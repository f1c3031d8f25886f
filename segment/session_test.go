package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/segfit/errs"
	"github.com/arloliu/segfit/numeric"
)

func TestNewSession(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		s, err := NewSession[float32, float64](numeric.Float64{}, 0.5)
		require.NoError(t, err)
		require.Equal(t, 0, s.Len())
		require.Zero(t, s.TotalCost())
		require.True(t, s.pruning)
	})

	t.Run("NilArithmetic", func(t *testing.T) {
		_, err := NewSession[float32, float64](nil, 0.5)
		require.ErrorIs(t, err, errs.ErrNilArithmetic)
	})

	t.Run("NilAbsoluteValue", func(t *testing.T) {
		_, err := NewSession[float32, float64](numeric.Float64{}, 0.5, WithAbsoluteValue[float64](nil))
		require.ErrorIs(t, err, errs.ErrNilAbsoluteValue)
	})

	t.Run("NegativeCost", func(t *testing.T) {
		_, err := NewSession[float32, float64](numeric.Float64{}, -1.0)
		require.ErrorIs(t, err, errs.ErrNegativeSegmentCost)
	})

	t.Run("Capacity", func(t *testing.T) {
		s, err := NewSession[float32, float64](numeric.Float64{}, 1.0, WithCapacity[float64](64))
		require.NoError(t, err)
		require.Equal(t, 65, cap(s.sumX))
		require.Equal(t, 64, cap(s.optimalIndexes))
	})
}

func TestSession_StreamingMatchesSolve(t *testing.T) {
	points := threeLinePoints()

	s, err := NewSession[float32, float64](numeric.Float64{}, 0.1)
	require.NoError(t, err)

	for k, p := range points {
		require.NoError(t, s.Add(p))
		require.Equal(t, k+1, s.Len())

		if k == 0 {
			continue
		}

		got, err := s.Result()
		require.NoError(t, err)

		want, err := SolveFloat64(points[:k+1], 0.1)
		require.NoError(t, err)
		require.Equal(t, want, got, "prefix of %d points", k+1)
		require.Equal(t, want.TotalCost, s.TotalCost())
	}
}

func TestSession_AddOutOfOrderKeepsState(t *testing.T) {
	s, err := NewSession[int, float64](numeric.Float64{}, 0.1)
	require.NoError(t, err)

	require.NoError(t, s.Add(Point[int]{X: 1, Y: 1}))
	require.NoError(t, s.Add(Point[int]{X: 2, Y: 3}))
	before, err := s.Result()
	require.NoError(t, err)

	err = s.Add(Point[int]{X: 2, Y: 10})
	require.ErrorIs(t, err, errs.ErrOutOfOrderPoints)
	require.Equal(t, 2, s.Len())

	after, err := s.Result()
	require.NoError(t, err)
	require.Equal(t, before, after)

	require.NoError(t, s.Add(Point[int]{X: 3, Y: 5}))
	require.Equal(t, 3, s.Len())
}

func TestSession_Result(t *testing.T) {
	s, err := NewSession[float64, float64](numeric.Float64{}, 1.0)
	require.NoError(t, err)

	_, err = s.Result()
	require.ErrorIs(t, err, errs.ErrEmptySession)

	require.NoError(t, s.Add(Point[float64]{X: 0, Y: 0}))
	_, err = s.Result()
	require.ErrorIs(t, err, errs.ErrInsufficientPoints)

	require.NoError(t, s.Add(Point[float64]{X: 1, Y: 2}))
	result, err := s.Result()
	require.NoError(t, err)
	require.Len(t, result.Segments, 1)
	assert.Equal(t, 2.0, result.Segments[0].Info.Slope)
	assert.Equal(t, 0.0, result.Segments[0].Info.Intercept)
	assert.Equal(t, 1.0, result.TotalCost)
}

func TestSession_CorruptBacktrack(t *testing.T) {
	s, err := NewSession[float64, float64](numeric.Float64{}, 1.0)
	require.NoError(t, err)
	for i := range 4 {
		require.NoError(t, s.Add(Point[float64]{X: float64(i), Y: float64(i * i)}))
	}

	s.optimalIndexes[3] = 5
	_, err = s.Result()
	require.ErrorIs(t, err, errs.ErrCorruptBacktrack)
}

func TestSession_Segment(t *testing.T) {
	s, err := NewSession[float32, float64](numeric.Float64{}, 0.1)
	require.NoError(t, err)
	for _, p := range threeLinePoints() {
		require.NoError(t, s.Add(p))
	}

	tests := []struct {
		name          string
		current, next int
		want          SegmentInfo[float64]
	}{
		{"Flat", 0, 2, SegmentInfo[float64]{Slope: 0, Intercept: 1, Error: 0}},
		{"Rising", 2, 6, SegmentInfo[float64]{Slope: 1, Intercept: -2, Error: 0}},
		{"Falling", 7, 11, SegmentInfo[float64]{Slope: -2, Intercept: 19, Error: 0}},
		{"SinglePoint", 4, 4, SegmentInfo[float64]{Slope: 0, Intercept: 3, Error: 0}},
		{"Mixed", 0, 5, SegmentInfo[float64]{Slope: 0.62857142857142856, Intercept: -0.19999999999999987, Error: 1.0857142857142859}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Segment(tt.current, tt.next)
			assert.InDelta(t, tt.want.Slope, got.Slope, testEpsilon)
			assert.InDelta(t, tt.want.Intercept, got.Intercept, testEpsilon)
			assert.InDelta(t, tt.want.Error, got.Error, testEpsilon)
			assert.GreaterOrEqual(t, got.Error, 0.0)
		})
	}

	t.Run("InvalidRange", func(t *testing.T) {
		assert.Panics(t, func() { s.Segment(3, 2) })
		assert.Panics(t, func() { s.Segment(-1, 2) })
		assert.Panics(t, func() { s.Segment(0, 12) })
	})
}
