package segment

import (
	"fmt"

	"github.com/arloliu/segfit/errs"
	"github.com/arloliu/segfit/internal/options"
	"github.com/arloliu/segfit/numeric"
)

const minPoints = 2

// Solve finds the segmentation of points that minimizes the sum of segment
// squared errors plus segmentCost per segment.
//
// Inputs are validated in this order: the absolute value function must be
// present, at least two points are required, segmentCost must be
// non-negative, and x-coordinates must be strictly increasing. On failure no
// result is returned.
//
// Parameters:
//   - arith: arithmetic of the number type N
//   - points: input points sorted by strictly increasing x; not modified
//   - segmentCost: non-negative cost charged once per segment
//   - opts: solver options
//
// Returns:
//   - *Result[N]: total cost and segments ordered left to right
//   - error: errs.ErrNilAbsoluteValue, errs.ErrInsufficientPoints,
//     errs.ErrNegativeSegmentCost or *errs.OutOfOrderError
func Solve[C Coordinate, N any](arith numeric.Arithmetic[N], points []Point[C], segmentCost N, opts ...Option[N]) (*Result[N], error) {
	if arith == nil {
		return nil, errs.ErrNilArithmetic
	}

	cfg := defaultConfig[N]()
	cfg.capacity = len(points)
	if err := options.ApplyAndValidate(cfg, opts...); err != nil {
		return nil, err
	}

	if len(points) < minPoints {
		return nil, fmt.Errorf("%w: got %d", errs.ErrInsufficientPoints, len(points))
	}

	if err := checkSegmentCost(arith, segmentCost); err != nil {
		return nil, err
	}

	s := newSession[C](arith, segmentCost, cfg)
	for _, p := range points {
		if err := s.Add(p); err != nil {
			return nil, err
		}
	}

	return s.Result()
}

// SolveFloat64 is Solve with float64 sums and costs.
func SolveFloat64[C Coordinate](points []Point[C], segmentCost float64, opts ...Option[float64]) (*Result[float64], error) {
	return Solve(numeric.Float64{}, points, segmentCost, opts...)
}
