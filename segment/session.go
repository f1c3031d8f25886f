package segment

import (
	"fmt"
	"slices"

	"github.com/arloliu/segfit/errs"
	"github.com/arloliu/segfit/internal/options"
	"github.com/arloliu/segfit/numeric"
)

// Session solves the segmentation problem online, one point at a time.
//
// After every Add the session holds the optimal cost of covering all points
// added so far, and Result can be called at any time to backtrack the current
// optimal segmentation. A Session is not safe for concurrent use.
type Session[C Coordinate, N any] struct {
	arith       numeric.Arithmetic[N]
	abs         func(N) N
	infinity    N
	pruning     bool
	segmentCost N

	// Running sums; index 0 holds zero and index i+1 includes point i.
	sumX  []N
	sumY  []N
	sumXX []N
	sumXY []N
	sumYY []N

	// optimals[k] is the minimum cost of covering the first k points.
	optimals []N
	// optimalIndexes[k] is the start of the last segment of the best
	// solution for points [0, k].
	optimalIndexes []int

	lastX C
}

// NewSession creates an empty session for the given segment cost.
//
// Parameters:
//   - arith: arithmetic of the number type N
//   - segmentCost: non-negative cost charged once per segment
//   - opts: solver options
//
// Returns:
//   - *Session[C, N]: the empty session
//   - error: errs.ErrNilArithmetic, errs.ErrNilAbsoluteValue,
//     errs.ErrNegativeSegmentCost or an option error
func NewSession[C Coordinate, N any](arith numeric.Arithmetic[N], segmentCost N, opts ...Option[N]) (*Session[C, N], error) {
	if arith == nil {
		return nil, errs.ErrNilArithmetic
	}

	cfg := defaultConfig[N]()
	if err := options.ApplyAndValidate(cfg, opts...); err != nil {
		return nil, err
	}

	if err := checkSegmentCost(arith, segmentCost); err != nil {
		return nil, err
	}

	return newSession[C](arith, segmentCost, cfg), nil
}

func newSession[C Coordinate, N any](arith numeric.Arithmetic[N], segmentCost N, cfg *config[N]) *Session[C, N] {
	s := &Session[C, N]{
		arith:       arith,
		abs:         arith.Abs,
		infinity:    arith.Inf(),
		pruning:     cfg.pruning,
		segmentCost: segmentCost,
	}
	if cfg.absSet {
		s.abs = cfg.abs
	}
	if cfg.hasInfinity {
		s.infinity = cfg.infinity
	}

	size := cfg.capacity + 1
	zero := arith.Zero()
	s.sumX = append(make([]N, 0, size), zero)
	s.sumY = append(make([]N, 0, size), zero)
	s.sumXX = append(make([]N, 0, size), zero)
	s.sumXY = append(make([]N, 0, size), zero)
	s.sumYY = append(make([]N, 0, size), zero)
	s.optimals = append(make([]N, 0, size), zero)
	s.optimalIndexes = make([]int, 0, cfg.capacity)

	return s
}

func checkSegmentCost[N any](arith numeric.Arithmetic[N], segmentCost N) error {
	if arith.Less(segmentCost, arith.Zero()) {
		return fmt.Errorf("%w: got %v", errs.ErrNegativeSegmentCost, segmentCost)
	}

	return nil
}

// Len returns the number of points added so far.
func (s *Session[C, N]) Len() int {
	return len(s.optimalIndexes)
}

// TotalCost returns the optimal cost of covering all points added so far.
func (s *Session[C, N]) TotalCost() N {
	return s.optimals[len(s.optimals)-1]
}

// Add appends a point and extends the optimal solution to cover it.
//
// The point's x-coordinate must be greater than the previous point's;
// otherwise Add returns an *errs.OutOfOrderError and the session is unchanged.
func (s *Session[C, N]) Add(p Point[C]) error {
	next := len(s.optimalIndexes)
	if next > 0 && p.X <= s.lastX {
		return &errs.OutOfOrderError{Index: next, X: p.X, Y: p.Y, PrevX: s.lastX}
	}
	s.lastX = p.X

	s.computeSums(p, next)

	best, minValue := s.findMinimum(next)
	s.optimalIndexes = append(s.optimalIndexes, best)
	s.optimals = append(s.optimals, s.arith.Add(minValue, s.segmentCost))

	return nil
}

// Segment returns the least-squares line and squared error of the inclusive
// range [current, next]. It requires 0 <= current <= next < Len().
func (s *Session[C, N]) Segment(current, next int) SegmentInfo[N] {
	if current < 0 || current > next || next >= s.Len() {
		panic(fmt.Sprintf("segment: invalid range [%d, %d] for %d points", current, next, s.Len()))
	}

	return s.segment(current, next)
}

// Result backtracks the optimal segmentation of all points added so far.
//
// Returns:
//   - *Result[N]: the segmentation, ordered left to right
//   - error: errs.ErrEmptySession, errs.ErrInsufficientPoints or
//     errs.ErrCorruptBacktrack
func (s *Session[C, N]) Result() (*Result[N], error) {
	n := s.Len()
	if n == 0 {
		return nil, errs.ErrEmptySession
	}
	if n < minPoints {
		return nil, fmt.Errorf("%w: got %d", errs.ErrInsufficientPoints, n)
	}

	segments, err := s.restore()
	if err != nil {
		return nil, err
	}

	return &Result[N]{TotalCost: s.TotalCost(), Segments: segments}, nil
}

func (s *Session[C, N]) computeSums(p Point[C], i int) {
	ar := s.arith
	x := ar.FromFloat64(float64(p.X))
	y := ar.FromFloat64(float64(p.Y))

	s.sumX = append(s.sumX, ar.Add(s.sumX[i], x))
	s.sumY = append(s.sumY, ar.Add(s.sumY[i], y))
	s.sumXX = append(s.sumXX, ar.Add(s.sumXX[i], ar.Mul(x, x)))
	s.sumXY = append(s.sumXY, ar.Add(s.sumXY[i], ar.Mul(x, y)))
	s.sumYY = append(s.sumYY, ar.Add(s.sumYY[i], ar.Mul(y, y)))
}

func (s *Session[C, N]) segment(current, next int) SegmentInfo[N] {
	ar := s.arith
	foll := next + 1

	sumX := ar.Sub(s.sumX[foll], s.sumX[current])
	sumY := ar.Sub(s.sumY[foll], s.sumY[current])
	sumXX := ar.Sub(s.sumXX[foll], s.sumXX[current])
	sumXY := ar.Sub(s.sumXY[foll], s.sumXY[current])
	sumYY := ar.Sub(s.sumYY[foll], s.sumYY[current])

	length := ar.FromInt(foll - current)

	var slope N
	numerator := ar.Sub(ar.Mul(length, sumXY), ar.Mul(sumX, sumY))
	if ar.IsZero(numerator) {
		slope = ar.Zero()
	} else {
		denominator := ar.Sub(ar.Mul(length, sumXX), ar.Mul(sumX, sumX))
		if ar.IsZero(denominator) {
			slope = s.infinity
		} else {
			slope = ar.Div(numerator, denominator)
		}
	}

	interceptNumerator := ar.Sub(sumY, ar.Mul(slope, sumX))
	intercept := ar.Div(interceptNumerator, length)

	// Sum over the range of (slope*x + intercept - y)², expanded:
	// a²·Σx² + b·(Σy - a·Σx) + Σy² + 2·(a·(b·Σx - Σxy) - b·Σy)
	raw := ar.Add(
		ar.Add(
			ar.Add(
				ar.Mul(ar.Mul(slope, slope), sumXX),
				ar.Mul(intercept, interceptNumerator)),
			sumYY),
		ar.Mul(ar.FromInt(2),
			ar.Sub(
				ar.Mul(slope, ar.Sub(ar.Mul(intercept, sumX), sumXY)),
				ar.Mul(intercept, sumY))))

	// Rounding can leave a tiny negative value.
	return SegmentInfo[N]{Slope: slope, Intercept: intercept, Error: s.abs(raw)}
}

// findMinimum returns the start of the best last segment ending at next and
// the cost of that solution without the segment cost.
func (s *Session[C, N]) findMinimum(next int) (int, N) {
	ar := s.arith

	best := 0
	minValue := s.segment(0, next).Error

	for current := 1; current <= next; current++ {
		// Errors are non-negative: a prefix already at the minimum cannot win.
		if s.pruning && !ar.Less(s.optimals[current], minValue) {
			continue
		}

		value := ar.Add(s.segment(current, next).Error, s.optimals[current])
		if ar.Less(value, minValue) {
			best = current
			minValue = value
		}
	}

	return best, minValue
}

func (s *Session[C, N]) restore() ([]SegmentResult[N], error) {
	next := s.Len() - 1
	current := s.optimalIndexes[next]

	var segments []SegmentResult[N]
	for {
		if current < 0 || current > next {
			return nil, fmt.Errorf("%w: segment start %d after end %d", errs.ErrCorruptBacktrack, current, next)
		}

		segments = append(segments, SegmentResult[N]{
			Info:  s.segment(current, next),
			First: current,
			Last:  next,
		})

		if current == 0 {
			break
		}

		next = current - 1
		current = s.optimalIndexes[next]
	}

	slices.Reverse(segments)

	return segments, nil
}
