package segment

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/arloliu/segfit/errs"
	"github.com/arloliu/segfit/numeric"
)

// Coordinate is the set of types accepted as point coordinates.
type Coordinate interface {
	constraints.Integer | constraints.Float
}

// Point is an input point.
type Point[C Coordinate] struct {
	X C
	Y C
}

// String returns the point as "(x, y)".
func (p Point[C]) String() string {
	return fmt.Sprintf("(%v, %v)", p.X, p.Y)
}

// SegmentInfo is the least-squares line of a range of points.
type SegmentInfo[N any] struct {
	Slope N
	// Intercept is the value of the line at x = 0.
	Intercept N
	// Error is the sum of squared residuals of the range.
	Error N
}

// String returns a human-readable representation of the segment line.
func (s SegmentInfo[N]) String() string {
	return fmt.Sprintf("Slope=%v, Intercept=%v, Error=%v", s.Slope, s.Intercept, s.Error)
}

// SegmentResult is one piece of the solution.
//
// First and Last are inclusive indexes into the input points.
type SegmentResult[N any] struct {
	Info  SegmentInfo[N]
	First int
	Last  int
}

// Len returns the number of points covered by the segment.
func (s SegmentResult[N]) Len() int {
	return s.Last - s.First + 1
}

// String returns a human-readable representation of the segment.
func (s SegmentResult[N]) String() string {
	return fmt.Sprintf("%s, Points=(%d, %d)", s.Info, s.First, s.Last)
}

// Result is the optimal segmentation of a point sequence.
//
// Segments are ordered left to right and cover every input point exactly once.
type Result[N any] struct {
	// TotalCost is the sum of segment errors plus the segment cost charged once
	// per segment.
	TotalCost N
	Segments  []SegmentResult[N]
}

// String returns a human-readable, multi-line representation of the result.
func (r *Result[N]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "TotalCost=%v, Segments=%d", r.TotalCost, len(r.Segments))
	for _, s := range r.Segments {
		sb.WriteString("\n  ")
		sb.WriteString(s.String())
	}

	return sb.String()
}

// Equal reports whether r and other have the same segment boundaries and
// whether their costs, slopes, intercepts and errors compare equal with cmp.
func (r *Result[N]) Equal(other *Result[N], cmp numeric.Comparer[N]) bool {
	if r == nil || other == nil {
		return r == other
	}

	if !cmp.Equal(r.TotalCost, other.TotalCost) || len(r.Segments) != len(other.Segments) {
		return false
	}

	for i, a := range r.Segments {
		b := other.Segments[i]
		if a.First != b.First || a.Last != b.Last {
			return false
		}

		if !cmp.Equal(a.Info.Slope, b.Info.Slope) ||
			!cmp.Equal(a.Info.Intercept, b.Info.Intercept) ||
			!cmp.Equal(a.Info.Error, b.Info.Error) {
			return false
		}
	}

	return true
}

// Breakpoints returns the index of the first point of every segment.
func (r *Result[N]) Breakpoints() []int {
	starts := make([]int, len(r.Segments))
	for i, s := range r.Segments {
		starts[i] = s.First
	}

	return starts
}

// Validate checks that the segments cover the point indexes [0, n) in order,
// without gaps or overlaps.
func (r *Result[N]) Validate(n int) error {
	if r == nil || len(r.Segments) == 0 {
		return fmt.Errorf("%w: no segments", errs.ErrNonContiguousSegments)
	}

	next := 0
	for i, s := range r.Segments {
		if s.First != next || s.Last < s.First {
			return fmt.Errorf("%w: segment %d covers [%d, %d], expected start %d",
				errs.ErrNonContiguousSegments, i, s.First, s.Last, next)
		}
		next = s.Last + 1
	}

	if next != n {
		return fmt.Errorf("%w: segments cover %d of %d points", errs.ErrNonContiguousSegments, next, n)
	}

	return nil
}
