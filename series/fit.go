package series

import (
	"fmt"
	"time"

	"github.com/bits-and-blooms/bitset"

	"github.com/arloliu/segfit/errs"
	"github.com/arloliu/segfit/regression"
	"github.com/arloliu/segfit/segment"
)

// Fit is a piecewise-linear approximation of a series.
type Fit struct {
	SeriesID uint64
	// Origin is the timestamp, in microseconds, mapped to x = 0.
	Origin int64
	// Unit is the duration of one unit on the x axis.
	Unit time.Duration
	// Starts holds the timestamp of the first point of every segment.
	Starts []int64
	// End is the timestamp of the last fitted point.
	End int64
	// Result is the segmentation in x-axis units.
	Result *segment.Result[float64]
	// Breakpoints has bit i set when a segment starts at point i.
	Breakpoints *bitset.BitSet

	piecewise *regression.Piecewise
}

// NewFit assembles a Fit from its parts and checks that they agree.
//
// Parameters:
//   - seriesID: Identifier of the fitted series
//   - originUs: Timestamp mapped to x = 0
//   - unit: Duration of one x unit
//   - starts: Timestamp of the first point of every segment, strictly increasing
//   - endUs: Timestamp of the last point, not before the last start
//   - result: Segmentation of the points
//
// Returns:
//   - *Fit: The assembled fit
//   - error: errs.ErrInvalidTimeUnit, errs.ErrNonContiguousSegments or
//     errs.ErrInvalidPayload
func NewFit(seriesID uint64, originUs int64, unit time.Duration, starts []int64, endUs int64, result *segment.Result[float64]) (*Fit, error) {
	if unit <= 0 {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidTimeUnit, unit)
	}

	if result == nil || len(result.Segments) == 0 {
		return nil, fmt.Errorf("%w: no segments", errs.ErrNonContiguousSegments)
	}

	n := result.Segments[len(result.Segments)-1].Last + 1
	if err := result.Validate(n); err != nil {
		return nil, err
	}

	if len(starts) != len(result.Segments) {
		return nil, fmt.Errorf("%w: %d start timestamps for %d segments", errs.ErrInvalidPayload, len(starts), len(result.Segments))
	}
	for i := 1; i < len(starts); i++ {
		if starts[i] <= starts[i-1] {
			return nil, fmt.Errorf("%w: segment %d starts at %d, not after %d", errs.ErrInvalidPayload, i, starts[i], starts[i-1])
		}
	}
	if endUs < starts[len(starts)-1] {
		return nil, fmt.Errorf("%w: end %d before last segment start %d", errs.ErrInvalidPayload, endUs, starts[len(starts)-1])
	}

	// Timestamps are distinct integer microseconds, so a segment cannot hold
	// more points than its time span.
	for i, seg := range result.Segments {
		span := uint64(endUs) - uint64(starts[i]) + 1 //nolint:gosec
		if i+1 < len(starts) {
			span = uint64(starts[i+1]) - uint64(starts[i]) //nolint:gosec
		}
		if count := uint64(seg.Len()); count > span { //nolint:gosec
			return nil, fmt.Errorf("%w: segment %d holds %d points within %d µs", errs.ErrInvalidPayload, i, count, span)
		}
	}

	f := &Fit{
		SeriesID:    seriesID,
		Origin:      originUs,
		Unit:        unit,
		Starts:      starts,
		End:         endUs,
		Result:      result,
		Breakpoints: bitset.New(uint(n)),
		piecewise: &regression.Piecewise{
			Starts: make([]float64, len(starts)),
			Lines:  make([]regression.Line, len(starts)),
		},
	}

	for i, s := range result.Segments {
		f.Breakpoints.Set(uint(s.First))
		f.piecewise.Starts[i] = f.x(starts[i])
		f.piecewise.Lines[i] = regression.Line{Slope: s.Info.Slope, Intercept: s.Info.Intercept}
	}

	return f, nil
}

// Len returns the number of fitted points.
func (f *Fit) Len() int {
	return f.Result.Segments[len(f.Result.Segments)-1].Last + 1
}

// SegmentCount returns the number of segments.
func (f *Fit) SegmentCount() int {
	return len(f.Result.Segments)
}

// At evaluates the approximation at a timestamp in microseconds.
//
// The timestamp must lie within [Starts[0], End]; a timestamp between two
// fitted points uses the line of the segment containing the earlier one.
func (f *Fit) At(tsUs int64) (float64, error) {
	if tsUs < f.Starts[0] || tsUs > f.End {
		return 0, fmt.Errorf("%w: %d not in [%d, %d]", errs.ErrTimestampOutOfRange, tsUs, f.Starts[0], f.End)
	}

	return f.piecewise.Estimate(f.x(tsUs)), nil
}

// Reconstruct evaluates the approximation at every timestamp.
func (f *Fit) Reconstruct(timestamps []int64) ([]float64, error) {
	values := make([]float64, len(timestamps))
	for i, ts := range timestamps {
		v, err := f.At(ts)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	return values, nil
}

// Summarize reports how well the fit approximates s, which must be the
// fitted series.
func (f *Fit) Summarize(s Series) (*regression.Summary, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return regression.Summarize(s.Points(f.Origin, f.Unit), f.Result)
}

func (f *Fit) x(tsUs int64) float64 {
	return toX(tsUs, f.Origin, f.Unit)
}
