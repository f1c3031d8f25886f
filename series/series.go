package series

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/segfit/errs"
	"github.com/arloliu/segfit/internal/collision"
	"github.com/arloliu/segfit/internal/hash"
	"github.com/arloliu/segfit/internal/options"
	"github.com/arloliu/segfit/segment"
)

// Series is a named sequence of timestamped values.
type Series struct {
	Name string
	// Timestamps are microseconds since the Unix epoch, strictly increasing.
	Timestamps []int64
	Values     []float64
}

// ID returns the series identifier, the xxHash64 of its name.
func (s Series) ID() uint64 {
	return hash.ID(s.Name)
}

// Len returns the number of points in the series.
func (s Series) Len() int {
	return len(s.Timestamps)
}

// Validate checks that timestamps and values line up and that timestamps are
// strictly increasing.
func (s Series) Validate() error {
	if len(s.Timestamps) != len(s.Values) {
		return fmt.Errorf("%w: series %q has %d timestamps and %d values",
			errs.ErrLengthMismatch, s.Name, len(s.Timestamps), len(s.Values))
	}

	for i := 1; i < len(s.Timestamps); i++ {
		if s.Timestamps[i] <= s.Timestamps[i-1] {
			return fmt.Errorf("series %q: %w", s.Name, &errs.OutOfOrderError{
				Index: i,
				X:     s.Timestamps[i],
				Y:     s.Values[i],
				PrevX: s.Timestamps[i-1],
			})
		}
	}

	return nil
}

// Points maps the series onto the x axis defined by origin and unit.
func (s Series) Points(originUs int64, unit time.Duration) []segment.Point[float64] {
	points := make([]segment.Point[float64], len(s.Timestamps))
	for i, ts := range s.Timestamps {
		points[i] = segment.Point[float64]{X: toX(ts, originUs, unit), Y: s.Values[i]}
	}

	return points
}

// Fit computes the optimal piecewise-linear approximation of the series.
//
// Parameters:
//   - segmentCost: Non-negative cost charged once per segment, in squared value units
//   - opts: Fit options
//
// Returns:
//   - *Fit: The approximation
//   - error: Validation or solver error, wrapped with the series name
func (s Series) Fit(segmentCost float64, opts ...Option) (*Fit, error) {
	cfg := defaultConfig()
	if err := options.ApplyAndValidate(cfg, opts...); err != nil {
		return nil, err
	}

	return s.fit(segmentCost, cfg)
}

func (s Series) fit(segmentCost float64, cfg *config) (*Fit, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	origin := cfg.origin
	if !cfg.hasOrigin && len(s.Timestamps) > 0 {
		origin = s.Timestamps[0]
	}

	result, err := segment.SolveFloat64(s.Points(origin, cfg.unit), segmentCost, cfg.solverOpts...)
	if err != nil {
		return nil, fmt.Errorf("series %q: %w", s.Name, err)
	}

	starts := make([]int64, len(result.Segments))
	for i, seg := range result.Segments {
		starts[i] = s.Timestamps[seg.First]
	}

	return NewFit(s.ID(), origin, cfg.unit, starts, s.Timestamps[len(s.Timestamps)-1], result)
}

// FitAll fits every series with the same segment cost.
//
// Series names must be non-empty and distinct, with distinct IDs. Series
// are fitted in parallel, at most WithConcurrency at a time, and the
// returned fits are index-aligned with series. The first failure cancels the
// remaining work.
func FitAll(ctx context.Context, series []Series, segmentCost float64, opts ...Option) ([]*Fit, error) {
	cfg := defaultConfig()
	if err := options.ApplyAndValidate(cfg, opts...); err != nil {
		return nil, err
	}

	tracker := collision.NewTracker(hash.ID, len(series))
	for _, s := range series {
		if _, err := tracker.Track(s.Name); err != nil {
			return nil, err
		}
	}

	fits := make([]*Fit, len(series))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)

	for i, s := range series {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			fit, err := s.fit(segmentCost, cfg)
			if err != nil {
				return err
			}
			fits[i] = fit

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return fits, nil
}

func toX(ts, originUs int64, unit time.Duration) float64 {
	return float64(ts-originUs) / (float64(unit) / float64(time.Microsecond))
}
