package series

import (
	"fmt"
	"runtime"
	"time"

	"github.com/arloliu/segfit/errs"
	"github.com/arloliu/segfit/internal/options"
	"github.com/arloliu/segfit/segment"
)

// DefaultUnit is the default time unit of the x axis.
const DefaultUnit = time.Second

type config struct {
	unit        time.Duration
	origin      int64
	hasOrigin   bool
	concurrency int
	solverOpts  []segment.Option[float64]
}

// Option configures how a series is fitted.
type Option = options.Option[*config]

func defaultConfig() *config {
	return &config{
		unit:        DefaultUnit,
		concurrency: runtime.GOMAXPROCS(0),
	}
}

// Validate implements options.Validator.
func (c *config) Validate() error {
	if c.unit <= 0 {
		return fmt.Errorf("%w: %s", errs.ErrInvalidTimeUnit, c.unit)
	}

	return nil
}

// WithUnit sets the duration that maps to one unit on the x axis.
//
// The segment cost is measured against squared value errors, so the unit only
// changes the conditioning of the fit and the scale of the reported slopes.
func WithUnit(unit time.Duration) Option {
	return options.NoError(func(c *config) {
		c.unit = unit
	})
}

// WithOrigin sets the timestamp, in microseconds, that maps to x = 0.
// It defaults to the first timestamp of the series.
func WithOrigin(originUs int64) Option {
	return options.NoError(func(c *config) {
		c.origin = originUs
		c.hasOrigin = true
	})
}

// WithConcurrency bounds the number of series FitAll fits at the same time.
func WithConcurrency(n int) Option {
	return options.New(func(c *config) error {
		if n < 1 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidConcurrency, n)
		}
		c.concurrency = n

		return nil
	})
}

// WithSolverOptions passes options through to the segment solver.
func WithSolverOptions(opts ...segment.Option[float64]) Option {
	return options.NoError(func(c *config) {
		c.solverOpts = append(c.solverOpts, opts...)
	})
}
