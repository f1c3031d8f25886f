package segment

import (
	"fmt"
	"runtime"

	"github.com/arloliu/segfit/errs"
	"github.com/arloliu/segfit/internal/options"
)

// config holds the solver settings for number type N.
type config[N any] struct {
	infinity    N
	hasInfinity bool
	abs         func(N) N
	absSet      bool
	pruning     bool
	capacity    int
	concurrency int
}

// Option configures a solve over number type N.
//
// Options whose argument does not mention N need an explicit instantiation,
// e.g. segment.WithPruning[float64](false).
type Option[N any] = options.Option[*config[N]]

func defaultConfig[N any]() *config[N] {
	return &config[N]{
		pruning:     true,
		concurrency: runtime.GOMAXPROCS(0),
	}
}

// Validate implements options.Validator.
func (c *config[N]) Validate() error {
	if c.absSet && c.abs == nil {
		return errs.ErrNilAbsoluteValue
	}

	return nil
}

// WithInfinity sets the slope reported for a range whose x values cannot
// define a line. It defaults to the arithmetic's Inf value.
func WithInfinity[N any](infinity N) Option[N] {
	return options.NoError(func(c *config[N]) {
		c.infinity = infinity
		c.hasInfinity = true
	})
}

// WithAbsoluteValue replaces the absolute value function applied to segment
// errors. Passing nil makes the solve fail with errs.ErrNilAbsoluteValue.
func WithAbsoluteValue[N any](abs func(N) N) Option[N] {
	return options.NoError(func(c *config[N]) {
		c.abs = abs
		c.absSet = true
	})
}

// WithPruning enables or disables skipping candidates that cannot improve the
// current minimum. Results are identical either way; it is enabled by default.
func WithPruning[N any](enabled bool) Option[N] {
	return options.NoError(func(c *config[N]) {
		c.pruning = enabled
	})
}

// WithCapacity pre-allocates session tables for the given number of points.
func WithCapacity[N any](capacity int) Option[N] {
	return options.New(func(c *config[N]) error {
		if capacity < 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidCapacity, capacity)
		}
		c.capacity = capacity

		return nil
	})
}

// WithConcurrency bounds the number of solves Sweep runs at the same time.
// It defaults to GOMAXPROCS.
func WithConcurrency[N any](n int) Option[N] {
	return options.New(func(c *config[N]) error {
		if n < 1 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidConcurrency, n)
		}
		c.concurrency = n

		return nil
	})
}
