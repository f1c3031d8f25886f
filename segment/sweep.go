package segment

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/segfit/internal/options"
	"github.com/arloliu/segfit/numeric"
)

// Sweep solves the same points for every segment cost in costs.
//
// Solves run in parallel, at most WithConcurrency at a time. The returned
// results are index-aligned with costs. The first failing solve cancels the
// remaining ones and its error is returned.
func Sweep[C Coordinate, N any](ctx context.Context, arith numeric.Arithmetic[N], points []Point[C], costs []N, opts ...Option[N]) ([]*Result[N], error) {
	cfg := defaultConfig[N]()
	if err := options.ApplyAndValidate(cfg, opts...); err != nil {
		return nil, err
	}

	results := make([]*Result[N], len(costs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)

	for i, cost := range costs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := Solve(arith, points, cost, opts...)
			if err != nil {
				return fmt.Errorf("segment cost %v: %w", cost, err)
			}
			results[i] = res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
