// Package segment implements optimal segmented (piecewise-linear) regression.
//
// Given points sorted by strictly increasing x, the solver partitions them into
// contiguous segments and fits a least-squares line to each one, minimizing
//
//	sum(segment squared error) + segmentCost * number of segments
//
// The segment cost is the price of starting a new segment: a small cost yields
// many short, exact segments, a large cost yields few long ones.
//
// # Algorithm
//
// The solver is a one-dimensional dynamic program over prefixes. Running sums
// of x, y, x², xy and y² let the best-fit line and its squared error for any
// range [i, j] be computed in O(1). For every new point the solver scans all
// possible starts of the last segment, so a full solve takes O(n²) time and
// O(n) memory. Candidates whose prefix cost already exceeds the best value
// found are skipped; since segment errors are non-negative this never changes
// the result.
//
// Ties are broken in favor of the earliest segment start.
//
// # Usage
//
//	points := []segment.Point[float64]{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 2}}
//	result, err := segment.SolveFloat64(points, 0.1)
//	if err != nil {
//	    return err
//	}
//	for _, s := range result.Segments {
//	    fmt.Println(s)
//	}
//
// Points can also be streamed one by one through a Session, which keeps the
// optimal solution of every prefix up to date:
//
//	session, err := segment.NewSession[float64, float64](numeric.Float64{}, 0.1)
//	...
//	for _, p := range points {
//	    if err := session.Add(p); err != nil {
//	        return err
//	    }
//	}
//	result, err := session.Result()
//
// # Number types
//
// Coordinates (C) and the number type used for sums and costs (N) are separate
// type parameters. N should be at least as precise as C; the squared sums lose
// precision quickly otherwise. Arithmetic on N is provided by a
// numeric.Arithmetic implementation, so decimals work as well as floats.
//
// # Concurrency
//
// Solve has no shared state. Sweep runs independent solves for several
// segment costs in parallel.
package segment
