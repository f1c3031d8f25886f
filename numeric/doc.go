// Package numeric abstracts the number representation used by the segment
// solver.
//
// The solver accumulates prefix sums of x, y, x², xy and y², so the number
// type should be at least as precise as the point coordinates. Arithmetic
// captures the handful of operations the solver needs:
//
//   - Float64: the default, backed by math.Abs and math.Inf.
//   - Float32: for memory-constrained callers; loses precision quickly.
//   - Decimal: arbitrary-precision decimals via github.com/shopspring/decimal.
//
// Comparer provides epsilon comparison for any Arithmetic, used when checking
// solver results against expected values.
package numeric
