package numeric

import "math"

// Arithmetic defines the operations the solver performs on numbers of type N.
//
// Implementations must be stateless or safe for concurrent use, since a
// single Arithmetic value is shared by parallel solves.
type Arithmetic[N any] interface {
	// Zero returns the additive identity.
	Zero() N
	// FromFloat64 converts a float64 coordinate into N.
	FromFloat64(v float64) N
	// FromInt converts a point count into N.
	FromInt(v int) N
	Add(a, b N) N
	Sub(a, b N) N
	Mul(a, b N) N
	Div(a, b N) N
	// Abs returns the absolute value of v.
	Abs(v N) N
	// Less reports whether a < b.
	Less(a, b N) bool
	// IsZero reports whether v equals zero exactly.
	IsZero(v N) bool
	// Inf returns the sentinel used for slopes of vertical fits.
	Inf() N
	// Float64 converts v to float64 for reporting.
	Float64(v N) float64
}

// Float64 implements Arithmetic for float64.
type Float64 struct{}

var _ Arithmetic[float64] = Float64{}

func (Float64) Zero() float64                 { return 0 }
func (Float64) FromFloat64(v float64) float64 { return v }
func (Float64) FromInt(v int) float64         { return float64(v) }
func (Float64) Add(a, b float64) float64      { return a + b }
func (Float64) Sub(a, b float64) float64      { return a - b }

// Mul rounds the product explicitly so that it is never fused with a
// following addition.
func (Float64) Mul(a, b float64) float64  { return float64(a * b) }
func (Float64) Div(a, b float64) float64  { return a / b }
func (Float64) Abs(v float64) float64     { return math.Abs(v) }
func (Float64) Less(a, b float64) bool    { return a < b }
func (Float64) IsZero(v float64) bool     { return v == 0 }
func (Float64) Inf() float64              { return math.Inf(1) }
func (Float64) Float64(v float64) float64 { return v }

// Float32 implements Arithmetic for float32.
type Float32 struct{}

var _ Arithmetic[float32] = Float32{}

func (Float32) Zero() float32                 { return 0 }
func (Float32) FromFloat64(v float64) float32 { return float32(v) }
func (Float32) FromInt(v int) float32         { return float32(v) }
func (Float32) Add(a, b float32) float32      { return a + b }
func (Float32) Sub(a, b float32) float32      { return a - b }
func (Float32) Mul(a, b float32) float32      { return float32(a * b) }
func (Float32) Div(a, b float32) float32      { return a / b }
func (Float32) Abs(v float32) float32         { return float32(math.Abs(float64(v))) }
func (Float32) Less(a, b float32) bool        { return a < b }
func (Float32) IsZero(v float32) bool         { return v == 0 }
func (Float32) Inf() float32                  { return float32(math.Inf(1)) }
func (Float32) Float64(v float32) float64     { return float64(v) }
