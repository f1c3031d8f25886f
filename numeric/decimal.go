package numeric

import "github.com/shopspring/decimal"

// DecimalInfinity is the slope sentinel returned by Decimal.Inf. Decimals have
// no infinity, so a value far outside any realistic slope stands in for it.
var DecimalInfinity = decimal.New(1, 100)

// Decimal implements Arithmetic for decimal.Decimal.
//
// Precision is the number of fractional digits kept by Div; zero means
// decimal.DivisionPrecision.
type Decimal struct {
	Precision int32
}

var _ Arithmetic[decimal.Decimal] = Decimal{}

func (Decimal) Zero() decimal.Decimal                 { return decimal.Zero }
func (Decimal) FromFloat64(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }
func (Decimal) FromInt(v int) decimal.Decimal         { return decimal.NewFromInt(int64(v)) }
func (Decimal) Add(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b)
}

func (Decimal) Sub(a, b decimal.Decimal) decimal.Decimal {
	return a.Sub(b)
}

func (Decimal) Mul(a, b decimal.Decimal) decimal.Decimal {
	return a.Mul(b)
}

func (d Decimal) Div(a, b decimal.Decimal) decimal.Decimal {
	precision := d.Precision
	if precision <= 0 {
		precision = int32(decimal.DivisionPrecision)
	}

	return a.DivRound(b, precision)
}

func (Decimal) Abs(v decimal.Decimal) decimal.Decimal { return v.Abs() }
func (Decimal) Less(a, b decimal.Decimal) bool        { return a.LessThan(b) }
func (Decimal) IsZero(v decimal.Decimal) bool         { return v.IsZero() }
func (Decimal) Inf() decimal.Decimal                  { return DecimalInfinity }

func (Decimal) Float64(v decimal.Decimal) float64 {
	f, _ := v.Float64()
	return f
}
