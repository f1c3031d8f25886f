package numeric

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComparer_Equal(t *testing.T) {
	const eps = 1e-5
	cmp := NewComparer[float64](Float64{}, eps)
	inf := math.Inf(1)

	equal := []struct {
		name string
		a, b float64
	}{
		{"zero and eps", 0, eps},
		{"zero and minus eps", 0, -eps},
		{"eps and double eps", eps, 2 * eps},
		{"one and half eps above", 1, 1 + eps/2},
		{"one and eps below", 1, 1 - eps},
		{"large relative", 500, 500 + 400*eps},
		{"positive infinity", inf, inf},
		{"negative infinity", -inf, -inf},
		{"long fractions", 0.12345678912345678, 0.1234567891234568},
	}
	for _, tt := range equal {
		t.Run("Equal/"+tt.name, func(t *testing.T) {
			assert.True(t, cmp.Equal(tt.a, tt.b))
			assert.True(t, cmp.Equal(tt.b, tt.a))
		})
	}

	notEqual := []struct {
		name string
		a, b float64
	}{
		{"zero and 1.1 eps", 0, 1.1 * eps},
		{"zero and minus 2 eps", 0, -2 * eps},
		{"eps and minus eps", eps, -eps},
		{"eps and 3 eps", eps, 3 * eps},
		{"one and eps", 1, eps},
		{"zero and infinity", 0, inf},
		{"finite and infinity", 500, inf},
		{"finite and negative infinity", 500, -inf},
		{"large relative", 500, 500 + 600*eps},
	}
	for _, tt := range notEqual {
		t.Run("NotEqual/"+tt.name, func(t *testing.T) {
			assert.False(t, cmp.Equal(tt.a, tt.b))
			assert.False(t, cmp.Equal(tt.b, tt.a))
		})
	}
}

func TestComparer_Decimal(t *testing.T) {
	ar := Decimal{}
	cmp := NewComparer[decimal.Decimal](ar, decimal.New(1, -6))

	assert.True(t, cmp.Equal(ar.FromFloat64(1), ar.FromFloat64(1.0000005)))
	assert.False(t, cmp.Equal(ar.FromFloat64(1), ar.FromFloat64(1.00001)))
	assert.True(t, cmp.Equal(DecimalInfinity, DecimalInfinity))
}
