package numeric

// Comparer compares numbers with a combined absolute and relative tolerance.
//
// Two numbers a and b are equal when they are identical (which covers equal
// infinities) or when both are finite and |a-b| <= Epsilon·max(1, |a|, |b|).
type Comparer[N any] struct {
	Arith   Arithmetic[N]
	Epsilon N
}

// NewComparer returns a Comparer for arith with the given epsilon.
func NewComparer[N any](arith Arithmetic[N], epsilon N) Comparer[N] {
	return Comparer[N]{Arith: arith, Epsilon: epsilon}
}

// Equal reports whether a and b are equal within the tolerance.
func (c Comparer[N]) Equal(a, b N) bool {
	ar := c.Arith
	if !ar.Less(a, b) && !ar.Less(b, a) {
		return true
	}

	inf := ar.Inf()
	absA, absB := ar.Abs(a), ar.Abs(b)
	if !ar.Less(absA, inf) || !ar.Less(absB, inf) {
		return false
	}

	scale := ar.FromInt(1)
	if ar.Less(scale, absA) {
		scale = absA
	}
	if ar.Less(scale, absB) {
		scale = absB
	}

	diff := ar.Abs(ar.Sub(a, b))

	return !ar.Less(ar.Mul(c.Epsilon, scale), diff)
}
