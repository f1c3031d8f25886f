package segment

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/arloliu/segfit/numeric"
)

func BenchmarkSolve(b *testing.B) {
	for _, size := range []int{100, 1000, 5000} {
		rng := rand.New(rand.NewPCG(1, uint64(size)))
		points := noisyPolyline(rng, size)

		b.Run(fmt.Sprintf("Points_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := SolveFloat64(points, 5); err != nil {
					b.Fatal(err)
				}
			}
		})

		b.Run(fmt.Sprintf("Points_%d_NoPruning", size), func(b *testing.B) {
			for b.Loop() {
				if _, err := SolveFloat64(points, 5, WithPruning[float64](false)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSolve_Decimal(b *testing.B) {
	rng := rand.New(rand.NewPCG(1, 2))
	points := noisyPolyline(rng, 100)
	ar := numeric.Decimal{}
	cost := ar.FromInt(5)

	for b.Loop() {
		if _, err := Solve(ar, points, cost); err != nil {
			b.Fatal(err)
		}
	}
}
