package loess

import (
	"math"
	"math/rand/v2"
	"testing"
)

func benchmarkSeries(n int) ([]float64, []float64) {
	rng := rand.New(rand.NewPCG(42, 42))

	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i) * 0.1
		y[i] = math.Sin(x[i]*0.5) + (rng.Float64()-0.5)*0.3
	}
	return x, y
}

func BenchmarkSmootherFit(b *testing.B) {
	sizes := []struct {
		name string
		n    int
	}{
		{"Small_200", 200},
		{"Medium_500", 500},
		{"Large_1500", 1500}, // above the parallel threshold
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			x, y := benchmarkSeries(size.n)
			smoother := New(WithSpan(0.3), WithDegree(1))

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := smoother.Fit(x, y); err != nil {
					b.Fatalf("Fit failed: %v", err)
				}
			}
		})
	}
}
