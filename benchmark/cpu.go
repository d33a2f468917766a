package benchmark

import "math"

// CPUSingle accumulates sqrt(i)*sin(i) for i in [1, n). The upper bound is
// exclusive, so CPUSingle(0) and CPUSingle(1) both return 0.
func CPUSingle(n uint64) float64 {
	x := 0.0
	for i := uint64(1); i < n; i++ {
		f := float64(i)
		x += math.Sqrt(f) * math.Sin(f)
	}
	return x
}
