package benchmark

import "time"

// Timing is the elapsed wall-clock time of one workload run together with
// the value the workload returned.
type Timing[T any] struct {
	Elapsed time.Duration
	Value   T
}

// Seconds returns the elapsed time in seconds.
func (t Timing[T]) Seconds() float64 {
	return t.Elapsed.Seconds()
}

// Measure runs fn exactly once and reports how long it took. time.Since uses
// the monotonic clock reading, so wall-clock adjustments do not affect the
// result. An error from fn is returned as is.
func Measure[T any](fn func() (T, error)) (Timing[T], error) {
	start := time.Now()
	v, err := fn()
	elapsed := time.Since(start)

	return Timing[T]{Elapsed: elapsed, Value: v}, err
}
