//go:build !linux && !darwin

package benchmark

// CheckResources is a no-op on platforms without rlimit and statfs support.
func CheckResources(params BenchmarkParams, dir string) error {
	return nil
}
