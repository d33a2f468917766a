package benchmark

import (
	"fmt"
	"math/rand/v2"
)

// Matrix is the read-only view of a product computed by a MatrixBackend.
type Matrix interface {
	Dims() (r, c int)
	At(i, j int) float64
}

// MatrixBackend multiplies dense square matrices stored row-major.
type MatrixBackend interface {
	Name() string
	Mul(n int, a, b []float64) Matrix
}

// MatrixCapability records whether an optimised linear-algebra backend is
// present. It is either Available, holding the backend, or Unavailable,
// holding the reason.
type MatrixCapability struct {
	backend MatrixBackend
	reason  string
}

// Available returns a capability backed by b.
func Available(b MatrixBackend) MatrixCapability {
	return MatrixCapability{backend: b}
}

// Unavailable returns a capability that reports reason.
func Unavailable(reason string) MatrixCapability {
	return MatrixCapability{reason: reason}
}

// Backend returns the backend and true when the capability is available.
func (c MatrixCapability) Backend() (MatrixBackend, bool) {
	return c.backend, c.backend != nil
}

func (c MatrixCapability) String() string {
	if c.backend != nil {
		return "available (" + c.backend.Name() + ")"
	}
	return "unavailable: " + c.reason
}

// RandomMatrix returns n*n values drawn uniformly from [0, 1).
func RandomMatrix(rng *rand.Rand, n int) []float64 {
	data := make([]float64, n*n)
	for i := range data {
		data[i] = rng.Float64()
	}
	return data
}

// MatrixTest multiplies two random n×n matrices with backend.
func MatrixTest(backend MatrixBackend, rng *rand.Rand, n int) (Matrix, error) {
	if n < 1 {
		return nil, fmt.Errorf("matrix dimension must be positive, got %d", n)
	}
	a := RandomMatrix(rng, n)
	b := RandomMatrix(rng, n)
	return backend.Mul(n, a, b), nil
}
