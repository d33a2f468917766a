//go:build !nomatrix

package benchmark

import "gonum.org/v1/gonum/mat"

type gonumBackend struct{}

func (gonumBackend) Name() string { return "gonum" }

func (gonumBackend) Mul(n int, a, b []float64) Matrix {
	var c mat.Dense
	c.Mul(mat.NewDense(n, n, a), mat.NewDense(n, n, b))
	return &c
}

// DetectMatrix reports the linear-algebra backend compiled into the binary.
func DetectMatrix() MatrixCapability {
	return Available(gonumBackend{})
}
