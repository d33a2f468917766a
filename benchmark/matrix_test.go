package benchmark

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naiveBackend multiplies with the textbook triple loop.
type naiveBackend struct{}

func (naiveBackend) Name() string { return "naive" }

func (naiveBackend) Mul(n int, a, b []float64) Matrix {
	c := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			aik := a[i*n+k]
			for j := 0; j < n; j++ {
				c[i*n+j] += aik * b[k*n+j]
			}
		}
	}
	return denseView{n: n, data: c}
}

type denseView struct {
	n    int
	data []float64
}

func (d denseView) Dims() (int, int) { return d.n, d.n }
func (d denseView) At(i, j int) float64 { return d.data[i*d.n+j] }

func TestMatrixCapability(t *testing.T) {
	avail := Available(naiveBackend{})
	b, ok := avail.Backend()
	require.True(t, ok)
	assert.Equal(t, "naive", b.Name())
	assert.Equal(t, "available (naive)", avail.String())

	none := Unavailable("no backend")
	_, ok = none.Backend()
	assert.False(t, ok)
	assert.Equal(t, "unavailable: no backend", none.String())
}

func TestRandomMatrix(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	data := RandomMatrix(rng, 16)

	require.Len(t, data, 256)
	for _, v := range data {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestMatrixTest(t *testing.T) {
	m, err := MatrixTest(naiveBackend{}, rand.New(rand.NewPCG(3, 4)), 5)
	require.NoError(t, err)

	r, c := m.Dims()
	assert.Equal(t, 5, r)
	assert.Equal(t, 5, c)
}

func TestMatrixTestRejectsEmpty(t *testing.T) {
	_, err := MatrixTest(naiveBackend{}, rand.New(rand.NewPCG(3, 4)), 0)
	assert.Error(t, err)
}
