//go:build linux || darwin

package benchmark

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckResources(t *testing.T) {
	assert.NoError(t, CheckResources(tinyParams(), t.TempDir()))
}

func TestCheckResourcesDiskTooLarge(t *testing.T) {
	p := tinyParams()
	p.DiskMB = math.MaxUint64 / (4 * 1024 * 1024)

	err := CheckResources(p, t.TempDir())
	assert.ErrorIs(t, err, ErrInsufficientResources)
}

func TestCheckResourcesMissingDir(t *testing.T) {
	err := CheckResources(tinyParams(), "/nonexistent/sysbench")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInsufficientResources)
}

func TestUnlimited(t *testing.T) {
	assert.True(t, unlimited(math.MaxUint64))
	assert.True(t, unlimited(math.MaxInt64))
	assert.False(t, unlimited(1 << 30))
}
