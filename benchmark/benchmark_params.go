package benchmark

import (
	"fmt"
	"runtime"
)

// Tier selects how much work every benchmark phase performs.
type Tier string

const (
	TierSmall  Tier = "small"
	TierMedium Tier = "medium"
	TierLarge  Tier = "large"
)

// Tiers lists the valid tiers in increasing order of work.
func Tiers() []Tier {
	return []Tier{TierSmall, TierMedium, TierLarge}
}

// ParseTier converts a tier name into a Tier.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierSmall, TierMedium, TierLarge:
		return Tier(s), nil
	default:
		return "", fmt.Errorf("%w %q: must be one of small, medium, large", ErrInvalidTier, s)
	}
}

// Multiplier returns the scale factor every phase parameter is derived from.
func (t Tier) Multiplier() uint64 {
	switch t {
	case TierSmall:
		return 1
	case TierMedium:
		return 5
	case TierLarge:
		return 10
	default:
		return 0
	}
}

// Per-unit amounts of work, multiplied by the tier multiplier.
const (
	cpuIterationsPerUnit  = 200_000
	memoryMBPerUnit       = 256
	diskMBPerUnit         = 256
	callIterationsPerUnit = 5_000_000
	matrixDimPerUnit      = 300
)

// BenchmarkParams holds the parameters for all benchmarks
type BenchmarkParams struct {
	Tier           Tier
	CPUIterations  uint64 // Loop iterations for the CPU phases
	MemoryMB       uint64 // Buffer size for the memory phase
	DiskMB         uint64 // Amount of data written to and read from disk
	CallIterations uint64 // Function calls made by the call-overhead phase
	MatrixDim      int    // Side length of the square matrices
	Workers        int    // Parallel workers for the multi-core CPU phase
}

// NewParams derives the parameters for tier. A non-positive workers value
// selects the number of logical CPUs.
func NewParams(tier Tier, workers int) (BenchmarkParams, error) {
	k := tier.Multiplier()
	if k == 0 {
		return BenchmarkParams{}, fmt.Errorf("%w %q", ErrInvalidTier, tier)
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return BenchmarkParams{
		Tier:           tier,
		CPUIterations:  k * cpuIterationsPerUnit,
		MemoryMB:       k * memoryMBPerUnit,
		DiskMB:         k * diskMBPerUnit,
		CallIterations: k * callIterationsPerUnit,
		MatrixDim:      int(k) * matrixDimPerUnit,
		Workers:        workers,
	}, nil
}
