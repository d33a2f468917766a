package benchmark

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tinyParams() BenchmarkParams {
	return BenchmarkParams{
		Tier:           TierSmall,
		CPUIterations:  1000,
		MemoryMB:       1,
		DiskMB:         1,
		CallIterations: 1000,
		MatrixDim:      8,
		Workers:        2,
	}
}

func TestDriverRun(t *testing.T) {
	dir := t.TempDir()

	d := NewDriver(tinyParams(), Available(naiveBackend{}), ThreadExecutor{}, nil)
	d.DiskDir = dir
	d.RunID = "test"
	d.Rand = rand.New(rand.NewPCG(1, 1))

	summary, err := d.Run(context.Background())
	require.NoError(t, err)

	wantPhases := []string{
		PhaseCPUSingle, PhaseCPUMulti, PhaseMemory,
		PhaseDisk, PhaseCallOverhead, PhaseMatrix,
	}
	require.Len(t, summary.Results, len(wantPhases))

	for i, r := range summary.Results {
		assert.Equal(t, wantPhases[i], r.Phase)
		assert.NotEmpty(t, r.Label)
		assert.True(t, r.Available, "phase %s", r.Phase)
		assert.Positive(t, r.Work, "phase %s", r.Phase)
		assert.NotEmpty(t, r.Unit)
	}

	byPhase := make(map[string]Result, len(summary.Results))
	for _, r := range summary.Results {
		byPhase[r.Phase] = r
	}
	assert.Equal(t, 2000.0, byPhase[PhaseCPUMulti].Work)
	assert.Equal(t, float64(1024*1024), byPhase[PhaseMemory].Work)
	assert.Equal(t, float64(2*1024*1024), byPhase[PhaseDisk].Work)
	assert.Equal(t, 2.0*8*8*8, byPhase[PhaseMatrix].Work)
	assert.Equal(t, "Memory (1 MB)", byPhase[PhaseMemory].Label)
	assert.Equal(t, "Matrix (8x8)", byPhase[PhaseMatrix].Label)

	assert.Equal(t, "test", summary.RunID)
	assert.Equal(t, TierSmall, summary.Tier)
	assert.Equal(t, 2, summary.Workers)
	assert.Positive(t, summary.Total)
	assertEmptyDir(t, dir)
}

func TestDriverMatrixUnavailable(t *testing.T) {
	d := NewDriver(tinyParams(), Unavailable("not compiled in"), ThreadExecutor{}, nil)
	d.DiskDir = t.TempDir()

	summary, err := d.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Results, 6)

	last := summary.Results[5]
	assert.Equal(t, PhaseMatrix, last.Phase)
	assert.False(t, last.Available)
	assert.Contains(t, last.Note, "not compiled in")
	assert.Zero(t, last.Throughput())

	for _, r := range summary.Results[:5] {
		assert.True(t, r.Available, "phase %s", r.Phase)
	}
}

func TestDriverAbortsOnFailure(t *testing.T) {
	d := NewDriver(tinyParams(), Available(naiveBackend{}), &countingStub{fail: 1}, nil)
	d.DiskDir = t.TempDir()

	summary, err := d.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cpu-multi phase")
	assert.Len(t, summary.Results, 1, "only the phase before the failure should be recorded")
}

func TestDriverDiskFailure(t *testing.T) {
	d := NewDriver(tinyParams(), Available(naiveBackend{}), ThreadExecutor{}, nil)
	d.DiskDir = "/nonexistent/sysbench"

	_, err := d.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk phase")
}

func TestDriverCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDriver(tinyParams(), Available(naiveBackend{}), ThreadExecutor{}, nil)
	_, err := d.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResultThroughput(t *testing.T) {
	r := Result{Available: true, Elapsed: 2e9, Work: 10}
	assert.InDelta(t, 5.0, r.Throughput(), 1e-12)
	assert.InDelta(t, 2.0, r.Seconds(), 1e-12)

	assert.Zero(t, Result{Available: true, Work: 10}.Throughput())
}
