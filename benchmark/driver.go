package benchmark

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"time"

	"sysbench/progress"

	"golang.org/x/time/rate"
)

// Driver runs every benchmark phase once, in order, and collects the
// timings.
type Driver struct {
	Params   BenchmarkParams
	Matrix   MatrixCapability
	Executor Executor
	DiskDir  string
	RunID    string
	Logger   *slog.Logger

	// ShowProgress draws progress bars on stderr for the multi-core and
	// disk phases.
	ShowProgress bool

	// Rand generates the matrix contents. A nil Rand uses a random seed.
	Rand *rand.Rand
}

// NewDriver creates a Driver with the given parameters and collaborators.
func NewDriver(
	params BenchmarkParams,
	matrix MatrixCapability,
	exec Executor,
	logger *slog.Logger,
) *Driver {
	return &Driver{
		Params:   params,
		Matrix:   matrix,
		Executor: exec,
		Logger:   logger,
	}
}

type phase struct {
	name  string
	label string
	run   func(ctx context.Context) (Result, error)
}

// Run executes the phases strictly one after another. A failing phase
// aborts the run; an unavailable matrix backend is reported and skipped.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	if d.Logger == nil {
		d.Logger = slog.New(slog.DiscardHandler)
	}
	if d.Executor == nil {
		d.Executor = ThreadExecutor{}
	}

	p := d.Params
	summary := Summary{
		RunID:     d.RunID,
		GoVersion: runtime.Version(),
		CPUCores:  runtime.NumCPU(),
		Tier:      p.Tier,
		Workers:   p.Workers,
		Matrix:    d.Matrix.String(),
	}

	phases := []phase{
		{PhaseCPUSingle, "CPU single-thread", d.runCPUSingle},
		{PhaseCPUMulti, "CPU multi-thread", d.runCPUMulti},
		{PhaseMemory, fmt.Sprintf("Memory (%d MB)", p.MemoryMB), d.runMemory},
		{PhaseDisk, fmt.Sprintf("Disk (%d MB)", p.DiskMB), d.runDisk},
		{PhaseCallOverhead, "Call overhead", d.runCallOverhead},
		{PhaseMatrix, fmt.Sprintf("Matrix (%dx%d)", p.MatrixDim, p.MatrixDim), d.runMatrix},
	}

	start := time.Now()

	for _, ph := range phases {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		d.Logger.InfoContext(ctx, "phase started", slog.String("phase", ph.name))

		res, err := ph.run(ctx)
		if err != nil {
			return summary, fmt.Errorf("%s phase: %w", ph.name, err)
		}
		res.Phase = ph.name
		res.Label = ph.label

		if res.Available {
			d.Logger.InfoContext(ctx, "phase finished",
				slog.String("phase", ph.name),
				slog.Duration("elapsed", res.Elapsed),
			)
		} else {
			d.Logger.WarnContext(ctx, "phase skipped",
				slog.String("phase", ph.name),
				slog.String("reason", res.Note),
			)
		}

		summary.Results = append(summary.Results, res)
	}

	summary.Total = time.Since(start)

	return summary, nil
}

func (d *Driver) runCPUSingle(context.Context) (Result, error) {
	n := d.Params.CPUIterations
	t, err := Measure(func() (float64, error) {
		return CPUSingle(n), nil
	})
	return timed(t.Elapsed, float64(n), "ops"), err
}

func (d *Driver) runCPUMulti(ctx context.Context) (Result, error) {
	n, workers := d.Params.CPUIterations, d.Params.Workers

	var bar *progress.ProgressBar
	if d.ShowProgress {
		bar = progress.NewProgressBar(int64(workers)).SetCaption("Workers")
		defer bar.Finish()
	}
	exec := countingExecutor{Executor: d.Executor, bar: bar}

	t, err := Measure(func() (struct{}, error) {
		return struct{}{}, CPUMulti(ctx, exec, n, workers)
	})
	return timed(t.Elapsed, float64(n)*float64(workers), "ops"), err
}

func (d *Driver) runMemory(context.Context) (Result, error) {
	size := d.Params.MemoryMB
	t, err := Measure(func() (uint64, error) {
		return MemoryTest(size), nil
	})
	return timed(t.Elapsed, float64(size*mib), "B"), err
}

func (d *Driver) runDisk(ctx context.Context) (Result, error) {
	cfg := DiskConfig{
		SizeMB: d.Params.DiskMB,
		Dir:    d.DiskDir,
	}

	var bar *progress.ProgressBar
	if d.ShowProgress {
		bar = progress.NewBytesBar(2 * ExpectedDiskBytes(cfg.SizeMB, DefaultChunkSize)).
			SetCaption("Disk")
		defer bar.Finish()
	}

	var moved int64
	sometimes := rate.Sometimes{Interval: time.Second}
	cfg.Progress = func(n int) {
		bar.Add(n)
		moved += int64(n)
		sometimes.Do(func() {
			d.Logger.DebugContext(ctx, "disk progress", slog.Int64("bytes", moved))
		})
	}

	t, err := Measure(func() (DiskStats, error) {
		return DiskTest(ctx, cfg)
	})
	if err != nil {
		return Result{}, err
	}

	d.Logger.DebugContext(ctx, "disk phase complete",
		slog.String("path", t.Value.Path),
		slog.Int64("written", t.Value.Written),
		slog.Int64("read", t.Value.Read),
	)

	return timed(t.Elapsed, float64(t.Value.Bytes()), "B"), nil
}

func (d *Driver) runCallOverhead(context.Context) (Result, error) {
	n := d.Params.CallIterations
	t, err := Measure(func() (uint64, error) {
		return CallOverhead(n), nil
	})
	return timed(t.Elapsed, float64(n), "calls"), err
}

func (d *Driver) runMatrix(context.Context) (Result, error) {
	backend, ok := d.Matrix.Backend()
	if !ok {
		return Result{Note: d.Matrix.String()}, nil
	}

	rng := d.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	n := d.Params.MatrixDim
	t, err := Measure(func() (Matrix, error) {
		return MatrixTest(backend, rng, n)
	})
	if err != nil {
		return Result{}, err
	}

	res := timed(t.Elapsed, 2*float64(n)*float64(n)*float64(n), "flop")
	res.Note = backend.Name()
	return res, nil
}

func timed(elapsed time.Duration, work float64, unit string) Result {
	return Result{
		Available: true,
		Elapsed:   elapsed,
		Work:      work,
		Unit:      unit,
	}
}

// countingExecutor advances a progress bar as workers finish.
type countingExecutor struct {
	Executor
	bar *progress.ProgressBar
}

func (c countingExecutor) Execute(ctx context.Context, iterations uint64) (float64, error) {
	v, err := c.Executor.Execute(ctx, iterations)
	if err == nil {
		c.bar.Increment()
	}
	return v, err
}
