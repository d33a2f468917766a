package benchmark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// WorkerCommand is the name of the subcommand a ProcessExecutor invokes.
const WorkerCommand = "worker"

// Executor runs one copy of the CPU workload in its own execution context.
type Executor interface {
	Execute(ctx context.Context, iterations uint64) (float64, error)
}

// WorkerResult is what a worker process writes to stdout.
type WorkerResult struct {
	Iterations uint64  `json:"iterations"`
	Result     float64 `json:"result"`
}

// RunWorker performs the CPU workload and writes the WorkerResult to w.
// It is the body of the worker subcommand.
func RunWorker(w io.Writer, iterations uint64) error {
	res := WorkerResult{
		Iterations: iterations,
		Result:     CPUSingle(iterations),
	}
	if err := json.NewEncoder(w).Encode(res); err != nil {
		return fmt.Errorf("encode worker result: %w", err)
	}
	return nil
}

// CommandConfig holds the binary, leading arguments and extra environment
// used to start a worker process.
type CommandConfig struct {
	Binary    string
	ExtraArgs []string
	Env       []string
}

// SelfCommand returns a CommandConfig that re-executes the running binary
// with the worker subcommand.
func SelfCommand() (CommandConfig, error) {
	bin, err := os.Executable()
	if err != nil {
		return CommandConfig{}, fmt.Errorf("resolve executable: %w", err)
	}
	return CommandConfig{Binary: bin, ExtraArgs: []string{WorkerCommand}}, nil
}

// ProcessExecutor runs each workload copy in a separate OS process.
type ProcessExecutor struct {
	Command CommandConfig
}

// NewProcessExecutor creates a ProcessExecutor for cmd.
func NewProcessExecutor(cmd CommandConfig) *ProcessExecutor {
	return &ProcessExecutor{Command: cmd}
}

// Execute starts a worker process and decodes its result.
func (p *ProcessExecutor) Execute(ctx context.Context, iterations uint64) (float64, error) {
	args := make([]string, 0, len(p.Command.ExtraArgs)+1)
	args = append(args, p.Command.ExtraArgs...)
	args = append(args, strconv.FormatUint(iterations, 10))

	cmd := exec.CommandContext(ctx, p.Command.Binary, args...)
	if len(p.Command.Env) > 0 {
		cmd.Env = append(os.Environ(), p.Command.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("worker %s failed: %w\nstderr: %s",
			p.Command.Binary, err, stderr.String())
	}

	res, err := parseWorkerResult(&stdout)
	if err != nil {
		return 0, fmt.Errorf("parse worker output: %w\nstdout: %s", err, stdout.String())
	}
	if res.Iterations != iterations {
		return 0, fmt.Errorf("worker ran %d iterations, want %d", res.Iterations, iterations)
	}

	return res.Result, nil
}

func parseWorkerResult(r io.Reader) (WorkerResult, error) {
	var res WorkerResult
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return WorkerResult{}, fmt.Errorf("decode JSON: %w", err)
	}
	return res, nil
}

// ThreadExecutor runs each workload copy on a goroutine pinned to its own
// OS thread. The Go scheduler runs those threads in parallel on separate
// cores.
type ThreadExecutor struct{}

// Execute runs the CPU workload on a locked OS thread.
func (ThreadExecutor) Execute(ctx context.Context, iterations uint64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	done := make(chan float64, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		done <- CPUSingle(iterations)
	}()

	// The workload cannot be interrupted; a cancelled caller stops waiting
	// and the goroutine finishes on its own.
	select {
	case v := <-done:
		return v, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// CPUMulti runs workers copies of the CPU workload in parallel through
// executor and waits for all of them. The first failure cancels the
// remaining copies and is returned.
func CPUMulti(ctx context.Context, executor Executor, n uint64, workers int) error {
	if workers < 1 {
		return fmt.Errorf("worker count must be at least 1, got %d", workers)
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			if _, err := executor.Execute(gctx, n); err != nil {
				return fmt.Errorf("worker %d: %w", i, err)
			}
			return nil
		})
	}

	return g.Wait()
}
