// Package main provides the CLI entry point for sysbench, a quick machine
// benchmark covering CPU, memory, disk and function-call overhead.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"sysbench/benchmark"
	"sysbench/config"
	"sysbench/progress"
	"sysbench/report"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := config.Default()

	var (
		configPath string
		size       string
		workers    int
		executor   string
		tmpDir     string
		outputJSON bool
		noProgress bool
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "sysbench",
		Short: "Quick machine benchmark",
		Long: `Sysbench measures single- and multi-core arithmetic throughput, memory
bandwidth, disk throughput and function-call overhead, plus a dense matrix
product when a linear-algebra backend is compiled in.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := defaults
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}

			flags := cmd.Flags()
			if flags.Changed("size") {
				cfg.Size = size
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("executor") {
				cfg.Executor = executor
			}
			if flags.Changed("tmp-dir") {
				cfg.TmpDir = tmpDir
			}
			if flags.Changed("json") {
				cfg.JSON = outputJSON
			}
			if flags.Changed("no-progress") {
				cfg.NoProgress = noProgress
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			return runBenchmark(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "",
		"Path to a YAML config file")
	flags.StringVar(&size, "size", defaults.Size,
		"Benchmark size: small, medium, large")
	flags.IntVar(&workers, "workers", defaults.Workers,
		"Workers for the multi-core CPU test (0 = number of logical CPUs)")
	flags.StringVar(&executor, "executor", defaults.Executor,
		"Multi-core execution context: process, thread")
	flags.StringVar(&tmpDir, "tmp-dir", defaults.TmpDir,
		"Directory for the disk test file (default: system temp dir)")
	flags.BoolVar(&outputJSON, "json", defaults.JSON,
		"Output results as JSON")
	flags.BoolVar(&noProgress, "no-progress", defaults.NoProgress,
		"Disable progress bars")
	flags.StringVar(&logLevel, "log-level", defaults.LogLevel,
		"Log level: debug, info, warn, error")

	cmd.AddCommand(newWorkerCmd())

	return cmd
}

func newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:    benchmark.WorkerCommand + " <iterations>",
		Short:  "Run one copy of the CPU workload and print the result as JSON",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parse iterations %q: %w", args[0], err)
			}
			return benchmark.RunWorker(cmd.OutOrStdout(), n)
		},
	}
}

func runBenchmark(ctx context.Context, stdout, stderr io.Writer, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	runID := uuid.NewString()[:8]
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("run_id", runID))

	tier, err := benchmark.ParseTier(cfg.Size)
	if err != nil {
		return err
	}

	params, err := benchmark.NewParams(tier, cfg.Workers)
	if err != nil {
		return err
	}

	if err := benchmark.CheckResources(params, cfg.TmpDir); err != nil {
		return err
	}

	exec, err := newExecutor(cfg.Executor)
	if err != nil {
		return err
	}

	matrix := benchmark.DetectMatrix()

	logger.InfoContext(ctx, "starting benchmark",
		slog.String("tier", string(params.Tier)),
		slog.Int("workers", params.Workers),
		slog.String("executor", cfg.Executor),
		slog.String("matrix", matrix.String()),
	)

	driver := benchmark.NewDriver(params, matrix, exec, logger)
	driver.DiskDir = cfg.TmpDir
	driver.RunID = runID
	driver.ShowProgress = progress.Enabled(cfg.NoProgress)

	summary, err := driver.Run(ctx)
	if err != nil {
		return err
	}

	if cfg.JSON {
		if err := report.JSON(stdout, summary); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}
	} else {
		if err := report.Text(stdout, summary); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
	}

	logger.InfoContext(ctx, "benchmark complete",
		slog.Duration("total", summary.Total),
	)

	return nil
}

func newExecutor(name string) (benchmark.Executor, error) {
	switch name {
	case config.ExecutorThread:
		return benchmark.ThreadExecutor{}, nil
	case config.ExecutorProcess, "":
		cmd, err := benchmark.SelfCommand()
		if err != nil {
			return nil, err
		}
		return benchmark.NewProcessExecutor(cmd), nil
	default:
		return nil, fmt.Errorf("unknown executor %q", name)
	}
}
