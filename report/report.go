// Package report renders benchmark summaries for the terminal or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"sysbench/benchmark"

	"github.com/fatih/color"
	"github.com/minio/pkg/console"
)

var labelColor = color.New(color.FgCyan)

func init() {
	console.SetColor("Header", color.New(color.FgYellow, color.Bold))
	console.SetColor("Done", color.New(color.FgGreen, color.Bold))
}

// Text writes the human-readable report: a header with the runtime,
// core count and tier, one line per phase and a final "Done." line.
func Text(w io.Writer, s benchmark.Summary) error {
	if len(s.Results) == 0 {
		return fmt.Errorf("no results to report")
	}

	fmt.Fprintln(w, console.Colorize("Header", "=== Go System Benchmark ==="))
	fmt.Fprintf(w, "Go: %s\n", s.GoVersion)
	fmt.Fprintf(w, "CPU cores: %d\n", s.CPUCores)
	fmt.Fprintf(w, "Benchmark size: %s\n", s.Tier)
	fmt.Fprintf(w, "Workers: %d\n", s.Workers)
	fmt.Fprintln(w)

	for _, r := range s.Results {
		fmt.Fprintln(w, FormatResult(r))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total: %.2f s\n", s.Total.Seconds())
	fmt.Fprintln(w, console.Colorize("Done", "Done."))

	return nil
}

// FormatResult renders one phase as "<label>: <seconds> s (<rate> <unit>/s)",
// or "<label>: not available" for a skipped phase.
func FormatResult(r benchmark.Result) string {
	label := labelColor.Sprint(r.Label)
	if !r.Available {
		return fmt.Sprintf("%s: not available", label)
	}

	return fmt.Sprintf("%s: %.2f s (%.2e %s/s)",
		label, r.Seconds(), r.Throughput(), r.Unit)
}

// JSON writes s as indented JSON to w.
func JSON(w io.Writer, s benchmark.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(s)
}
