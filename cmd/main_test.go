package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"sysbench/benchmark"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestWorkerCommand(t *testing.T) {
	stdout, _, err := execute(t, "worker", "1000")
	require.NoError(t, err)

	var res benchmark.WorkerResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, uint64(1000), res.Iterations)
	assert.Equal(t, benchmark.CPUSingle(1000), res.Result)
}

func TestWorkerCommandBadIterations(t *testing.T) {
	_, _, err := execute(t, "worker", "lots")
	assert.Error(t, err)
}

func TestInvalidSize(t *testing.T) {
	_, _, err := execute(t, "--size", "huge", "--no-progress")
	assert.Error(t, err)
}

func TestInvalidExecutor(t *testing.T) {
	_, _, err := execute(t, "--executor", "fiber", "--no-progress")
	assert.Error(t, err)
}

func TestMissingConfigFile(t *testing.T) {
	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

var reportLine = regexp.MustCompile(`^.+: \d+\.\d{2} s \(\d\.\d{2}e[+-]\d+ \S+/s\)$`)

func TestRunSmall(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the full small tier")
	}
	color.NoColor = true

	dir := t.TempDir()
	stdout, stderr, err := execute(t,
		"--size", "small",
		"--executor", "thread",
		"--workers", "2",
		"--tmp-dir", dir,
		"--no-progress",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Equal(t, "Done.", lines[len(lines)-1])
	assert.Contains(t, stdout, "Benchmark size: small")

	measured, skipped := 0, 0
	for _, line := range lines {
		switch {
		case reportLine.MatchString(line):
			measured++
		case strings.HasSuffix(line, ": not available"):
			skipped++
		}
	}
	assert.Equal(t, 6, measured+skipped)
	assert.GreaterOrEqual(t, measured, 5)

	assert.Contains(t, stderr, "run_id=")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunJSONFromConfig(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the full small tier")
	}

	path := filepath.Join(t.TempDir(), "sysbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
size: small
executor: thread
workers: 1
json: true
no_progress: true
log_level: error
`), 0o644))

	stdout, _, err := execute(t, "--config", path, "--tmp-dir", t.TempDir())
	require.NoError(t, err)

	var summary benchmark.Summary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, benchmark.TierSmall, summary.Tier)
	assert.Equal(t, 1, summary.Workers)
	assert.Len(t, summary.Results, 6)
}
