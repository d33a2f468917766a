//go:build linux || darwin

package benchmark

import (
	"fmt"
	"math"
	"os"

	"golang.org/x/sys/unix"
)

// CheckResources verifies that the process limits and the free space under
// dir leave room for the memory buffer, the worker processes and the disk
// file described by params. An empty dir means os.TempDir.
func CheckResources(params BenchmarkParams, dir string) error {
	rLimit := unix.Rlimit{}

	// Address space must fit the memory phase buffer.
	if err := unix.Getrlimit(unix.RLIMIT_AS, &rLimit); err != nil {
		return fmt.Errorf("unable to get address space rlimit: %w", err)
	}
	memBytes := params.MemoryMB * mib
	if !unlimited(rLimit.Cur) && rLimit.Cur < memBytes {
		return fmt.Errorf("%w: memory phase needs %d bytes, address space limit is %d",
			ErrInsufficientResources, memBytes, rLimit.Cur)
	}

	// Each worker is a separate process.
	if err := unix.Getrlimit(unix.RLIMIT_NPROC, &rLimit); err != nil {
		return fmt.Errorf("unable to get process rlimit: %w", err)
	}
	if !unlimited(rLimit.Cur) && rLimit.Cur < uint64(params.Workers) {
		return fmt.Errorf("%w: %d workers requested, process limit is %d",
			ErrInsufficientResources, params.Workers, rLimit.Cur)
	}

	if dir == "" {
		dir = os.TempDir()
	}
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return fmt.Errorf("unable to stat filesystem of %s: %w", dir, err)
	}
	free := uint64(st.Bavail) * uint64(st.Bsize)
	need := uint64(ExpectedDiskBytes(params.DiskMB, DefaultChunkSize))
	if free < need {
		return fmt.Errorf("%w: disk phase needs %d bytes in %s, %d available",
			ErrInsufficientResources, need, dir, free)
	}

	return nil
}

// unlimited reports whether an rlimit value means no limit. Linux and
// darwin use different encodings of RLIM_INFINITY, both at or above MaxInt64.
func unlimited(v uint64) bool {
	return v >= math.MaxInt64
}
