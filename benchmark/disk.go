package benchmark

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultChunkSize is the size of every write and read in the disk phase.
const DefaultChunkSize = 1 * mib

// DiskConfig controls the disk phase.
type DiskConfig struct {
	SizeMB    uint64
	Dir       string    // Directory for the temporary file; empty means os.TempDir
	ChunkSize int       // Defaults to DefaultChunkSize
	Random    io.Reader // Source of the chunk contents; defaults to crypto/rand

	// Progress, if set, is called with the byte count of every completed
	// write and read.
	Progress func(n int)
}

// DiskStats describes the I/O performed by DiskTest.
type DiskStats struct {
	Path    string
	Written int64
	Read    int64
}

// Bytes returns the total number of bytes moved in both directions.
func (s DiskStats) Bytes() int64 {
	return s.Written + s.Read
}

// ExpectedDiskBytes returns how many bytes DiskTest writes for sizeMB with
// the given chunk size. Integer division drops any partial chunk.
func ExpectedDiskBytes(sizeMB uint64, chunkSize int) int64 {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	chunks := sizeMB * mib / uint64(chunkSize)
	return int64(chunks) * int64(chunkSize)
}

// DiskTest writes one random chunk repeatedly to a temporary file until
// roughly SizeMB mebibytes are written, then reads the file back to EOF.
// The file is removed before DiskTest returns, whether or not it failed.
func DiskTest(ctx context.Context, cfg DiskConfig) (stats DiskStats, err error) {
	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	progress := cfg.Progress
	if progress == nil {
		progress = func(int) {}
	}

	data, err := GenerateRandomChunk(cfg.Random, chunkSize)
	if err != nil {
		return stats, err
	}

	f, err := os.CreateTemp(cfg.Dir, diskFilePattern)
	if err != nil {
		return stats, fmt.Errorf("create temp file: %w", err)
	}
	stats.Path = f.Name()

	defer func() {
		if rmErr := removeTempFile(f); rmErr != nil && err == nil {
			err = rmErr
		}
	}()

	chunks := cfg.SizeMB * mib / uint64(chunkSize)
	for i := uint64(0); i < chunks; i++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		n, err := f.Write(data)
		stats.Written += int64(n)
		if err != nil {
			return stats, fmt.Errorf("write %s: %w", stats.Path, err)
		}
		progress(n)
	}

	// os.File has no user-space buffer, so every Write above already reached
	// the kernel and is visible to the reads below without an fsync.
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return stats, fmt.Errorf("rewind %s: %w", stats.Path, err)
	}

	buf := GetBuffer(chunkSize)
	defer PutBuffer(buf)

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		n, err := f.Read(buf)
		stats.Read += int64(n)
		if n > 0 {
			progress(n)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("read %s: %w", stats.Path, err)
		}
	}

	return stats, nil
}
