package benchmark

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
)

// diskFilePattern is the os.CreateTemp pattern for the disk phase file.
const diskFilePattern = "sysbench-disk-*.bin"

// GenerateRandomChunk returns size bytes read from src, or from crypto/rand
// when src is nil.
func GenerateRandomChunk(src io.Reader, size int) ([]byte, error) {
	if src == nil {
		src = rand.Reader
	}
	chunk := make([]byte, size)
	if _, err := io.ReadFull(src, chunk); err != nil {
		return nil, fmt.Errorf("generate random chunk: %w", err)
	}
	return chunk, nil
}

// removeTempFile closes and removes f. It is safe to call on a file that
// has already been closed.
func removeTempFile(f *os.File) error {
	_ = f.Close()
	if err := os.Remove(f.Name()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", f.Name(), err)
	}
	return nil
}
