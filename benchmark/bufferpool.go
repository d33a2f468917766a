package benchmark

import (
	"sync"
)

// BufPool is a global sync.Pool of chunk-sized read buffers for the disk phase
var BufPool = sync.Pool{
	New: func() interface{} {
		return make([]byte, DefaultChunkSize)
	},
}

// GetBuffer gets a buffer of length size from the pool
func GetBuffer(size int) []byte {
	buf := BufPool.Get().([]byte)
	if cap(buf) < size {
		return make([]byte, size)
	}
	return buf[:size]
}

// PutBuffer returns a buffer to the pool
func PutBuffer(buf []byte) {
	BufPool.Put(buf)
}
