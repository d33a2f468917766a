package benchmark

// memoryStride is the distance in bytes between the positions the memory
// phase touches.
const memoryStride = 64

const mib = 1024 * 1024

// MemoryTest allocates sizeMB mebibytes, writes offset%256 to every 64th
// byte, then reads the same bytes back and returns their sum. The sum keeps
// the read pass from being optimised away.
func MemoryTest(sizeMB uint64) uint64 {
	size := sizeMB * mib
	buf := make([]byte, size)

	for i := uint64(0); i < size; i += memoryStride {
		buf[i] = byte(i % 256)
	}

	var sum uint64
	for i := uint64(0); i < size; i += memoryStride {
		sum += uint64(buf[i])
	}
	return sum
}
