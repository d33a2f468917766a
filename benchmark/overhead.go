package benchmark

//go:noinline
func addOne(x uint64) uint64 {
	return x + 1
}

// CallOverhead calls a trivial function n times, feeding each result into
// the next call, and returns the final value (n when starting from 0).
// addOne is never inlined, so the loop pays for a real call every time.
func CallOverhead(n uint64) uint64 {
	var x uint64
	for i := uint64(0); i < n; i++ {
		x = addOne(x)
	}
	return x
}
