package field

import (
	"runtime"
	"sync"
)

// packChunk is the smallest edge range worth a goroutine when packing.
const packChunk = 4096

// ParallelFor calls fn over disjoint chunks covering [0, n), in parallel
// when n spans more than one chunk of minChunk. fn must only touch its
// own range.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := min(runtime.GOMAXPROCS(0), n/max(minChunk, 1))
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
