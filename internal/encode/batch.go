package encode

import (
	"runtime"

	"github.com/sourcegraph/conc/pool"
)

// ForEach runs fn(i) for every i in [0, n) on a goroutine pool bounded at
// workers. Each invocation must write only to its own index-addressed result
// slot; that is what guarantees output order is input order regardless of the
// concurrency degree. A workers value below 1 uses one goroutine per CPU, a
// value of 1 runs sequentially on the calling goroutine, and every call runs
// the batch to completion.
func ForEach(n, workers int, fn func(int)) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers == 1 || n <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	p := pool.New().WithMaxGoroutines(workers)
	for i := 0; i < n; i++ {
		i := i
		p.Go(func() {
			fn(i)
		})
	}
	p.Wait()
}
