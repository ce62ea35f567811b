package parallel

import (
	"runtime"
	"sync"
)

// PairCount returns the number of unordered pairs over n items.
func PairCount(n int) int {
	return n * (n - 1) / 2
}

type indexedPair struct {
	index int
	a, b  string
}

// ForEachPair invokes fn once for every unordered pair of distinct items,
// fanned out across a worker pool. Pair indices are assigned in a fixed
// order ((0,1), (0,2), ..., (1,2), ...) so callers can write results into a
// preallocated slice of length PairCount(len(items)) without locking.
//
// Each pair is computed independently; results are identical to a
// sequential nested loop regardless of the worker count.
func ForEachPair(items []string, workers int, fn func(pairIndex int, a, b string)) {
	n := len(items)
	if n < 2 {
		return
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pairs := make([]indexedPair, 0, PairCount(n))
	idx := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, indexedPair{index: idx, a: items[i], b: items[j]})
			idx++
		}
	}

	pool := NewWorkerPool(workers)
	defer pool.Close()

	// Chunk the pairs so each task amortizes queue overhead
	chunkSize := (len(pairs) + workers - 1) / workers
	if chunkSize < 1 {
		chunkSize = 1
	}

	var wg sync.WaitGroup
	for start := 0; start < len(pairs); start += chunkSize {
		end := start + chunkSize
		if end > len(pairs) {
			end = len(pairs)
		}
		chunk := pairs[start:end]

		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			for _, p := range chunk {
				fn(p.index, p.a, p.b)
			}
		})
	}
	wg.Wait()
}
