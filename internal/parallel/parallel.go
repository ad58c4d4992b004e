// Package parallel splits index ranges across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how work is split.
type Config struct {
	Workers  int // Goroutines to use. <= 1 runs on the caller's goroutine.
	MinChunk int // Smallest range handed to one goroutine.
}

// Default uses one worker per available CPU.
func Default() Config {
	return Config{
		Workers:  runtime.GOMAXPROCS(0),
		MinChunk: 4096,
	}
}

// Sequential runs all work on the calling goroutine.
func Sequential() Config {
	return Config{Workers: 1}
}

// Range calls f on disjoint ranges [lo, hi) covering [0, n) and waits for
// all of them. f must be safe to call concurrently on disjoint ranges.
func Range(n int, cfg Config, f func(lo, hi int)) {
	if n <= 0 {
		return
	}
	chunk := max(cfg.MinChunk, 1)
	if cfg.Workers <= 1 || n <= chunk {
		f(0, n)
		return
	}
	chunk = max(chunk, (n+cfg.Workers-1)/cfg.Workers)

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			f(lo, hi)
		}()
	}
	wg.Wait()
}

// For calls f(i) for every i in [0, n).
func For(n int, cfg Config, f func(i int)) {
	Range(n, cfg, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			f(i)
		}
	})
}
