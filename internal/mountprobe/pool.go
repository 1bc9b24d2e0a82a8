// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package mountprobe

import (
	"fmt"

	"golang.org/x/sync/semaphore"

	"github.com/filemgr/mountprobe/internal/metrics"
)

// workerPool is a fixed-capacity, non-blocking-submit pool. It never
// queues: trySubmit either acquires a permit and launches the worker
// immediately, or reports failure with no side effects. Capacity is
// never grown. A permit is only released when the submitted function
// returns — if the underlying metadata call never returns, the permit
// (and the goroutine holding it) is leaked for the life of the process.
// That leak, bounded by capacity, is the entire point of the design.
type workerPool struct {
	sem *semaphore.Weighted
}

func newWorkerPool(capacity int) (*workerPool, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("mountprobe: pool capacity must be positive, got %d", capacity)
	}
	return &workerPool{sem: semaphore.NewWeighted(int64(capacity))}, nil
}

// trySubmit attempts to acquire a permit and run fn on its own
// goroutine. It reports false immediately if the pool is saturated;
// it never blocks.
func (p *workerPool) trySubmit(fn func()) bool {
	if !p.sem.TryAcquire(1) {
		return false
	}
	metrics.WorkersInUse.Inc()
	go func() {
		fn()
		// Reached only if fn returns. A permanently-stuck worker never
		// gets here, which is exactly what keeps it quarantined.
		p.sem.Release(1)
		metrics.WorkersInUse.Dec()
	}()
	return true
}
