// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package mountprobe

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewWorkerPoolRejectsNonPositiveCapacity(t *testing.T) {
	_, err := newWorkerPool(0)
	require.Error(t, err)
	_, err = newWorkerPool(-1)
	require.Error(t, err)
}

func TestTrySubmitRespectsCapacity(t *testing.T) {
	pool, err := newWorkerPool(2)
	require.NoError(t, err)

	release := make(chan struct{})
	defer close(release)

	require.True(t, pool.trySubmit(func() { <-release }))
	require.True(t, pool.trySubmit(func() { <-release }))
	// A third submission must fail fast: no queueing, ever.
	require.False(t, pool.trySubmit(func() { <-release }))
}

func TestTrySubmitReleasesPermitOnCompletion(t *testing.T) {
	pool, err := newWorkerPool(1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	require.True(t, pool.trySubmit(func() { wg.Done() }))
	wg.Wait()

	// Give the goroutine's Release call a moment to land, then confirm
	// the permit is available again.
	require.Eventually(t, func() bool {
		return pool.trySubmit(func() {})
	}, time.Second, time.Millisecond)
}
