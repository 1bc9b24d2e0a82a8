// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package mountprobe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filemgr/mountprobe/internal/log"
)

func TestJoinOrCreateMissCreatesAndDispatches(t *testing.T) {
	tb := newTable()
	pool, err := newWorkerPool(3)
	require.NoError(t, err)

	release := make(chan struct{})
	origStat := statFunc
	statFunc = func(string) error {
		<-release
		return nil
	}
	defer func() { statFunc = origStat }()

	j, err := tb.joinOrCreate("/a", pool, log.Base())
	require.NoError(t, err)
	require.NotNil(t, j)
	require.EqualValues(t, 3, jobRefcount(j)) // table + worker + this caller

	close(release)
	j.mu.Lock()
	for !j.threadFinished {
		j.cond.Wait()
	}
	j.mu.Unlock()
}

func TestJoinOrCreateHitJoinsExistingJob(t *testing.T) {
	tb := newTable()
	pool, err := newWorkerPool(3)
	require.NoError(t, err)

	release := make(chan struct{})
	defer close(release)
	origStat := statFunc
	statFunc = func(string) error { <-release; return nil }
	defer func() { statFunc = origStat }()

	first, err := tb.joinOrCreate("/a", pool, log.Base())
	require.NoError(t, err)

	second, err := tb.joinOrCreate("/a", pool, log.Base())
	require.NoError(t, err)

	require.Same(t, first, second)
	require.EqualValues(t, 4, jobRefcount(first)) // table + worker + 2 waiters
}

func TestJoinOrCreateSubmissionFailureLeavesNoTrace(t *testing.T) {
	tb := newTable()
	pool, err := newWorkerPool(1)
	require.NoError(t, err)

	// Saturate the pool's single permit first.
	release := make(chan struct{})
	defer close(release)
	require.True(t, pool.trySubmit(func() { <-release }))

	j, err := tb.joinOrCreate("/b", pool, log.Base())
	require.Error(t, err)
	require.Nil(t, j)
	require.Empty(t, tb.jobs)
}

func TestRemoveIfSameOnlyRemovesMatchingJob(t *testing.T) {
	tb := newTable()
	pool, err := newWorkerPool(2)
	require.NoError(t, err)

	origStat := statFunc
	statFunc = func(string) error { return nil }
	defer func() { statFunc = origStat }()

	j, err := tb.joinOrCreate("/c", pool, log.Base())
	require.NoError(t, err)

	// Simulate a stale job no longer in the table.
	stale := newJob("/c")
	tb.removeIfSame("/c", stale, log.Base())
	require.Contains(t, tb.jobs, "/c")

	tb.removeIfSame("/c", j, log.Base())
	require.NotContains(t, tb.jobs, "/c")
}
