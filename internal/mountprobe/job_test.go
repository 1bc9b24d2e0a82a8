// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package mountprobe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJobAwaitReturnsResponsiveOnSuccess(t *testing.T) {
	j := newJob("/tmp")
	go func() {
		time.Sleep(10 * time.Millisecond)
		j.finish(true)
	}()

	responsive, finished := j.await(time.Now().Add(time.Second))
	require.True(t, finished)
	require.True(t, responsive)
}

func TestJobAwaitReturnsUnresponsiveOnFailure(t *testing.T) {
	j := newJob("/tmp")
	go func() {
		time.Sleep(10 * time.Millisecond)
		j.finish(false)
	}()

	responsive, finished := j.await(time.Now().Add(time.Second))
	require.True(t, finished)
	require.False(t, responsive)
}

func TestJobAwaitTimesOutWhileWorkerStillRunning(t *testing.T) {
	j := newJob("/hung")
	// No one ever calls j.finish — models a worker stuck in an
	// uninterruptible metadata call.

	start := time.Now()
	responsive, finished := j.await(start.Add(100 * time.Millisecond))
	elapsed := time.Since(start)

	require.False(t, finished)
	require.False(t, responsive)
	require.InDelta(t, float64(100*time.Millisecond), float64(elapsed), float64(150*time.Millisecond))
}

func TestJobAwaitReturnsImmediatelyIfAlreadyFinished(t *testing.T) {
	j := newJob("/tmp")
	j.finish(true)

	start := time.Now()
	responsive, finished := j.await(start.Add(time.Second))
	require.Less(t, time.Since(start), 50*time.Millisecond)
	require.True(t, finished)
	require.True(t, responsive)
}

func TestJobRefcountBookkeeping(t *testing.T) {
	j := newJob("/tmp") // table ref: 1
	require.EqualValues(t, 1, jobRefcount(j))

	j.ref() // worker ref
	j.ref() // waiter ref
	require.EqualValues(t, 3, jobRefcount(j))

	require.EqualValues(t, 2, j.unref())
	require.EqualValues(t, 1, j.unref())
	require.EqualValues(t, 0, j.unref())
}
