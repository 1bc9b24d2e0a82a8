// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package mountprobe

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/filemgr/mountprobe/internal/config"
	"github.com/filemgr/mountprobe/internal/log"
	"github.com/filemgr/mountprobe/internal/metrics"
)

// Handle stands in for the host's file-handle abstraction. LocalPath
// resolves it to an absolute filesystem path; ok is false for handles
// that denote a non-local resource (e.g. a remote URI), which the probe
// assumes reachable by its own transport and never checks.
type Handle interface {
	LocalPath() (path string, ok bool)
}

// PathHandle is a Handle over a plain local path, for callers that
// already know they have one.
type PathHandle string

// LocalPath implements Handle.
func (p PathHandle) LocalPath() (string, bool) { return string(p), true }

var (
	initOnce  sync.Once
	initTable *table
	initPool  *workerPool
	initCfg   config.ProbeConfig
	initErr   error
)

// Configure performs the one-shot subsystem initialization using cfg.
// It is safe to call concurrently and safe to call more than once: only
// the first call (whether from Configure or from the first Probe) has
// any effect, and every call — including ones that lose the race —
// observes the same memoized result. If Configure is never called
// explicitly, the first Probe call initializes the subsystem with
// config.Defaults().Probe.
func Configure(cfg config.ProbeConfig) error {
	ensureInitialized(cfg)
	return initErr
}

// ensureInitialized returns the memoized table and pool from whichever
// call won the initOnce race, along with the ProbeConfig that call was
// given — not the cfg passed to this particular call, since initOnce
// only ever runs one of them.
func ensureInitialized(cfg config.ProbeConfig) (*table, *workerPool, config.ProbeConfig, error) {
	initOnce.Do(func() {
		initCfg = cfg
		initTable = newTable()
		pool, err := newWorkerPool(cfg.PoolSize)
		if err != nil {
			initErr = err
			return
		}
		initPool = pool
	})
	return initTable, initPool, initCfg, initErr
}

// Probe checks whether path is reachable within timeout. It is a thin
// convenience wrapper over ProbeHandle for callers that already have a
// local path in hand.
func Probe(ctx context.Context, path string, timeout time.Duration) bool {
	return ProbeHandle(ctx, PathHandle(path), timeout)
}

// ProbeHandle is the probe subsystem's entry point; Probe wraps it. It never
// blocks longer than timeout plus the time to acquire the global lock
// twice, regardless of how unresponsive the underlying filesystem is.
func ProbeHandle(ctx context.Context, h Handle, timeout time.Duration) bool {
	logger := log.WithComponentFromContext(ctx, "mountprobe")

	path, ok := h.LocalPath()
	if !ok {
		logger.Debug().Msg("non-local handle, assuming reachable")
		metrics.ProbeOutcomeTotal.WithLabelValues(metrics.OutcomeNonLocal).Inc()
		return true
	}

	start := time.Now()
	tb, pool, cfg, err := ensureInitialized(config.Defaults().Probe)
	if err != nil {
		logger.Error().Err(err).Msg("mount probe subsystem disabled")
		metrics.ProbeOutcomeTotal.WithLabelValues(metrics.OutcomeDisabled).Inc()
		return false
	}

	if timeout == 0 {
		timeout = cfg.DefaultTimeout
	}

	j, err := tb.joinOrCreate(path, pool, logger)
	if err != nil {
		logger.Error().Str(log.FieldPath, path).Msg("worker pool submission failed")
		metrics.ProbeOutcomeTotal.WithLabelValues(metrics.OutcomeSubmissionFailed).Inc()
		return false
	}

	responsive := waitAndCleanup(tb, j, path, start.Add(timeout), logger)

	metrics.ProbeWaitSeconds.Observe(time.Since(start).Seconds())
	outcome := metrics.OutcomeUnresponsive
	if responsive {
		outcome = metrics.OutcomeResponsive
	}
	metrics.ProbeOutcomeTotal.WithLabelValues(outcome).Inc()
	return responsive
}

// waitAndCleanup implements the waiter protocol's back half: block on
// the job, then either clean up the table entry (if the job reached a
// terminal state) or leave it for a later party (if this caller merely
// timed out), and finally drop this caller's own ref.
func waitAndCleanup(tb *table, j *job, path string, deadline time.Time, logger zerolog.Logger) bool {
	responsive, finished := j.await(deadline)
	if !finished {
		logger.Debug().Str(log.FieldPath, path).Msg("timeout")
	} else {
		tb.removeIfSame(path, j, logger)
	}
	j.unref()
	return responsive
}
