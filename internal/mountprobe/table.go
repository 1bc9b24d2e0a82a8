// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package mountprobe

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/filemgr/mountprobe/internal/log"
	"github.com/filemgr/mountprobe/internal/metrics"
)

// errSubmissionFailed is returned when the pool could not accept a
// newly-created job. It never crosses the package boundary as an error
// value — the facade collapses it into a plain false, per the error
// taxonomy.
var errSubmissionFailed = errors.New("mountprobe: worker pool rejected submission")

// table is the path-keyed mapping of in-flight jobs, protected by a
// single global mutex. It owns one ref per entry.
type table struct {
	mu   sync.Mutex
	jobs map[string]*job
}

func newTable() *table {
	return &table{jobs: make(map[string]*job)}
}

// joinOrCreate implements the dedup/join protocol. On a hit, it attaches
// the caller to the existing job. On a miss, it creates a job, takes the
// worker and caller refs in addition to the table's own, and attempts to
// submit the worker to pool. Submission attempts are serialized by t.mu,
// so concurrent first-callers for the same path always observe the
// first holder's insertion rather than racing to create two jobs.
func (t *table) joinOrCreate(path string, pool *workerPool, logger zerolog.Logger) (*job, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if existing, ok := t.jobs[path]; ok {
		existing.ref()
		logger.Debug().Str(log.FieldPath, path).Msg("dedup join")
		return existing, nil
	}

	j := newJob(path) // refcount 1: the table
	j.ref()           // refcount 2: the worker, from dispatch to terminal write
	j.ref()           // refcount 3: this caller, as a waiter
	t.jobs[path] = j
	metrics.JobsInFlight.Inc()
	logger.Debug().Str(log.FieldPath, path).Msg("table insertion")

	if !pool.trySubmit(func() { runWorker(j, path) }) {
		delete(t.jobs, path)
		metrics.JobsInFlight.Dec()
		j.unref() // table
		j.unref() // worker that will never run
		j.unref() // this caller, who will not wait after all
		return nil, errSubmissionFailed
	}

	return j, nil
}

// removeIfSame drops the table's entry for path, but only if it still
// points at j — between a waiter's unlock and its re-acquisition of the
// global lock, another caller could have removed and re-created a fresh
// job for the same path. Removing the wrong job would violate I6.
func (t *table) removeIfSame(path string, j *job, logger zerolog.Logger) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur, ok := t.jobs[path]
	if !ok || cur != j {
		return
	}
	delete(t.jobs, path)
	metrics.JobsInFlight.Dec()
	logger.Debug().Str(log.FieldPath, path).Msg("cleanup removal")
	j.unref() // the table's own ref
}
