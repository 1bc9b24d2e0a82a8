// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package searchprovider

import (
	"context"

	"github.com/filemgr/mountprobe/internal/metrics"
)

// batcher accumulates hits and flushes them to a channel once size
// reaches its configured threshold, or on an explicit final flush. It
// is not goroutine-safe; each query owns exactly one batcher, used only
// from the goroutine reading the subprocess's stdout.
type batcher struct {
	ctx     context.Context
	size    int
	pending []Hit
	out     chan<- []Hit
}

func newBatcher(ctx context.Context, size int, out chan<- []Hit) *batcher {
	if size <= 0 {
		size = 1
	}
	return &batcher{ctx: ctx, size: size, out: out}
}

// add appends hit and flushes automatically once pending reaches the
// configured batch size.
func (b *batcher) add(h Hit) {
	b.pending = append(b.pending, h)
	if len(b.pending) >= b.size {
		b.flush("size")
	}
}

// finish flushes whatever remains, regardless of size. Called exactly
// once, when the subprocess's stdout is exhausted.
func (b *batcher) finish() {
	if len(b.pending) > 0 {
		b.flush("final")
	}
}

// flush never blocks past ctx's cancellation: a host that stopped
// reading after cancelling a query must not leave this goroutine
// parked forever on a channel send.
func (b *batcher) flush(trigger string) {
	batch := b.pending
	b.pending = nil

	select {
	case b.out <- batch:
		metrics.SearchHitsEmittedTotal.Add(float64(len(batch)))
		metrics.SearchBatchesEmittedTotal.WithLabelValues(trigger).Inc()
	case <-b.ctx.Done():
	}
}
