// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package mountprobe

import (
	"sync"

	"github.com/filemgr/mountprobe/internal/config"
)

// resetForTest undoes the one-shot initialization so each test gets a
// fresh table and pool. Production code never calls this: the whole
// point of initOnce is that it fires exactly once per process.
func resetForTest() {
	initOnce = sync.Once{}
	initTable = nil
	initPool = nil
	initCfg = config.ProbeConfig{}
	initErr = nil
}

// jobRefcount exposes a job's current refcount for assertions.
func jobRefcount(j *job) int32 {
	return j.refcount.Load()
}
