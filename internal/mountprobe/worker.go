// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package mountprobe

import (
	"os"

	"github.com/filemgr/mountprobe/internal/log"
)

// statFunc performs the (possibly indefinitely blocking) metadata call
// against path. It is a package variable, not a free function, so tests
// can substitute a call that never returns or one with a controlled
// latency, without needing a real hung filesystem.
var statFunc = func(path string) error {
	_, err := os.Stat(path)
	return err
}

// runWorker is the body dispatched onto the pool. At most one of these
// ever runs per job (invariant I2): the job is only ever submitted once,
// at creation, under the table's lock.
func runWorker(j *job, path string) {
	logger := log.WithComponent("mountprobe")
	logger.Debug().Str(log.FieldPath, path).Msg("worker start")

	err := statFunc(path)
	j.finish(err == nil)

	logger.Debug().
		Str(log.FieldPath, path).
		Str(log.FieldOutcome, j.status.String()).
		Msg("worker completion")

	j.unref()
}
