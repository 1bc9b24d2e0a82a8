// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package mountprobe answers one question without ever blocking the
// caller past its own timeout: is this path still reachable?
//
// The metadata call used to answer it can enter uninterruptible kernel
// sleep against a dead filesystem and never return. mountprobe copes by
// running that call on a bounded worker pool, letting the worker leak
// permanently if it must, and joining concurrent callers for the same
// path onto a single in-flight job rather than spawning one worker per
// caller. See [Probe] for the entry point.
package mountprobe
