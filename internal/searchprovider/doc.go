// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package searchprovider is a thin client around an external line-
// oriented indexer binary ("sc" by default). It contains no original
// algorithms: it spawns the subprocess, scans its stdout, batches the
// resulting hits, and delivers them to the host on a batch/trickle
// schedule. Any failure to run the indexer — missing binary, non-zero
// exit, a broken pipe — ends the query silently rather than surfacing
// an error: the host receives whatever hits were read before the
// failure (none, if the indexer never started), on the assumption that
// other search providers in the host will cover the gap.
package searchprovider
