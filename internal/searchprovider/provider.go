// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package searchprovider

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/filemgr/mountprobe/internal/config"
	"github.com/filemgr/mountprobe/internal/log"
	"github.com/filemgr/mountprobe/internal/metrics"
)

// Provider runs queries against an external indexer binary.
type Provider struct {
	cfg    config.SearchConfig
	logger zerolog.Logger
}

// New constructs a Provider. cfg.Binary defaults to "sc" and
// cfg.BatchSize/MaxResults default to 100/500 if zero.
func New(cfg config.SearchConfig, logger zerolog.Logger) *Provider {
	if cfg.Binary == "" {
		cfg.Binary = "sc"
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 500
	}
	return &Provider{cfg: cfg, logger: logger}
}

// Start runs query against the indexer and streams hits back in
// batches. Both returned channels are closed when the query finishes,
// whether that's success, a silent fallback, or cancellation via ctx.
func (p *Provider) Start(ctx context.Context, query Query) (<-chan []Hit, <-chan error) {
	hits := make(chan []Hit)
	errs := make(chan error, 1)

	queryID := uuid.New().String()
	ctx = log.ContextWithJobID(ctx, queryID)
	logger := log.WithComponentFromContext(ctx, "searchprovider").With().
		Str("location", query.Location).
		Logger()

	if strings.TrimSpace(query.Text) == "" {
		logger.Debug().Msg("empty query, nothing to search")
		close(hits)
		close(errs)
		return hits, errs
	}

	binPath, err := exec.LookPath(p.cfg.Binary)
	if err != nil {
		logger.Debug().Str("binary", p.cfg.Binary).Msg("indexer binary not found, falling back silently")
		metrics.SearchFallbackTotal.WithLabelValues("binary_not_found").Inc()
		close(hits)
		close(errs)
		return hits, errs
	}

	cmd := exec.CommandContext(ctx, binPath, "--full-path", "--limit", strconv.Itoa(p.cfg.MaxResults), query.Text)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		logger.Debug().Err(err).Msg("failed to pipe indexer stdout, falling back silently")
		metrics.SearchFallbackTotal.WithLabelValues("pipe_error").Inc()
		close(hits)
		close(errs)
		return hits, errs
	}

	if err := cmd.Start(); err != nil {
		logger.Debug().Err(err).Msg("failed to start indexer, falling back silently")
		metrics.SearchFallbackTotal.WithLabelValues("start_error").Inc()
		close(hits)
		close(errs)
		return hits, errs
	}

	go p.scan(ctx, cmd, stdout, hits, errs, logger)
	return hits, errs
}

func (p *Provider) scan(ctx context.Context, cmd *exec.Cmd, stdout io.Reader, hits chan<- []Hit, errs chan<- error, logger zerolog.Logger) {
	defer close(hits)
	defer close(errs)

	b := newBatcher(ctx, p.cfg.BatchSize, hits)

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		b.add(Hit{Path: line, Rank: defaultRank})
	}

	waitErr := cmd.Wait()
	b.finish()

	if waitErr != nil {
		logger.Debug().Err(waitErr).Msg("indexer exited non-zero, falling back silently")
		metrics.SearchFallbackTotal.WithLabelValues("exit_error").Inc()
		return
	}
	logger.Debug().Msg("query finished")
}
