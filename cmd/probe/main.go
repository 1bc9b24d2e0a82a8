// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Command probe is a small CLI harness around the mount responsiveness
// probe and the search provider, useful for manual testing against a
// real (or deliberately hung) mount point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/filemgr/mountprobe/internal/config"
	"github.com/filemgr/mountprobe/internal/log"
	"github.com/filemgr/mountprobe/internal/mountprobe"
	"github.com/filemgr/mountprobe/internal/searchprovider"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("probe", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML config file (optional)")
	path := fs.String("path", "", "path to probe for responsiveness")
	query := fs.String("search", "", "run a search query instead of a probe")
	timeout := fs.Duration("timeout", 2*time.Second, "probe timeout")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		return 2
	}

	log.Configure(log.Config{Level: cfg.LogLevel, Service: "mountprobe-cli"})
	if err := mountprobe.Configure(cfg.Probe); err != nil {
		fmt.Fprintln(os.Stderr, "mount probe disabled:", err)
	}

	ctx := context.Background()

	if *query != "" {
		return runSearch(ctx, cfg, *query)
	}
	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: probe -path /some/mount [-timeout 2s]  or  probe -search <query>")
		return 2
	}

	responsive := mountprobe.Probe(ctx, *path, *timeout)
	if responsive {
		fmt.Printf("%s: responsive\n", *path)
		return 0
	}
	fmt.Printf("%s: unresponsive\n", *path)
	return 1
}

func runSearch(ctx context.Context, cfg config.Config, text string) int {
	provider := searchprovider.New(cfg.Search, log.Base())
	hits, errs := provider.Start(ctx, searchprovider.Query{Text: text})

	for batch := range hits {
		for _, h := range batch {
			fmt.Printf("%.2f  %s\n", h.Rank, h.Path)
		}
	}
	<-errs
	return 0
}
