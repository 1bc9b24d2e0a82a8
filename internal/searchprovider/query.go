// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package searchprovider

// Query describes one search request.
type Query struct {
	// Text is passed to the indexer verbatim.
	Text string

	// Location optionally scopes the query to a directory. The indexer
	// this client targets has no --path filter yet, so Location is
	// carried on the type and logged for diagnostics, but does not
	// currently affect which hits come back.
	Location string
}

// Hit is one result line from the indexer.
type Hit struct {
	Path string
	// Rank is a fixed relevance score. The indexer this client talks to
	// has no ranking model of its own; every hit is equally plausible.
	Rank float64
}

const defaultRank = 0.5
