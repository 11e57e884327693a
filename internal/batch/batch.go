// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch runs a list of queries against the search client one after
// another and flattens the results into a single response.
package batch

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/dblp-bibtex/internal/dblp"
	"github.com/pdiddy/dblp-bibtex/internal/logging"
	"github.com/pdiddy/dblp-bibtex/internal/metrics"
	"github.com/pdiddy/dblp-bibtex/pkg/types"
)

// Searcher runs one query and returns decorated publications in upstream
// order. *dblp.Client implements it.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) []dblp.Publication
}

// Orchestrator runs batches sequentially with a fixed pause between queries.
type Orchestrator struct {
	searcher Searcher
	pacing   time.Duration
	logger   *zap.Logger

	// Sleep performs the pacing pause. Tests replace it to count pauses.
	Sleep func(time.Duration)
}

// New returns an Orchestrator that pauses for pacing between queries.
func New(searcher Searcher, pacing time.Duration, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		searcher: searcher,
		pacing:   pacing,
		logger:   logging.OrNop(logger),
		Sleep:    time.Sleep,
	}
}

// Run searches each query in input order and appends its results to one
// list. After every query but the last it pauses for the pacing interval.
// The pause is unconditional and the run cannot be aborted part way. An
// empty query list returns an empty response without touching the network.
func (o *Orchestrator) Run(ctx context.Context, queries []string, maxResults int) types.BatchResponse {
	start := time.Now()
	results := []types.ResultItem{}

	for i, q := range queries {
		pubs := o.searcher.Search(ctx, q, maxResults)
		for _, p := range pubs {
			results = append(results, ToResultItem(p))
		}
		metrics.BatchQueries.Inc()
		o.logger.Info("query done",
			zap.Int("index", i),
			zap.String("query", q),
			zap.Int("results", len(pubs)),
		)

		if i < len(queries)-1 {
			o.Sleep(o.pacing)
		}
	}

	metrics.BatchResults.Add(float64(len(results)))
	metrics.BatchDuration.Observe(time.Since(start).Seconds())
	return types.BatchResponse{Total: len(results), Results: results}
}

// ToResultItem reshapes a publication for callers: authors are joined with
// ", " and a missing author list or year becomes "N/A".
func ToResultItem(p dblp.Publication) types.ResultItem {
	authors := types.NotAvailable
	if len(p.Authors) > 0 {
		authors = strings.Join(p.Authors, ", ")
	}
	year := p.Year
	if year == "" {
		year = types.NotAvailable
	}
	return types.ResultItem{
		Title:   p.Title,
		Authors: authors,
		Year:    year,
		BibTeX:  p.Citation.Text,
	}
}
