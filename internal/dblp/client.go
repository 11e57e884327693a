// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dblp talks to the DBLP search service: it runs publication
// searches, downloads BibTeX records for each hit, and probes reachability.
package dblp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/dblp-bibtex/internal/bibtex"
	"github.com/pdiddy/dblp-bibtex/internal/httputil"
	"github.com/pdiddy/dblp-bibtex/internal/logging"
	"github.com/pdiddy/dblp-bibtex/internal/metrics"
	"github.com/pdiddy/dblp-bibtex/pkg/types"
)

const searchPath = "/search/publ/api"

// Publication is a search hit decorated with its citation record.
type Publication struct {
	types.Hit
	Citation bibtex.Record
}

// Client queries one DBLP deployment. It holds no mutable state and is safe
// for concurrent use.
type Client struct {
	http   *http.Client
	cfg    types.DBLPConfig
	logger *zap.Logger
}

// New returns a Client that sends requests through httpClient using the
// endpoints and timeouts in cfg.
func New(httpClient *http.Client, cfg types.DBLPConfig, logger *zap.Logger) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{http: httpClient, cfg: cfg, logger: logging.OrNop(logger)}
}

// Search runs query against the search API and returns up to maxResults
// publications in upstream order, each with a fetched or synthesized
// citation. Any failure yields an empty slice; the cause is logged only.
func (c *Client) Search(ctx context.Context, query string, maxResults int) []Publication {
	hits, err := c.searchHits(ctx, query, maxResults)
	if err != nil {
		c.logger.Warn("search failed", zap.String("query", query), zap.Error(err))
		return []Publication{}
	}

	pubs := make([]Publication, 0, len(hits))
	for _, h := range hits {
		pubs = append(pubs, Publication{Hit: h, Citation: c.Resolve(ctx, h)})
	}
	c.logger.Debug("search done", zap.String("query", query), zap.Int("hits", len(pubs)))
	return pubs
}

// searchHits issues the search request and decodes at most maxResults hits.
func (c *Client) searchHits(ctx context.Context, query string, maxResults int) ([]types.Hit, error) {
	resp, err := httputil.Get(ctx, c.http, c.searchURL(query, maxResults, true), c.cfg.UserAgent, c.cfg.SearchTimeout)
	metrics.ObserveUpstream(metrics.EndpointSearch, resp.OK(), err)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("search API returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.Unmarshal(resp.Body, &sr); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	raw := sr.Result.Hits.Hit
	if maxResults >= 0 && len(raw) > maxResults {
		raw = raw[:maxResults]
	}
	hits := make([]types.Hit, 0, len(raw))
	for _, h := range raw {
		hits = append(hits, h.Info.toHit())
	}
	return hits, nil
}

// searchURL builds the search endpoint URL. withOffset adds f=0.
func (c *Client) searchURL(query string, maxResults int, withOffset bool) string {
	params := url.Values{
		"q":      {query},
		"h":      {strconv.Itoa(maxResults)},
		"format": {"json"},
	}
	if withOffset {
		params.Set("f", "0")
	}
	return c.cfg.BaseURL + searchPath + "?" + params.Encode()
}

// Resolve returns the upstream record for h when one can be fetched, and a
// synthesized record built from h otherwise.
func (c *Client) Resolve(ctx context.Context, h types.Hit) bibtex.Record {
	rec, ok := c.FetchRecord(ctx, h.SourceURL, h.RecordID)
	if !ok {
		rec = bibtex.Synthesize(h.Title, h.Authors, h.Year, h.SourceURL)
	}
	metrics.Citations.WithLabelValues(rec.Origin.String()).Inc()
	return rec
}
