// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dblp

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/dblp-bibtex/internal/bibtex"
	"github.com/pdiddy/dblp-bibtex/internal/httputil"
	"github.com/pdiddy/dblp-bibtex/internal/metrics"
)

// CandidateURLs lists the record URLs to try for a publication, in priority
// order and without duplicates: the page URL with a .bib suffix, the page URL
// with ?view=bibtex, then the two canonical record endpoints for the key.
func (c *Client) CandidateURLs(sourceURL, recordID string) []string {
	var urls []string
	if sourceURL != "" {
		if strings.HasSuffix(sourceURL, ".bib") {
			urls = append(urls, sourceURL)
		} else {
			urls = append(urls, sourceURL+".bib")
		}
		urls = append(urls, sourceURL+"?view=bibtex")
	}
	if recordID != "" {
		urls = append(urls,
			c.cfg.BaseURL+"/rec/bibtex/"+recordID+".bib",
			c.cfg.BaseURL+"/rec/"+recordID+".bib",
		)
	}

	seen := make(map[string]bool, len(urls))
	out := urls[:0]
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// FetchRecord tries each candidate URL once, in order, and returns the first
// body that came back with status 200 and starts with "@" after trimming.
// Transport errors are logged and skipped. ok is false when every candidate
// failed or there were none.
func (c *Client) FetchRecord(ctx context.Context, sourceURL, recordID string) (rec bibtex.Record, ok bool) {
	for _, u := range c.CandidateURLs(sourceURL, recordID) {
		resp, err := httputil.Get(ctx, c.http, u, c.cfg.UserAgent, c.cfg.FetchTimeout)
		accepted := err == nil && resp.OK() && bibtex.IsEntry(string(resp.Body))
		metrics.ObserveUpstream(metrics.EndpointRecord, accepted, err)
		if err != nil {
			c.logger.Debug("record candidate failed", zap.String("url", u), zap.Error(err))
			continue
		}
		if accepted {
			return bibtex.FetchedRecord(string(resp.Body)), true
		}
		c.logger.Debug("record candidate rejected", zap.String("url", u), zap.Int("status", resp.StatusCode))
	}
	return bibtex.Record{}, false
}
