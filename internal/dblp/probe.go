// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dblp

import (
	"context"

	"go.uber.org/zap"

	"github.com/pdiddy/dblp-bibtex/internal/httputil"
	"github.com/pdiddy/dblp-bibtex/internal/metrics"
)

const probeQuery = "test"

// Reachable sends one minimal search request and reports whether it
// returned status 200. Transport failures report false.
func (c *Client) Reachable(ctx context.Context) bool {
	resp, err := httputil.Get(ctx, c.http, c.searchURL(probeQuery, 1, false), c.cfg.UserAgent, c.cfg.ProbeTimeout)
	metrics.ObserveUpstream(metrics.EndpointProbe, resp.OK(), err)
	if err != nil {
		c.logger.Info("upstream unreachable", zap.Error(err))
		return false
	}
	return resp.OK()
}
