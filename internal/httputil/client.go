// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the outbound HTTP client shared by every
// component that talks to the upstream service.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pdiddy/dblp-bibtex/pkg/types"
)

// MaxBodyBytes caps how much of an upstream response is read into memory.
// Tests lower it.
var MaxBodyBytes int64 = 16 << 20

// ErrBodyTooLarge is returned when a response body exceeds MaxBodyBytes.
var ErrBodyTooLarge = errors.New("response body too large")

// NewClient returns an *http.Client whose transport routes requests through
// the proxies in cfg. The proxy table is resolved once here and never
// changes afterwards. Timeouts are applied per request by Get.
func NewClient(cfg types.ProxyConfig) (*http.Client, error) {
	proxies := map[string]*url.URL{}
	for scheme, raw := range map[string]string{"http": cfg.HTTP, "https": cfg.HTTPS} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing %s proxy %q: %w", scheme, raw, err)
		}
		proxies[scheme] = u
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = func(req *http.Request) (*url.URL, error) {
		return proxies[req.URL.Scheme], nil
	}
	return &http.Client{Transport: transport}, nil
}

// Response is a fully read upstream response.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the status code is 200.
func (r Response) OK() bool { return r.StatusCode == http.StatusOK }

// Get performs exactly one GET against rawURL with the given timeout and
// User-Agent, following redirects, and returns the status and body. Any
// transport failure, including the timeout, is returned as an error, as is
// a body longer than MaxBodyBytes; a truncated body is never returned.
func Get(ctx context.Context, client *http.Client, rawURL, userAgent string, timeout time.Duration) (Response, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Response{}, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	limit := MaxBodyBytes
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return Response{StatusCode: resp.StatusCode}, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(body)) > limit {
		return Response{StatusCode: resp.StatusCode}, fmt.Errorf("%s: %w (limit %d bytes)", rawURL, ErrBodyTooLarge, limit)
	}
	return Response{StatusCode: resp.StatusCode, Body: body}, nil
}
