// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dblp-bibtex/pkg/types"
)

func TestGet_ReturnsStatusAndBody(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("@article{x,}"))
	}))
	defer ts.Close()

	client, err := NewClient(types.ProxyConfig{})
	require.NoError(t, err)

	resp, err := Get(context.Background(), client, ts.URL, "Mozilla/5.0", time.Second)
	require.NoError(t, err)

	assert.True(t, resp.OK())
	assert.Equal(t, "@article{x,}", string(resp.Body))
	assert.Equal(t, "Mozilla/5.0", gotUA)
}

func TestGet_BodyLimit(t *testing.T) {
	old := MaxBodyBytes
	MaxBodyBytes = 16
	t.Cleanup(func() { MaxBodyBytes = old })

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"under limit", "@article{x,}", false},
		{"exactly at limit", "@article{abcde,}", false},
		{"over limit", "@article{abcdef,}", true},
		{"far over limit", "@article{" + strings.Repeat("x", 4096) + ",}", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			client, err := NewClient(types.ProxyConfig{})
			require.NoError(t, err)

			resp, err := Get(context.Background(), client, ts.URL, "", time.Second)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrBodyTooLarge)
				assert.Empty(t, resp.Body)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(resp.Body))
		})
	}
}

func TestGet_SingleAttemptOnServerError(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client, err := NewClient(types.ProxyConfig{})
	require.NoError(t, err)

	resp, err := Get(context.Background(), client, ts.URL, "", time.Second)
	require.NoError(t, err)

	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGet_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("moved"))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	client, err := NewClient(types.ProxyConfig{})
	require.NoError(t, err)

	resp, err := Get(context.Background(), client, ts.URL+"/old", "", time.Second)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "moved", string(resp.Body))
}

func TestGet_Timeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer ts.Close()
	defer close(release)

	client, err := NewClient(types.ProxyConfig{})
	require.NoError(t, err)

	_, err = Get(context.Background(), client, ts.URL, "", 20*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGet_ConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	addr := ts.URL
	ts.Close()

	client, err := NewClient(types.ProxyConfig{})
	require.NoError(t, err)

	_, err = Get(context.Background(), client, addr, "", time.Second)
	assert.Error(t, err)
}

func TestNewClient_RoutesThroughConfiguredProxy(t *testing.T) {
	var proxiedHost string
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxiedHost = r.Host
		_, _ = w.Write([]byte("via proxy"))
	}))
	defer proxy.Close()

	client, err := NewClient(types.ProxyConfig{HTTP: proxy.URL})
	require.NoError(t, err)

	resp, err := Get(context.Background(), client, "http://upstream.example/search", "", time.Second)
	require.NoError(t, err)

	assert.Equal(t, "via proxy", string(resp.Body))
	assert.Equal(t, "upstream.example", proxiedHost)
}

func TestNewClient_InvalidProxy(t *testing.T) {
	_, err := NewClient(types.ProxyConfig{HTTPS: "http://[::1"})
	assert.Error(t, err)
}
