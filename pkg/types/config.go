// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Config is the complete, immutable process configuration. It is built once
// at startup and handed to every component that talks to the network.
type Config struct {
	Server ServerConfig `json:"server" yaml:"server" mapstructure:"server"`
	DBLP   DBLPConfig   `json:"dblp" yaml:"dblp" mapstructure:"dblp"`
	Proxy  ProxyConfig  `json:"proxy" yaml:"proxy" mapstructure:"proxy"`
	Batch  BatchConfig  `json:"batch" yaml:"batch" mapstructure:"batch"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}

// ServerConfig holds the listen address of the HTTP API.
type ServerConfig struct {
	Host string `json:"host" yaml:"host" mapstructure:"host"`
	Port int    `json:"port" yaml:"port" mapstructure:"port"`
}

// DBLPConfig holds settings for requests to the upstream bibliography service.
type DBLPConfig struct {
	// BaseURL is the scheme and host of the service (e.g. "https://dblp.org").
	// Search, record and probe endpoints are derived from it.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// UserAgent is the User-Agent header sent with every upstream request.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// SearchTimeout bounds a single search request (default 30s).
	SearchTimeout time.Duration `json:"search_timeout" yaml:"search_timeout" mapstructure:"search_timeout"`

	// FetchTimeout bounds a single citation record request (default 20s).
	FetchTimeout time.Duration `json:"fetch_timeout" yaml:"fetch_timeout" mapstructure:"fetch_timeout"`

	// ProbeTimeout bounds the connectivity probe (default 10s).
	ProbeTimeout time.Duration `json:"probe_timeout" yaml:"probe_timeout" mapstructure:"probe_timeout"`
}

// ProxyConfig holds optional outbound proxy URLs, one per scheme.
// Empty values mean a direct connection.
type ProxyConfig struct {
	HTTP  string `json:"http,omitempty" yaml:"http,omitempty" mapstructure:"http"`
	HTTPS string `json:"https,omitempty" yaml:"https,omitempty" mapstructure:"https"`
}

// BatchConfig holds settings for multi-query batches.
type BatchConfig struct {
	// PacingDelay is the fixed pause between consecutive queries (default 1s).
	PacingDelay time.Duration `json:"pacing_delay" yaml:"pacing_delay" mapstructure:"pacing_delay"`

	// DefaultMaxResults is the per-query cap used when a request omits one.
	DefaultMaxResults int `json:"default_max_results" yaml:"default_max_results" mapstructure:"default_max_results"`
}

// LogConfig selects the logger level and encoding.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "json" for production encoding or "console" for development.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}
