// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads the process configuration from defaults, an optional
// YAML file, an optional .env file, and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pdiddy/dblp-bibtex/pkg/types"
)

// EnvPrefix prefixes every environment override, e.g. DBLP_BIBTEX_SERVER_PORT.
const EnvPrefix = "DBLP_BIBTEX"

// Options select where configuration is read from. The zero value searches
// the default locations.
type Options struct {
	// ConfigFile is an explicit YAML file. When empty, dblp-bibtex.yaml is
	// looked up in the working directory and ~/.config/dblp-bibtex/.
	ConfigFile string

	// EnvFile is loaded into the environment before reading variables.
	// Defaults to ".env"; a missing file is not an error.
	EnvFile string
}

// Defaults returns the built-in configuration.
func Defaults() types.Config {
	return types.Config{
		Server: types.ServerConfig{Host: "0.0.0.0", Port: 8000},
		DBLP: types.DBLPConfig{
			BaseURL:       "https://dblp.org",
			UserAgent:     "Mozilla/5.0",
			SearchTimeout: 30 * time.Second,
			FetchTimeout:  20 * time.Second,
			ProbeTimeout:  10 * time.Second,
		},
		Batch: types.BatchConfig{
			PacingDelay:       time.Second,
			DefaultMaxResults: 10,
		},
		Log: types.LogConfig{Level: "info", Format: "console"},
	}
}

// Load builds and validates the configuration. It returns the resolved
// config and the path of the YAML file used, if any.
func Load(opts Options) (types.Config, string, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return types.Config{}, "", err
	}

	v := viper.New()
	setDefaults(v, Defaults())

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("dblp-bibtex")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "dblp-bibtex"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Conventional proxy variables apply when no prefixed override is set.
	_ = v.BindEnv("proxy.http", EnvPrefix+"_PROXY_HTTP", "HTTP_PROXY", "http_proxy")
	_ = v.BindEnv("proxy.https", EnvPrefix+"_PROXY_HTTPS", "HTTPS_PROXY", "https_proxy")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, "", fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, "", fmt.Errorf("decoding config: %w", err)
	}
	cfg.DBLP.BaseURL = strings.TrimRight(cfg.DBLP.BaseURL, "/")

	if err := Validate(cfg); err != nil {
		return types.Config{}, "", fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, v.ConfigFileUsed(), nil
}

func loadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func setDefaults(v *viper.Viper, d types.Config) {
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("dblp.base_url", d.DBLP.BaseURL)
	v.SetDefault("dblp.user_agent", d.DBLP.UserAgent)
	v.SetDefault("dblp.search_timeout", d.DBLP.SearchTimeout)
	v.SetDefault("dblp.fetch_timeout", d.DBLP.FetchTimeout)
	v.SetDefault("dblp.probe_timeout", d.DBLP.ProbeTimeout)
	v.SetDefault("proxy.http", d.Proxy.HTTP)
	v.SetDefault("proxy.https", d.Proxy.HTTPS)
	v.SetDefault("batch.pacing_delay", d.Batch.PacingDelay)
	v.SetDefault("batch.default_max_results", d.Batch.DefaultMaxResults)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Validate returns an error describing an invalid setting in cfg, or nil.
func Validate(cfg types.Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", cfg.Server.Port)
	}
	if err := validateURL("dblp.base_url", cfg.DBLP.BaseURL); err != nil {
		return err
	}
	for key, d := range map[string]time.Duration{
		"dblp.search_timeout": cfg.DBLP.SearchTimeout,
		"dblp.fetch_timeout":  cfg.DBLP.FetchTimeout,
		"dblp.probe_timeout":  cfg.DBLP.ProbeTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", key, d)
		}
	}
	if cfg.Batch.PacingDelay < 0 {
		return fmt.Errorf("batch.pacing_delay must not be negative, got %s", cfg.Batch.PacingDelay)
	}
	if cfg.Batch.DefaultMaxResults < 1 {
		return fmt.Errorf("batch.default_max_results must be at least 1, got %d", cfg.Batch.DefaultMaxResults)
	}
	if cfg.Proxy.HTTP != "" {
		if err := validateURL("proxy.http", cfg.Proxy.HTTP); err != nil {
			return err
		}
	}
	if cfg.Proxy.HTTPS != "" {
		if err := validateURL("proxy.https", cfg.Proxy.HTTPS); err != nil {
			return err
		}
	}
	return nil
}

func validateURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s %q must include scheme and host", key, raw)
	}
	return nil
}
