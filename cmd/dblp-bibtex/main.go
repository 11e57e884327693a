// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dblp-bibtex CLI and web server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/dblp-bibtex/internal/batch"
	"github.com/pdiddy/dblp-bibtex/internal/config"
	"github.com/pdiddy/dblp-bibtex/internal/dblp"
	"github.com/pdiddy/dblp-bibtex/internal/httputil"
	"github.com/pdiddy/dblp-bibtex/internal/logging"
	"github.com/pdiddy/dblp-bibtex/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is resolved once before any subcommand runs and never modified.
	cfg    types.Config
	logger *zap.Logger
)

// rootCmd is the base command for the dblp-bibtex CLI.
var rootCmd = &cobra.Command{
	Use:   "dblp-bibtex",
	Short: "Find papers on DBLP and collect their BibTeX entries",
	Long: `dblp-bibtex searches the DBLP computer science bibliography for titles or
keywords and gathers a BibTeX entry for every match. Entries are downloaded
from DBLP when available and synthesized from the search metadata otherwise.

Run "dblp-bibtex serve" for the browser interface and JSON API, or use the
search and check subcommands directly from a terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		c, used, err := config.Load(config.Options{ConfigFile: cfgFile})
		if err != nil {
			return err
		}
		cfg = c

		l, err := logging.New(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return err
		}
		logger = l
		if used != "" {
			logger.Debug("using config file", zap.String("path", used))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dblp-bibtex.yaml or ~/.config/dblp-bibtex/dblp-bibtex.yaml)")
}

// newPipeline builds the DBLP client and batch orchestrator from cfg.
func newPipeline() (*dblp.Client, *batch.Orchestrator, error) {
	httpClient, err := httputil.NewClient(cfg.Proxy)
	if err != nil {
		return nil, nil, fmt.Errorf("building HTTP client: %w", err)
	}
	client := dblp.New(httpClient, cfg.DBLP, logger)
	return client, batch.New(client, cfg.Batch.PacingDelay, logger), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
