package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dblp-bibtex/internal/export"
	"github.com/pdiddy/dblp-bibtex/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search DBLP and print BibTeX for every match",
	Long: `Search runs each query against DBLP in order, pausing between queries,
and writes one BibTeX entry per match. Queries come from the arguments and
from --file (one per line, blank lines skipped).

Formats: bibtex (entries separated by blank lines, the same content the web
download produces), json (the API search response), yaml (CSL-YAML for
Pandoc and reference managers).`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("file", "", "read queries from a file, one per line")
	searchCmd.Flags().Int("max-results", 0, "maximum results per query (default from config, 10)")
	searchCmd.Flags().String("format", "bibtex", "output format: bibtex, json, or yaml")
	searchCmd.Flags().String("out", "", "write output to a file instead of stdout")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	queries := append([]string(nil), args...)
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		fromFile, err := readQueries(path)
		if err != nil {
			return err
		}
		queries = append(queries, fromFile...)
	}
	if len(queries) == 0 {
		return fmt.Errorf("provide one or more queries as arguments or with --file")
	}

	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults == 0 {
		maxResults = cfg.Batch.DefaultMaxResults
	}
	if err := checkMaxResults(maxResults); err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "bibtex", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q (want bibtex, json, or yaml)", format)
	}

	_, orchestrator, err := newPipeline()
	if err != nil {
		return err
	}
	resp := orchestrator.Run(context.Background(), queries, maxResults)
	fmt.Fprintf(os.Stderr, "Found %d result(s) for %d quer(y/ies)\n", resp.Total, len(queries))

	var w io.Writer = os.Stdout
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}
	return writeResults(w, resp, format)
}

// checkMaxResults applies the same 1..1000 range as the HTTP API.
func checkMaxResults(n int) error {
	if n < 1 || n > types.MaxResultsLimit {
		return fmt.Errorf("--max-results must be between 1 and %d, got %d", types.MaxResultsLimit, n)
	}
	return nil
}

// readQueries returns the non-blank, trimmed lines of path.
func readQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening query file: %w", err)
	}
	defer f.Close()

	var queries []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			queries = append(queries, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	return queries, nil
}

func writeResults(w io.Writer, resp types.BatchResponse, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case "yaml":
		return export.FormatCSL(resp.Results, w)
	default:
		if len(resp.Results) == 0 {
			return nil
		}
		_, err := fmt.Fprintln(w, export.Join(resp.Results))
		return err
	}
}
