// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the search pipeline,
// the HTTP API and the CLI.
package types

// NotAvailable is the sentinel used for a missing title, author list or year
// in values returned to callers.
const NotAvailable = "N/A"

// MaxResultsLimit is the largest per-query cap accepted from callers. DBLP
// serves at most 1000 hits per page.
const MaxResultsLimit = 1000

// Hit is one publication match parsed from the upstream search response.
// It lives only for the duration of a request.
type Hit struct {
	// Title is the publication title, or NotAvailable when absent upstream.
	Title string `json:"title" yaml:"title"`

	// Authors lists display names in upstream order. It may be empty.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year as a string, or "" when absent.
	Year string `json:"year,omitempty" yaml:"year,omitempty"`

	// SourceURL is the upstream page of the record, or "".
	SourceURL string `json:"url,omitempty" yaml:"url,omitempty"`

	// RecordID is the canonical upstream record key
	// (e.g. "conf/nips/VaswaniSPUJGKP17"), or "".
	RecordID string `json:"key,omitempty" yaml:"key,omitempty"`
}

// ResultItem is the unit returned to callers and consumed by the exporter.
type ResultItem struct {
	Title   string `json:"title" yaml:"title"`
	Authors string `json:"authors" yaml:"authors"`
	Year    string `json:"year" yaml:"year"`
	BibTeX  string `json:"bibtex" yaml:"bibtex"`
}

// BatchResponse is the flattened result of a multi-query search.
type BatchResponse struct {
	Total   int          `json:"total" yaml:"total"`
	Results []ResultItem `json:"results" yaml:"results"`
}
