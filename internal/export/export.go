// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export turns result items into downloadable bibliography files.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/dblp-bibtex/pkg/types"
)

const (
	// Filename is the name under which the archive is offered for download.
	Filename = "references.bib"

	// MediaType is the content type of the archive.
	MediaType = "application/x-bibtex"

	separator = "\n\n"
)

// Join concatenates the citation of every item, in order, separated by one
// blank line. Citation text is copied verbatim.
func Join(items []types.ResultItem) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.BibTeX
	}
	return strings.Join(parts, separator)
}

// WriteTemp writes Join(items) to a new *.bib file in dir (the system temp
// directory when dir is "") and returns its path. The file is left in place;
// removing it is up to the host.
func WriteTemp(dir string, items []types.ResultItem) (string, error) {
	f, err := os.CreateTemp(dir, "references-*.bib")
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}

	if _, err := f.WriteString(Join(items)); err != nil {
		f.Close()
		return "", fmt.Errorf("writing export file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing export file: %w", err)
	}
	return f.Name(), nil
}
