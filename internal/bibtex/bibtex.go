// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibtex builds fallback BibTeX entries and carries the outcome of a
// fetch-or-synthesize lookup.
package bibtex

import (
	"fmt"
	"regexp"
	"strings"
)

// EntryMarker is the leading character of every BibTeX entry.
const EntryMarker = "@"

const (
	keyPrefixLen      = 40
	placeholderKey    = "entry"
	placeholderYear   = "noyear"
	placeholderAuthor = "Unknown"
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Origin tells where a Record came from.
type Origin int

const (
	// Fetched records were downloaded verbatim from the upstream service.
	Fetched Origin = iota
	// Synthesized records were generated locally from hit metadata.
	Synthesized
)

// String returns the lowercase name of the origin.
func (o Origin) String() string {
	switch o {
	case Fetched:
		return "fetched"
	case Synthesized:
		return "synthesized"
	default:
		return fmt.Sprintf("origin(%d)", int(o))
	}
}

// Record is a single BibTeX entry together with its origin.
type Record struct {
	Text   string
	Origin Origin
}

// FetchedRecord wraps text downloaded from upstream. The text is kept as-is.
func FetchedRecord(text string) Record {
	return Record{Text: text, Origin: Fetched}
}

// Synthesize produces a well-formed @article entry from hit metadata. It is
// used when no authoritative record can be downloaded. Field values are
// written without escaping.
func Synthesize(title string, authors []string, year, url string) Record {
	var b strings.Builder
	fmt.Fprintf(&b, "@article{%s,\n", CitationKey(title, year))
	fmt.Fprintf(&b, "  title={{ %s }},\n", title)
	fmt.Fprintf(&b, "  author={{ %s }},\n", joinAuthors(authors))
	if year != "" {
		fmt.Fprintf(&b, "  year={{ %s }},\n", year)
	}
	if url != "" {
		fmt.Fprintf(&b, "  url={{ %s }},\n", url)
	}
	b.WriteString("}")
	return Record{Text: b.String(), Origin: Synthesized}
}

// CitationKey derives the entry key: the lowercased title with every run of
// non-alphanumerics collapsed to "_", trimmed, cut to 40 characters, then
// "_" and the year ("noyear" when the year is missing or not all digits).
func CitationKey(title, year string) string {
	if title == "" {
		title = placeholderKey
	}
	base := strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(title), "_"), "_")
	if len(base) > keyPrefixLen {
		base = base[:keyPrefixLen]
	}
	if !isDigits(year) {
		year = placeholderYear
	}
	return base + "_" + year
}

// IsEntry reports whether text looks like a BibTeX entry: non-empty after
// trimming and starting with the entry marker.
func IsEntry(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), EntryMarker)
}

func joinAuthors(authors []string) string {
	present := make([]string, 0, len(authors))
	for _, a := range authors {
		if a != "" {
			present = append(present, a)
		}
	}
	if len(present) == 0 {
		return placeholderAuthor
	}
	return strings.Join(present, " and ")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
