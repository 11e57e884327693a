// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pdiddy/dblp-bibtex/pkg/types"
)

func TestToCSLItemFetched(t *testing.T) {
	it := types.ResultItem{
		Title:   "Attention is All you Need.",
		Authors: "Ashish Vaswani, Noam Shazeer",
		Year:    "2017",
		BibTeX:  "@inproceedings{DBLP:conf/nips/VaswaniSPUJGKP17,\n  author = {Ashish Vaswani},\n}",
	}

	item := toCSLItem(it)

	if item.ID != "DBLP:conf/nips/VaswaniSPUJGKP17" {
		t.Errorf("ID = %q, want DBLP key", item.ID)
	}
	if item.Type != "paper-conference" {
		t.Errorf("Type = %q, want %q", item.Type, "paper-conference")
	}
	if len(item.Author) != 2 {
		t.Fatalf("len(Author) = %d, want 2", len(item.Author))
	}
	if item.Author[0].Family != "Vaswani" || item.Author[0].Given != "Ashish" {
		t.Errorf("Author[0] = %+v", item.Author[0])
	}
	if item.Issued == nil || item.Issued.DateParts[0][0] != 2017 {
		t.Errorf("Issued = %+v, want 2017", item.Issued)
	}
}

func TestToCSLItemSynthesizedWithoutMetadata(t *testing.T) {
	it := types.ResultItem{
		Title:   "Lost",
		Authors: types.NotAvailable,
		Year:    types.NotAvailable,
		BibTeX:  "@article{Lost_noyear,\n  title={{ Lost }},\n  author={{ Unknown }},\n}",
	}

	item := toCSLItem(it)

	if item.ID != "Lost_noyear" {
		t.Errorf("ID = %q, want %q", item.ID, "Lost_noyear")
	}
	if item.Type != "article" {
		t.Errorf("Type = %q, want article", item.Type)
	}
	if len(item.Author) != 0 {
		t.Errorf("Author = %+v, want none", item.Author)
	}
	if item.Issued != nil {
		t.Errorf("Issued = %+v, want nil", item.Issued)
	}
}

func TestToCSLItemUnparseableHeader(t *testing.T) {
	item := toCSLItem(types.ResultItem{Title: "X", BibTeX: "garbage"})
	if item.ID != "" || item.Type != "article" {
		t.Errorf("got ID=%q Type=%q, want empty id and article", item.ID, item.Type)
	}
}

func TestParseAuthorName(t *testing.T) {
	tests := []struct {
		in   string
		want CSLName
	}{
		{"Ada Lovelace", CSLName{Given: "Ada", Family: "Lovelace"}},
		{"John von Neumann", CSLName{Given: "John von", Family: "Neumann"}},
		{"Plato", CSLName{Literal: "Plato"}},
		{"  ", CSLName{}},
	}
	for _, tt := range tests {
		if got := parseAuthorName(tt.in); got != tt.want {
			t.Errorf("parseAuthorName(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestFormatCSL(t *testing.T) {
	var buf bytes.Buffer
	err := FormatCSL([]types.ResultItem{
		{Title: "One", Authors: "A B", Year: "2001", BibTeX: "@article{one,\n}"},
		{Title: "Two", Authors: "N/A", Year: "N/A", BibTeX: "@book{two,\n}"},
	}, &buf)
	if err != nil {
		t.Fatalf("FormatCSL: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"id: one", "id: two", "type: book", "family: B", "date-parts:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
