package export

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dblp-bibtex/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. Field names follow the CSL-YAML schema so the output can be fed to
// Pandoc and reference managers alongside the BibTeX archive.
type CSLItem struct {
	ID     string    `yaml:"id"`
	Type   string    `yaml:"type"`
	Title  string    `yaml:"title"`
	Author []CSLName `yaml:"author,omitempty"`
	Issued *CSLDate  `yaml:"issued,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// entryHeader captures the type and key of a BibTeX entry ("@article{key,").
var entryHeader = regexp.MustCompile(`^\s*@(\w+)\s*\{\s*([^,\s]+)\s*,`)

// FormatCSL writes items as a CSL-YAML list to w.
func FormatCSL(items []types.ResultItem, w io.Writer) error {
	out := make([]CSLItem, len(items))
	for i, it := range items {
		out[i] = toCSLItem(it)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(out)
}

// toCSLItem converts a ResultItem to a CSLItem. The id and type come from the
// BibTeX header when it parses; otherwise the type defaults to article and
// the id is left empty.
func toCSLItem(it types.ResultItem) CSLItem {
	item := CSLItem{
		Type:  "article",
		Title: it.Title,
	}

	if m := entryHeader.FindStringSubmatch(it.BibTeX); m != nil {
		item.ID = m[2]
		item.Type = cslType(m[1])
	}

	if it.Authors != types.NotAvailable {
		for _, a := range strings.Split(it.Authors, ", ") {
			if n := parseAuthorName(a); n != (CSLName{}) {
				item.Author = append(item.Author, n)
			}
		}
	}

	if y, err := strconv.Atoi(it.Year); err == nil {
		item.Issued = &CSLDate{DateParts: [][]int{{y}}}
	}
	return item
}

// cslType maps a BibTeX entry type to the closest CSL item type.
func cslType(bibType string) string {
	switch strings.ToLower(bibType) {
	case "inproceedings", "conference":
		return "paper-conference"
	case "book":
		return "book"
	case "incollection", "inbook":
		return "chapter"
	case "phdthesis", "mastersthesis":
		return "thesis"
	case "techreport":
		return "report"
	case "misc":
		return "document"
	default:
		return "article"
	}
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
