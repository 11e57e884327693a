// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dblp

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/pdiddy/dblp-bibtex/pkg/types"
)

// The search API answers with result.hits.hit, where hit is a list, a single
// object, or absent. Field values are decoded permissively: the custom
// unmarshalers below never return an error, so one odd field cannot fail a
// whole response.

type searchResponse struct {
	Result struct {
		Hits struct {
			Hit hitList `json:"hit"`
		} `json:"hits"`
	} `json:"result"`
}

type rawHit struct {
	Info hitInfo `json:"info"`
}

type hitInfo struct {
	Title   *flexString  `json:"title"`
	Authors authorsField `json:"authors"`
	Year    flexString   `json:"year"`
	URL     flexString   `json:"url"`
	Key     flexString   `json:"key"`
}

// toHit converts the decoded info block into a Hit. A missing title becomes
// the N/A sentinel; an empty title is kept as-is.
func (i hitInfo) toHit() types.Hit {
	title := types.NotAvailable
	if i.Title != nil {
		title = string(*i.Title)
	}
	return types.Hit{
		Title:     title,
		Authors:   i.Authors.Names,
		Year:      string(i.Year),
		SourceURL: string(i.URL),
		RecordID:  string(i.Key),
	}
}

// hitList accepts either a JSON array of hits or a single hit object.
type hitList []rawHit

func (h *hitList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '[':
		var hits []rawHit
		if err := json.Unmarshal(data, &hits); err == nil {
			*h = hits
		}
	case '{':
		var one rawHit
		if err := json.Unmarshal(data, &one); err == nil {
			*h = hitList{one}
		}
	}
	return nil
}

// flexString decodes a JSON string or number into its textual form. Any
// other value (null, bool, object, array) decodes to "".
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch {
	case data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err == nil {
			*s = flexString(v)
		}
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(data, &n); err == nil {
			*s = flexString(formatNumber(n))
		}
	}
	return nil
}

// formatNumber renders integral numbers without a fractional part, so a
// year sent as 2017 or 2017.0 both become "2017".
func formatNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := n.Float64(); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return n.String()
}

// authorShape tags which upstream representation the author field used.
type authorShape int

const (
	authorsAbsent authorShape = iota
	authorsList
	authorsObject
	authorsText
)

// authorsField is the normalized "authors" block: the shape it arrived in
// and the flat ordered list of display names.
type authorsField struct {
	Shape authorShape
	Names []string
}

func (a *authorsField) UnmarshalJSON(data []byte) error {
	var block struct {
		Author json.RawMessage `json:"author"`
	}
	if err := json.Unmarshal(data, &block); err != nil {
		return nil
	}
	a.Shape, a.Names = normalizeAuthors(block.Author)
	return nil
}

// normalizeAuthors flattens the author value into display names. Each
// representation has exactly one case; anything else yields no names.
func normalizeAuthors(raw json.RawMessage) (authorShape, []string) {
	switch shapeOf(raw) {
	case authorsList:
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return authorsList, nil
		}
		var names []string
		for _, item := range items {
			name := authorName(item)
			if name != "" {
				names = append(names, name)
			}
		}
		return authorsList, names
	case authorsObject:
		if name := objectName(raw); name != "" {
			return authorsObject, []string{name}
		}
		return authorsObject, nil
	case authorsText:
		var s flexString
		_ = s.UnmarshalJSON(raw)
		if s != "" {
			return authorsText, []string{string(s)}
		}
		return authorsText, nil
	default:
		return authorsAbsent, nil
	}
}

func shapeOf(raw json.RawMessage) authorShape {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return authorsAbsent
	}
	switch c := raw[0]; {
	case c == '[':
		return authorsList
	case c == '{':
		return authorsObject
	case c == '"' || c == '-' || (c >= '0' && c <= '9'):
		return authorsText
	default:
		return authorsAbsent
	}
}

// authorName reads one list element, which is either an author object or a
// bare string.
func authorName(raw json.RawMessage) string {
	if shapeOf(raw) == authorsObject {
		return objectName(raw)
	}
	var s flexString
	_ = s.UnmarshalJSON(raw)
	return string(s)
}

// objectName returns the "text" member of an author object
// ({"@pid": "...", "text": "Ashish Vaswani"}).
func objectName(raw json.RawMessage) string {
	var obj struct {
		Text flexString `json:"text"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	return string(obj.Text)
}
