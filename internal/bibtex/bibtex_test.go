// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keyPattern = regexp.MustCompile(`^[a-z0-9_]*$`)

func TestCitationKey(t *testing.T) {
	tests := []struct {
		name  string
		title string
		year  string
		want  string
	}{
		{"simple title", "Attention is all you need", "2017", "attention_is_all_you_need_2017"},
		{"punctuation runs collapse", "BERT: Pre-training -- of Deep", "2019", "bert_pre_training_of_deep_2019"},
		{"leading and trailing separators trimmed", "  (Hello) World!  ", "2020", "hello_world_2020"},
		{"missing year", "Deep Residual Learning", "", "deep_residual_learning_noyear"},
		{"non-numeric year", "Deep Residual Learning", "20x6", "deep_residual_learning_noyear"},
		{"empty title uses placeholder", "", "2001", "entry_2001"},
		{"truncated to forty characters", strings.Repeat("abcdefghij", 6), "1999", strings.Repeat("abcdefghij", 4) + "_1999"},
		{"non-ascii letters become separators", "Über Größe", "2010", "ber_gr_e_2010"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CitationKey(tt.title, tt.year)
			assert.Equal(t, tt.want, got)
			assert.Regexp(t, keyPattern, got)
		})
	}
}

func TestSynthesizeLayout(t *testing.T) {
	rec := Synthesize("Attention is all you need", []string{"Ashish Vaswani", "Noam Shazeer"}, "2017", "https://dblp.org/rec/conf/nips/VaswaniSPUJGKP17")

	want := "@article{attention_is_all_you_need_2017,\n" +
		"  title={{ Attention is all you need }},\n" +
		"  author={{ Ashish Vaswani and Noam Shazeer }},\n" +
		"  year={{ 2017 }},\n" +
		"  url={{ https://dblp.org/rec/conf/nips/VaswaniSPUJGKP17 }},\n" +
		"}"
	assert.Equal(t, want, rec.Text)
	assert.Equal(t, Synthesized, rec.Origin)
}

func TestSynthesizeOptionalFields(t *testing.T) {
	rec := Synthesize("Untitled Work", nil, "", "")

	assert.NotContains(t, rec.Text, "year=")
	assert.NotContains(t, rec.Text, "url=")
	assert.Contains(t, rec.Text, "author={{ Unknown }}")
	assert.True(t, strings.HasPrefix(rec.Text, "@article{untitled_work_noyear,"))
}

func TestSynthesizeFiltersEmptyAuthors(t *testing.T) {
	rec := Synthesize("T", []string{"", "Alice", "", "Bob"}, "2000", "")
	assert.Contains(t, rec.Text, "author={{ Alice and Bob }}")

	rec = Synthesize("T", []string{"", ""}, "2000", "")
	assert.Contains(t, rec.Text, "author={{ Unknown }}")
}

func TestSynthesizeDoesNotEscape(t *testing.T) {
	rec := Synthesize("Sets {A} & {B}", []string{"O'Brien & Co"}, "2011", "")
	assert.Contains(t, rec.Text, "title={{ Sets {A} & {B} }},")
	assert.Contains(t, rec.Text, "author={{ O'Brien & Co }},")
}

func TestSynthesizeAlwaysWellFramed(t *testing.T) {
	titles := []string{"", "x", "A: B", "!!!", "Ünïcödé title", strings.Repeat("long ", 40)}
	years := []string{"", "2017", "n/a", "0"}
	urls := []string{"", "https://example.org/rec/1"}
	authorSets := [][]string{nil, {}, {"A"}, {"", "B"}, {"A", "B", "C"}}

	for _, title := range titles {
		for _, year := range years {
			for _, url := range urls {
				for _, authors := range authorSets {
					text := Synthesize(title, authors, year, url).Text
					require.True(t, strings.HasPrefix(text, "@article{"), text)
					require.True(t, strings.HasSuffix(text, "}"), text)
					require.True(t, IsEntry(text))

					key := strings.TrimSuffix(strings.TrimPrefix(strings.SplitN(text, "\n", 2)[0], "@article{"), ",")
					require.Regexp(t, keyPattern, key)
				}
			}
		}
	}
}

func TestIsEntry(t *testing.T) {
	assert.True(t, IsEntry("@inproceedings{x,}"))
	assert.True(t, IsEntry("\n  @article{y,}\n"))
	assert.False(t, IsEntry(""))
	assert.False(t, IsEntry("   "))
	assert.False(t, IsEntry("<html>@</html>"))
}

func TestFetchedRecordKeepsText(t *testing.T) {
	text := "\n@article{k,\n  title = {T}\n}\n"
	rec := FetchedRecord(text)
	assert.Equal(t, text, rec.Text)
	assert.Equal(t, Fetched, rec.Origin)
	assert.Equal(t, "fetched", rec.Origin.String())
	assert.Equal(t, "synthesized", Synthesized.String())
}
