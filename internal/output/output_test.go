package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/citelens/citelens/internal/search"
)

var sampleResults = []search.Result{
	{
		ID:              "https://openalex.org/W2963403868",
		DisplayName:     "Attention Is All You Need",
		PublicationYear: 2017,
		CitedByCount:    100000,
	},
	{
		ID:          "https://openalex.org/W1",
		DisplayName: "Undated | Preprint",
	},
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("table")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	format, err = ParseFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, format)

	format, err = ParseFormat("yml")
	require.NoError(t, err)
	require.Equal(t, FormatYAML, format)

	format, err = ParseFormat("md")
	require.NoError(t, err)
	require.Equal(t, FormatMarkdown, format)

	format, err = ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	_, err = ParseFormat("csv")
	require.Error(t, err)
}

func TestFormatResultsJSONMatchesAPIShape(t *testing.T) {
	rendered, err := FormatResults(FormatJSON, "Attention", sampleResults)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(rendered), &decoded))
	require.Len(t, decoded, 2)
	require.Equal(t, "Attention Is All You Need", decoded[0]["display_name"])
	require.EqualValues(t, 2017, decoded[0]["publication_year"])
	require.EqualValues(t, 100000, decoded[0]["cited_by_count"])
}

func TestFormatResultsJSONEmptyIsArray(t *testing.T) {
	rendered, err := FormatResults(FormatJSON, "Nothing", nil)
	require.NoError(t, err)
	require.Equal(t, "[]", rendered)
}

func TestFormatResultsYAML(t *testing.T) {
	rendered, err := FormatResults(FormatYAML, "Attention", sampleResults)
	require.NoError(t, err)

	var doc struct {
		Title   string          `yaml:"title"`
		Count   int             `yaml:"count"`
		Results []search.Result `yaml:"results"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(rendered), &doc))
	require.Equal(t, "Attention", doc.Title)
	require.Equal(t, 2, doc.Count)
	require.Equal(t, sampleResults, doc.Results)
}

func TestFormatResultsTable(t *testing.T) {
	rendered, err := FormatResults(FormatTable, "Attention", sampleResults)
	require.NoError(t, err)

	require.Contains(t, rendered, "Attention Is All You Need")
	require.Contains(t, rendered, "2017")
	require.Contains(t, rendered, "100000")
	upper := strings.ToUpper(rendered)
	require.Contains(t, upper, "2 WORKS")
	require.Contains(t, upper, "CITATIONS")
}

func TestFormatResultsTableEmpty(t *testing.T) {
	rendered, err := FormatResults(FormatTable, "Nothing", []search.Result{})
	require.NoError(t, err)
	require.Contains(t, strings.ToUpper(rendered), "0 WORKS")
}

func TestMarkdownEscaping(t *testing.T) {
	rendered, err := FormatResults(FormatMarkdown, "Pipes | Everywhere", sampleResults)
	require.NoError(t, err)

	require.Contains(t, rendered, "## Pipes \\| Everywhere")
	require.Contains(t, rendered, "| Undated \\| Preprint | - | 0 |")
	require.Contains(t, rendered, "**2 works**")
}

func TestMarkdownNoResults(t *testing.T) {
	rendered, err := FormatResults(FormatMarkdown, "Nothing", nil)
	require.NoError(t, err)
	require.Contains(t, rendered, "No matching works.")
}

func TestSummary(t *testing.T) {
	require.Equal(t, "1 work", summary(1))
	require.Equal(t, "3 works", summary(3))
	require.Equal(t, "-", yearLabel(0))
}
