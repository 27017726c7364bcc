package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResults(t *testing.T) {
	body := []byte(`{
		"meta": {"count": 2},
		"results": [
			{"id": "https://openalex.org/W2963403868", "display_name": "Attention Is All You Need", "publication_year": 2017, "cited_by_count": 100000},
			{"id": "https://openalex.org/W2", "display_name": "Second", "publication_year": 2020, "cited_by_count": 5}
		]
	}`)

	results, skipped, err := decodeResults(body)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, results, 2)
	assert.Equal(t, Result{
		ID:              "https://openalex.org/W2963403868",
		DisplayName:     "Attention Is All You Need",
		PublicationYear: 2017,
		CitedByCount:    100000,
	}, results[0])
	assert.Equal(t, "Second", results[1].DisplayName)
}

func TestDecodeResults_EmptyList(t *testing.T) {
	results, skipped, err := decodeResults([]byte(`{"results": []}`))
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestDecodeResults_FieldDrift(t *testing.T) {
	body := []byte(`{"results": [
		{"id": "W1", "display_name": null, "publication_year": "2019", "cited_by_count": "many"},
		{"id": 42, "extra": true},
		"not-an-object",
		7
	]}`)

	results, skipped, err := decodeResults(body)
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, results, 2)

	assert.Equal(t, Result{ID: "W1", PublicationYear: 2019}, results[0])
	assert.Equal(t, Result{ID: "42"}, results[1])
}

func TestDecodeResults_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{name: "invalid json", body: `{"results": [`, want: errInvalidJSON},
		{name: "html page", body: `<html>oops</html>`, want: errInvalidJSON},
		{name: "top level array", body: `[]`, want: errNotAnObject},
		{name: "missing results", body: `{"meta": {}}`, want: errMissingResults},
		{name: "results is an object", body: `{"results": {}}`, want: errResultsNoArray},
		{name: "results is null", body: `{"results": null}`, want: errResultsNoArray},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := decodeResults([]byte(tt.body))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
