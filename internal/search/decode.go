package search

import (
	"errors"

	"github.com/tidwall/gjson"
)

var (
	errInvalidJSON    = errors.New("body is not valid JSON")
	errNotAnObject    = errors.New("expected a JSON object")
	errMissingResults = errors.New("missing \"results\" field")
	errResultsNoArray = errors.New("\"results\" is not an array")
)

// decodeResults extracts the ordered result list from a works response body.
// Records that are not JSON objects are skipped and counted; fields that are
// missing or carry an unexpected type decode to their zero value.
func decodeResults(body []byte) ([]Result, int, error) {
	if !gjson.ValidBytes(body) {
		return nil, 0, errInvalidJSON
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, 0, errNotAnObject
	}

	records := root.Get("results")
	if !records.Exists() {
		return nil, 0, errMissingResults
	}
	if !records.IsArray() {
		return nil, 0, errResultsNoArray
	}

	results := make([]Result, 0, len(records.Array()))
	skipped := 0
	records.ForEach(func(_, record gjson.Result) bool {
		if !record.IsObject() {
			skipped++
			return true
		}
		results = append(results, Result{
			ID:              stringField(record.Get("id")),
			DisplayName:     stringField(record.Get("display_name")),
			PublicationYear: intField(record.Get("publication_year")),
			CitedByCount:    intField(record.Get("cited_by_count")),
		})
		return true
	})

	return results, skipped, nil
}

func stringField(value gjson.Result) string {
	switch value.Type {
	case gjson.String, gjson.Number:
		return value.String()
	default:
		return ""
	}
}

// intField accepts numbers and numeric strings ("2017").
func intField(value gjson.Result) int {
	switch value.Type {
	case gjson.Number, gjson.String:
		return int(value.Int())
	default:
		return 0
	}
}
