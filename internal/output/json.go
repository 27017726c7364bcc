package output

import (
	"encoding/json"

	"github.com/citelens/citelens/internal/search"
)

// JSONFormatter renders results as the same array the API returns.
type JSONFormatter struct {
	Indent bool
}

// FormatResults renders results as JSON.
func (f *JSONFormatter) FormatResults(_ string, results []search.Result) (string, error) {
	var (
		data []byte
		err  error
	)

	if f.Indent {
		data, err = json.MarshalIndent(results, "", "  ")
	} else {
		data, err = json.Marshal(results)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
