// Package output renders search results for the command line.
package output

import (
	"fmt"
	"strings"

	"github.com/citelens/citelens/internal/search"
)

// Format represents an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// Formatter renders the works found for a title.
type Formatter interface {
	FormatResults(title string, results []search.Result) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatYAML), "yml":
		return FormatYAML, nil
	case string(FormatMarkdown), "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

// FormatResults renders results with the formatter for format.
func FormatResults(format Format, title string, results []search.Result) (string, error) {
	if results == nil {
		results = []search.Result{}
	}
	return NewFormatter(format).FormatResults(title, results)
}

func summary(count int) string {
	if count == 1 {
		return "1 work"
	}
	return fmt.Sprintf("%d works", count)
}

func yearLabel(year int) string {
	if year == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", year)
}
