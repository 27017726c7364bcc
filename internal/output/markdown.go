package output

import (
	"fmt"
	"strings"

	"github.com/citelens/citelens/internal/search"
)

// MarkdownFormatter renders results as a markdown table.
type MarkdownFormatter struct{}

// FormatResults renders results as Markdown.
func (f *MarkdownFormatter) FormatResults(title string, results []search.Result) (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s\n\n", escapeMarkdownCell(title)))

	if len(results) == 0 {
		sb.WriteString("No matching works.\n")
		return sb.String(), nil
	}

	sb.WriteString("| Title | Year | Citations | ID |\n")
	sb.WriteString("|-------|------|-----------|----|\n")
	for _, r := range results {
		sb.WriteString(fmt.Sprintf("| %s | %s | %d | %s |\n",
			escapeMarkdownCell(r.DisplayName),
			yearLabel(r.PublicationYear),
			r.CitedByCount,
			escapeMarkdownCell(r.ID),
		))
	}
	sb.WriteString(fmt.Sprintf("\n**%s**\n", summary(len(results))))
	return sb.String(), nil
}

func escapeMarkdownCell(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	return strings.ReplaceAll(value, "|", "\\|")
}
