package output

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/citelens/citelens/internal/search"
)

// maxTitleWidth wraps long display names in table cells.
const maxTitleWidth = 60

// TableFormatter renders results as an ASCII table.
type TableFormatter struct{}

// FormatResults renders results as a table.
func (f *TableFormatter) FormatResults(title string, results []search.Result) (string, error) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"#", "Title", "Year", "Citations", "ID"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: maxTitleWidth},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	for i, r := range results {
		t.AppendRow(table.Row{
			i + 1,
			r.DisplayName,
			yearLabel(r.PublicationYear),
			r.CitedByCount,
			r.ID,
		})
	}

	t.AppendFooter(table.Row{"", summary(len(results)), "", "", ""})

	return t.Render(), nil
}
