package output

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderTable writes rows to stdout as an ASCII table under the given header.
func RenderTable(header []string, rows [][]interface{}) {
	w := table.NewWriter()
	w.SetOutputMirror(os.Stdout)

	h := make(table.Row, len(header))
	for i, col := range header {
		h[i] = col
	}
	w.AppendHeader(h)

	for _, row := range rows {
		w.AppendRow(table.Row(row))
	}
	w.Render()
}
