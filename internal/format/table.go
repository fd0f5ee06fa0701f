package format

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Tabular is implemented by outputs that can be shown as a table.
type Tabular interface {
	TableHeaders() []string
	TableRows() [][]string
}

var (
	tableHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCell   = lipgloss.NewStyle().Padding(0, 1)
	tableBorder = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "250", Dark: "240"})
)

func WriteTable(w io.Writer, t Tabular) error {
	rows := t.TableRows()
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No available tickets")
		return err
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorder).
		Headers(t.TableHeaders()...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeader
			}
			return tableCell
		})
	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}
