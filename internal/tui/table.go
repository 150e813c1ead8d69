package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jeanpaul/assistant/internal/commands"
)

// renderTable lays out a reply table with a rounded border, at most width
// columns wide.
func renderTable(t *commands.Table, theme Theme, width int) string {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Dark)).
		Headers(t.Headers...).
		Rows(t.Rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeader
			}
			return theme.TableCell
		})
	if width > 0 {
		tbl = tbl.Width(width)
	}
	if t.Title == "" {
		return tbl.String()
	}
	return lipgloss.JoinVertical(lipgloss.Left, theme.TableTitle.Render(t.Title), tbl.String())
}
