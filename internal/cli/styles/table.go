package styles

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// ShortcutTableColumns returns columns for the shortcut listing.
func ShortcutTableColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 18},
		{Title: "Category", Width: 12},
		{Title: "Keys", Width: 16},
		{Title: "Enabled", Width: 8},
		{Title: "Description", Width: 34},
	}
}

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Bold(true)
	t.SetStyles(s)

	return t
}
