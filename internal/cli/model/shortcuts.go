// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jobdeck/jobdeck/internal/cli/styles"
	"github.com/jobdeck/jobdeck/internal/shortcuts"
)

// ShortcutsModel is the Bubble Tea model for the interactive shortcut
// browser.
type ShortcutsModel struct {
	help  help.Model
	keys  shortcutsKeyMap
	table table.Model

	status string
	err    error

	ctx      context.Context
	registry *shortcuts.Registry
	theme    *styles.Theme
}

// shortcutsKeyMap defines keybindings for the shortcut browser.
type shortcutsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Reset  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings for the short help view.
func (k shortcutsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Reset, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k shortcutsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Toggle, k.Reset},
		{k.Help, k.Quit},
	}
}

func defaultShortcutsKeyMap() shortcutsKeyMap {
	return shortcutsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "enable/disable"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset to default"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewShortcutsModel creates the shortcut browser model.
func NewShortcutsModel(ctx context.Context, registry *shortcuts.Registry) ShortcutsModel {
	theme := styles.DefaultTheme()
	m := ShortcutsModel{
		help:     help.New(),
		keys:     defaultShortcutsKeyMap(),
		ctx:      ctx,
		registry: registry,
		theme:    theme,
	}
	m.table = styles.NewStyledTable(theme, styles.ShortcutTableColumns(), m.buildRows(), 14)
	return m
}

// Init implements tea.Model.
func (m ShortcutsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ShortcutsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.toggleSelected()
			return m, nil
		case key.Matches(msg, m.keys.Reset):
			m.resetSelected()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ShortcutsModel) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.theme.WarningStyle.Render(m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.theme.Subtle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *ShortcutsModel) selectedID() string {
	row := m.table.SelectedRow()
	if row == nil {
		return ""
	}
	return row[0]
}

func (m *ShortcutsModel) toggleSelected() {
	id := m.selectedID()
	if id == "" {
		return
	}
	enabled := m.registry.IsEnabled(id)
	if err := m.registry.SetEnabled(m.ctx, id, !enabled); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = fmt.Sprintf("%s %s", id, enabledWord(!enabled))
	m.refreshRows()
}

func (m *ShortcutsModel) resetSelected() {
	id := m.selectedID()
	if id == "" {
		return
	}
	if err := m.registry.ResetToDefault(m.ctx, id); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = id + " reset to default"
	m.refreshRows()
}

func (m *ShortcutsModel) refreshRows() {
	cursor := m.table.Cursor()
	m.table.SetRows(m.buildRows())
	m.table.SetCursor(cursor)
}

func (m ShortcutsModel) buildRows() []table.Row {
	defs := m.registry.All()
	rows := make([]table.Row, 0, len(defs))
	for _, def := range defs {
		keys := m.registry.EffectiveKeys(def.ID)
		rows = append(rows, table.Row{
			def.ID,
			def.Category,
			strings.Join(keys, " "),
			enabledWord(m.registry.IsEnabled(def.ID)),
			def.Description,
		})
	}
	return rows
}

func enabledWord(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
