package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/assistant/internal/commands"
)

type item struct {
	title, usage, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

// MenuModel is the ctrl+k command palette.
type MenuModel struct {
	list   list.Model
	active bool
	theme  Theme
}

func NewMenuModel(reg *commands.Registry, theme Theme) MenuModel {
	cmds := reg.Commands()
	items := make([]list.Item, len(cmds))
	for i, c := range cmds {
		items[i] = item{title: c.Name, usage: c.Usage, desc: c.Description}
	}

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = lipgloss.NewStyle().Foreground(theme.Accent).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(theme.Accent).PaddingLeft(1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Foreground(theme.Dark)

	l := list.New(items, d, 60, 14)
	l.Title = "Commands"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).MarginLeft(2)

	return MenuModel{list: l, theme: theme}
}

// Selected returns the highlighted command, if any.
func (m MenuModel) Selected() (item, bool) {
	it, ok := m.list.SelectedItem().(item)
	return it, ok
}

func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" && m.list.FilterState() != list.Filtering {
		m.active = false
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m MenuModel) View() string {
	if !m.active {
		return ""
	}
	return m.theme.MenuBox.Render(m.list.View())
}
