package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/assistant/internal/commands"
	"github.com/jeanpaul/assistant/internal/history"
)

const (
	promptText = "Enter a command >>> "
	headerH    = 5
	inputH     = 3
	footerH    = 1
	menuH      = 16
)

type Model struct {
	width, height int
	viewport      viewport.Model
	input         textinput.Model
	menu          MenuModel
	renderer      *glamour.TermRenderer
	theme         Theme

	reg     *commands.Registry
	session *commands.Session
	ctx     context.Context

	blocks   []string
	history  *history.History
	histPos  int
	quitting bool
}

type Options struct {
	Theme Theme
	// History is recalled with up/down. Nil keeps an in-memory one.
	History *history.History
}

func NewModel(ctx context.Context, reg *commands.Registry, session *commands.Session, opts Options) Model {
	theme := opts.Theme
	if theme.Name == "" {
		theme = NewTheme("")
	}
	hist := opts.History
	if hist == nil {
		hist = history.New("", 0)
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "type 'help' or press ctrl+k"
	ti.ShowSuggestions = true
	ti.SetSuggestions(reg.Names())
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(theme.Dim)
	ti.TextStyle = lipgloss.NewStyle().Foreground(White)
	ti.CompletionStyle = lipgloss.NewStyle().Foreground(theme.Dark)
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)

	m := Model{
		viewport: vp,
		input:    ti,
		menu:     NewMenuModel(reg, theme),
		renderer: r,
		theme:    theme,
		reg:      reg,
		session:  session,
		ctx:      ctx,
		history:  hist,
		histPos:  hist.Len(),
	}
	m.blocks = append(m.blocks, theme.Reply.Render(
		"Welcome to the Assistant Bot!\nType 'help' for a list of commands, or press ctrl+k to browse them."))
	m.rebuildView()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnableMouseCellMotion)
}

func (m *Model) layout() {
	h := m.height - headerH - inputH - footerH
	if m.menu.active {
		h -= menuH
	}
	if h < 3 {
		h = 3
	}
	m.viewport.Width = m.width - 2
	m.viewport.Height = h
	m.input.Width = m.width - len(promptText) - 6
	m.menu.list.SetWidth(m.width - 6)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.rebuildView()
		return m, nil

	case tea.KeyMsg:
		if m.menu.active {
			return m.updateMenu(msg)
		}
		switch msg.String() {
		case "ctrl+c":
			return m.run("exit")
		case "ctrl+k":
			m.menu.active = true
			m.layout()
			return m, nil
		case "enter":
			line := m.input.Value()
			m.input.Reset()
			return m.run(line)
		case "up":
			m.recall(-1)
			return m, nil
		case "down":
			m.recall(1)
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" && m.menu.list.FilterState() != list.Filtering {
		it, ok := m.menu.Selected()
		m.menu.active = false
		m.layout()
		if ok {
			// Commands with arguments are pre-filled for editing.
			if it.usage == it.title {
				return m.run(it.title)
			}
			m.input.SetValue(it.title + " ")
			m.input.CursorEnd()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	if !m.menu.active {
		m.layout()
	}
	return m, cmd
}

// run dispatches one line and appends the echo and reply to the scrollback.
func (m Model) run(line string) (tea.Model, tea.Cmd) {
	m.history.Add(line)
	m.histPos = m.history.Len()

	reply := m.reg.Dispatch(m.ctx, m.session, line)
	m.blocks = append(m.blocks, m.theme.Echo.Render(promptText+line)+"\n"+m.renderReply(reply))
	m.rebuildView()
	if reply.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) recall(step int) {
	lines := m.history.Lines()
	if len(lines) == 0 {
		return
	}
	m.histPos += step
	if m.histPos < 0 {
		m.histPos = 0
	}
	if m.histPos >= len(lines) {
		m.histPos = len(lines)
		m.input.SetValue("")
		return
	}
	m.input.SetValue(lines[m.histPos])
	m.input.CursorEnd()
}

func (m *Model) renderReply(r commands.Reply) string {
	switch {
	case r.Status == commands.StatusError:
		return m.theme.Error.Render(r.Text)
	case r.Markdown != "" && m.renderer != nil:
		if out, err := m.renderer.Render(r.Markdown); err == nil {
			return strings.TrimRight(out, "\n")
		}
	case r.Table != nil:
		out := renderTable(r.Table, m.theme, 0)
		if r.Status == commands.StatusNotice {
			return m.theme.Notice.Render(r.Text) + "\n" + out
		}
		return out
	case r.Status == commands.StatusNotice:
		return m.theme.Notice.Render(r.Text)
	}
	return m.theme.Reply.Render(r.Text)
}

func (m *Model) rebuildView() {
	sep := m.theme.Separator.Render(strings.Repeat("─", max(m.viewport.Width-2, 10)))
	wasAtBottom := m.viewport.AtBottom()
	m.viewport.SetContent(strings.Join(m.blocks, "\n"+sep+"\n"))
	if wasAtBottom || len(m.blocks) <= 1 {
		m.viewport.GotoBottom()
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	status := fmt.Sprintf("%d contacts · %d notes", m.session.Book.Len(), m.session.Notes.Len())
	header := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Banner.Render(strings.Trim(Banner, "\n")),
		m.theme.StatusBar.Render(status),
	)

	input := m.theme.InputBox.
		Width(max(m.width-4, 20)).
		Render(m.theme.Prompt.Render(promptText) + m.input.View())

	help := m.theme.Help.Render("Enter: run  •  Tab: complete  •  ctrl+k: commands  •  ↑/↓: history  •  ctrl+c: save & quit")

	view := lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		input,
		lipgloss.NewStyle().PaddingLeft(2).Render(help),
	)
	if m.menu.active {
		return lipgloss.JoinVertical(lipgloss.Left, view, m.menu.View())
	}
	return view
}

// Run starts the full-screen program and blocks until the user quits. The
// history is saved on the way out.
func Run(ctx context.Context, reg *commands.Registry, session *commands.Session, opts Options) error {
	m := NewModel(ctx, reg, session, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if serr := m.history.Save(); err == nil {
		err = serr
	}
	return err
}
