package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/assistant/internal/commands"
	"github.com/jeanpaul/assistant/internal/config"
	"github.com/jeanpaul/assistant/internal/history"
	"github.com/jeanpaul/assistant/internal/storage"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	st, err := storage.Open(cfg.StorageOptions(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	m := NewModel(context.Background(), commands.Default(), commands.NewSession(cfg, st, nil), Options{Theme: NewTheme(cfg.Theme)})
	// Send WindowSize first to init dimensions
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	return updated.(Model)
}

func typeLine(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	updated, cmd := updated.(Model).Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func TestMenuTrigger(t *testing.T) {
	m := newTestModel(t)
	assert.False(t, m.menu.active, "menu should be inactive on startup")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	m = updated.(Model)
	require.True(t, m.menu.active, "menu should open on ctrl+k")
	assert.Contains(t, m.View(), "add-contact")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, updated.(Model).menu.active)
}

func TestMenuSelectionPrefillsInput(t *testing.T) {
	m := newTestModel(t)
	m.menu.active = true

	// Second entry is add-contact, which takes arguments.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated, _ = updated.(Model).Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	assert.False(t, m.menu.active, "menu should close after selection")
	assert.Equal(t, "add-contact ", m.input.Value())
}

func TestMenuSelectionRunsBareCommand(t *testing.T) {
	m := newTestModel(t)
	m.menu.active = true

	// First entry is hello.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	assert.Contains(t, m.viewport.View(), "How can I help you?")
}

func TestEnterDispatchesCommand(t *testing.T) {
	m := newTestModel(t)
	m, cmd := typeLine(t, m, "add-contact Ann 0123456789")
	assert.Nil(t, cmd)
	assert.Empty(t, m.input.Value())
	assert.Equal(t, 1, m.session.Book.Len())
	assert.Contains(t, m.View(), "1 contacts")

	m, _ = typeLine(t, m, "all")
	view := m.viewport.View()
	assert.Contains(t, view, "All contacts (1)")
	assert.Contains(t, view, "0123456789")
}

func TestErrorsStayInSession(t *testing.T) {
	m := newTestModel(t)
	m, cmd := typeLine(t, m, "phone Nobody")
	assert.Nil(t, cmd)
	assert.False(t, m.quitting)
	assert.Contains(t, m.viewport.View(), "Contact not found.")
}

func TestHistoryRecall(t *testing.T) {
	m := newTestModel(t)
	m, _ = typeLine(t, m, "hello")
	m, _ = typeLine(t, m, "all")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	assert.Equal(t, "all", m.input.Value())
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "hello", updated.(Model).input.Value())
}

func TestHistoryRecallFromPreviousSession(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	st, err := storage.Open(cfg.StorageOptions(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	hist := history.New("", 0)
	hist.Add("birthdays 30")
	m := NewModel(context.Background(), commands.Default(), commands.NewSession(cfg, st, nil), Options{History: hist})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "birthdays 30", updated.(Model).input.Value())
	assert.Equal(t, "green", updated.(Model).theme.Name)
}

func TestExitQuits(t *testing.T) {
	m := newTestModel(t)
	m, cmd := typeLine(t, m, "exit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestInputPromptDesign(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	assert.Contains(t, view, promptText)
	assert.Contains(t, view, "ctrl+k")
}

func TestRenderTable(t *testing.T) {
	out := renderTable(&commands.Table{
		Title:   "People",
		Headers: []string{"Name", "Phones"},
		Rows:    [][]string{{"Ann", "0123456789"}},
	}, NewTheme("amber"), 0)
	assert.True(t, strings.HasPrefix(stripANSI(out), "People"))
	assert.Contains(t, out, "0123456789")
}

func TestNewTheme(t *testing.T) {
	assert.Equal(t, "amber", NewTheme("amber").Name)
	assert.Equal(t, "green", NewTheme("neon").Name)
	assert.Equal(t, Green, NewTheme("").Accent)
}

func stripANSI(s string) string {
	var b strings.Builder
	skip := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			skip = true
		case skip && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			skip = false
		case !skip:
			b.WriteRune(r)
		}
	}
	return b.String()
}
