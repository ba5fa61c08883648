package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func press(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func typeText(m Model, s string) Model {
	return press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestSubmitWithCtrlD(t *testing.T) {
	m := New("speak")
	m = typeText(m, "Hello")
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(m, "world")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = next.(Model)

	assert.True(t, m.Submitted())
	assert.Equal(t, "Hello\nworld", m.Value())
	assert.NotNil(t, cmd)
}

func TestCancel(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := typeText(New("speak"), "draft")
		m = press(m, tea.KeyMsg{Type: key})
		assert.False(t, m.Submitted(), key.String())
	}
}

func TestViewShowsTitleAndHelp(t *testing.T) {
	v := New("Clone voice").View()
	assert.Contains(t, v, "Clone voice")
	assert.Contains(t, v, "ctrl+d submit")
}
