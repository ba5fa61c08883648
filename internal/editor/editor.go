// Package editor is the full-screen multi-line text input used when no text
// or --file is given.
package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

// Model is the bubbletea model behind Run.
type Model struct {
	title     string
	textarea  textarea.Model
	submitted bool
	cancelled bool
}

// New creates an editor with the given header title.
func New(title string) Model {
	ta := textarea.New()
	ta.Placeholder = "Type the text to speak..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(80)
	ta.SetHeight(12)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	return Model{title: title, textarea: ta}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlD:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		// border and padding take four columns, header and help take four rows
		m.textarea.SetWidth(max(msg.Width-4, 20))
		m.textarea.SetHeight(max(msg.Height-6, 3))
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(frameStyle.Render(m.textarea.View()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("ctrl+d submit • esc cancel"))
	return b.String()
}

// Value is the current text.
func (m Model) Value() string { return m.textarea.Value() }

// Submitted reports whether the user pressed Ctrl+D.
func (m Model) Submitted() bool { return m.submitted && !m.cancelled }

// Run opens the editor and blocks until the user submits or cancels.
// ok is false on cancel.
func Run(title string) (text string, ok bool, err error) {
	p := tea.NewProgram(New(title), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", false, fmt.Errorf("editor: %w", err)
	}
	m, _ := final.(Model)
	if !m.Submitted() {
		return "", false, nil
	}
	return m.Value(), true, nil
}
