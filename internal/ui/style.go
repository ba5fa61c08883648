package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	brand    = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	status   = lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Bold(true)
	success  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warn     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dim      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	key      = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	val      = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
)

// Out is where all human-facing messages go. Stdout stays free for data.
var Out io.Writer = os.Stderr

// In is read by Confirm.
var In io.Reader = os.Stdin

func Brand(s string) string { return brand.Render(s) }
func Dim(s string) string   { return dim.Render(s) }
func Key(s string) string   { return key.Render(s) }
func Val(s string) string   { return val.Render(s) }

// Status prints a bold label followed by a message, e.g. "Downloading repo...".
func Status(label, msg string) {
	fmt.Fprintf(Out, "%s %s\n", status.Render(label), msg)
}

func Success(format string, a ...any) {
	fmt.Fprintln(Out, success.Render("✓ "+fmt.Sprintf(format, a...)))
}

func Warn(format string, a ...any) {
	fmt.Fprintln(Out, warn.Render("! "+fmt.Sprintf(format, a...)))
}

func Error(format string, a ...any) {
	fmt.Fprintln(Out, errStyle.Render("✗ "+fmt.Sprintf(format, a...)))
}

func Info(format string, a ...any) {
	fmt.Fprintln(Out, fmt.Sprintf(format, a...))
}

func KV(k, v string) {
	fmt.Fprintf(Out, "  %s  %s\n", key.Render(k), val.Render(v))
}

// Confirm asks a yes/no question. An empty answer, or no answer at all,
// picks the default.
func Confirm(question string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprintf(Out, "%s %s ", question, dim.Render(hint))

	line, err := bufio.NewReader(In).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(Out)
		return defaultYes
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "" {
		return defaultYes
	}
	return strings.HasPrefix(answer, "y")
}

// Notifier receives progress and non-fatal warnings from long-running steps.
type Notifier interface {
	Status(label, msg string)
	Info(format string, a ...any)
	Warn(format string, a ...any)
}

// Console is the terminal Notifier.
type Console struct{}

func (Console) Status(label, msg string)      { Status(label, msg) }
func (Console) Info(format string, a ...any) { Info(format, a...) }
func (Console) Warn(format string, a ...any) { Warn(format, a...) }
