package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle  = lipgloss.NewStyle().Bold(true).Reverse(true)
	dropStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	collapsedStyle = lipgloss.NewStyle().Faint(true)
	helpStyle      = lipgloss.NewStyle().Faint(true)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	dragHandle    = "≡"
	caretOpen     = "▾"
	caretClosed   = "▸"
	grabbedMark   = "✥"
	contentIndent = "    "
)
