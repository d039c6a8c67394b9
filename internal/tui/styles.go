package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrompt  = lipgloss.Color("39")
	colorValid   = lipgloss.Color("34")
	colorInvalid = lipgloss.Color("196")
	colorMuted   = lipgloss.Color("240")
)

var (
	promptStyle  = lipgloss.NewStyle().Foreground(colorPrompt).Bold(true)
	validStyle   = lipgloss.NewStyle().Foreground(colorValid)
	invalidStyle = lipgloss.NewStyle().Foreground(colorInvalid)
	ghostStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	statusStyle  = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
)
