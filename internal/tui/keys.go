package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/GriffinCanCode/aurora/internal/shell"
)

// KeyMap holds the bindings the model handles itself. Everything else goes to
// the shell's line editor.
type KeyMap struct {
	Quit     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "quit"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "scroll down"),
		),
	}
}

// HelpText is shown in the status bar.
func (k KeyMap) HelpText() string {
	return k.Quit.Help().Key + " " + k.Quit.Help().Desc + " • " +
		k.PageUp.Help().Key + "/" + k.PageDown.Help().Key + " scroll"
}

// translate maps a terminal key to a line editor event. ok is false for keys
// the editor does not understand.
func translate(msg tea.KeyMsg) (shell.KeyEvent, bool) {
	switch msg.Type {
	case tea.KeyEnter:
		return shell.KeyEvent{Key: shell.KeyEnter}, true
	case tea.KeyBackspace:
		return shell.KeyEvent{Key: shell.KeyBackspace}, true
	case tea.KeyTab:
		return shell.KeyEvent{Key: shell.KeyTab}, true
	case tea.KeyUp:
		return shell.KeyEvent{Key: shell.KeyArrowUp}, true
	case tea.KeyDown:
		return shell.KeyEvent{Key: shell.KeyArrowDown}, true
	case tea.KeyRight:
		return shell.KeyEvent{Key: shell.KeyArrowRight}, true
	case tea.KeyCtrlC:
		return shell.KeyEvent{Key: "c", Ctrl: true}, true
	case tea.KeyCtrlL:
		return shell.KeyEvent{Key: "l", Ctrl: true}, true
	case tea.KeyCtrlU:
		return shell.KeyEvent{Key: "u", Ctrl: true}, true
	case tea.KeySpace:
		return shell.KeyEvent{Key: " "}, true
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return shell.KeyEvent{Key: string(msg.Runes)}, true
		}
	}
	return shell.KeyEvent{}, false
}
