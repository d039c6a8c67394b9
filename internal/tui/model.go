package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/GriffinCanCode/aurora/internal/shell"
)

// maxScrollback bounds the retained output lines.
const maxScrollback = 5000

// Model is the bubbletea model for one terminal session.
type Model struct {
	shell   *shell.Interpreter
	session *shell.Session
	keys    KeyMap

	scrollback []string
	line       shell.LineState
	offset     int
	width      int
	height     int
	done       bool
}

// NewModel creates a model showing motd above the first prompt.
func NewModel(interp *shell.Interpreter, s *shell.Session, motd []string) Model {
	return Model{
		shell:      interp,
		session:    s,
		keys:       DefaultKeyMap(),
		scrollback: append([]string{}, motd...),
		line:       interp.Line(s),
		height:     24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.PageUp):
			m.offset = min(m.offset+m.page(), max(0, len(m.scrollback)-m.page()))
			return m, nil
		case key.Matches(msg, m.keys.PageDown):
			m.offset = max(0, m.offset-m.page())
			return m, nil
		}

		ev, ok := translate(msg)
		if !ok {
			return m, nil
		}
		res := m.shell.HandleKey(m.session, ev)
		m.apply(res)
		if res.Result != nil && res.Result.Closed {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) apply(res shell.KeyResult) {
	if res.Clear {
		m.scrollback = m.scrollback[:0]
	} else {
		m.scrollback = append(m.scrollback, res.Output...)
	}
	if over := len(m.scrollback) - maxScrollback; over > 0 {
		m.scrollback = append([]string{}, m.scrollback[over:]...)
	}
	m.line = res.Line
	m.offset = 0
}

// page is the number of scrollback rows visible above the input line and
// status bar.
func (m Model) page() int {
	return max(1, m.height-2)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return strings.Join(m.scrollback, "\n") + "\n"
	}

	end := len(m.scrollback) - m.offset
	start := max(0, end-m.page())
	var b strings.Builder
	for _, l := range m.scrollback[start:end] {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteString(m.renderLine())
	b.WriteByte('\n')
	b.WriteString(statusStyle.Render(m.keys.HelpText()))
	return b.String()
}

func (m Model) renderLine() string {
	input := m.line.Input
	switch m.line.Validity {
	case shell.ValidityValid:
		input = validStyle.Render(input)
	case shell.ValidityInvalid:
		input = invalidStyle.Render(input)
	}
	return promptStyle.Render(m.line.Prompt) + input + cursorStyle.Render(" ") + ghostStyle.Render(m.line.Ghost)
}

// Scrollback returns the retained output lines.
func (m Model) Scrollback() []string {
	return append([]string{}, m.scrollback...)
}

// Line returns the current input line state.
func (m Model) Line() shell.LineState {
	return m.line
}

// Run starts a full-screen program for s and blocks until the user quits or
// the session closes.
func Run(interp *shell.Interpreter, s *shell.Session, motd []string) error {
	p := tea.NewProgram(NewModel(interp, s, motd), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
