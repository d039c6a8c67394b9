package shell

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Named keys understood by HandleKey. Any other single character is typed.
const (
	KeyEnter      = "Enter"
	KeyBackspace  = "Backspace"
	KeyTab        = "Tab"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowRight = "ArrowRight"
)

// KeyEvent is one key press from a terminal front end.
type KeyEvent struct {
	Key  string `json:"key"`
	Ctrl bool   `json:"ctrl,omitempty"`
}

// LineState is what the front end renders on the input line.
type LineState struct {
	Prompt   string   `json:"prompt"`
	Input    string   `json:"input"`
	Ghost    string   `json:"ghost,omitempty"`
	Validity Validity `json:"validity,omitempty"`
}

// KeyResult carries the new line plus any lines to append to the scrollback.
// Result is set when Enter ran a command.
type KeyResult struct {
	Line   LineState `json:"line"`
	Output []string  `json:"output"`
	Clear  bool      `json:"clear,omitempty"`
	Result *Result   `json:"result,omitempty"`
}

// Line returns the current editor state without changing it.
func (i *Interpreter) Line(s *Session) LineState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return i.lineLocked(s)
}

// HandleKey applies one key press to the session's line editor.
func (i *Interpreter) HandleKey(s *Session, ev KeyEvent) KeyResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := KeyResult{Output: []string{}}
	if s.closed {
		res.Line = i.lineLocked(s)
		return res
	}
	if ev.Ctrl {
		i.handleControl(s, strings.ToLower(ev.Key), &res)
		res.Line = i.lineLocked(s)
		return res
	}

	switch ev.Key {
	case KeyEnter:
		line := s.input
		s.input = ""
		res.Output = append(res.Output, i.promptLocked(s)+line)
		if strings.TrimSpace(line) != "" {
			r := i.executeLocked(s, line)
			res.Output = append(res.Output, r.Output...)
			res.Clear = r.Clear
			res.Result = &r
		}
		s.historyIndex = -1
	case KeyArrowUp:
		if len(s.history) == 0 {
			break
		}
		switch {
		case s.historyIndex == -1:
			s.historyIndex = len(s.history) - 1
		case s.historyIndex > 0:
			s.historyIndex--
		}
		s.input = s.history[s.historyIndex]
	case KeyArrowDown:
		if s.historyIndex == -1 {
			break
		}
		if s.historyIndex < len(s.history)-1 {
			s.historyIndex++
			s.input = s.history[s.historyIndex]
		} else {
			s.historyIndex = -1
			s.input = ""
		}
	case KeyArrowRight:
		if s.historyIndex == -1 {
			s.input += ghost(s.history, s.input)
		}
	case KeyTab:
		c := i.complete(i.store.As(s.User), s, s.input)
		s.input = c.line
		if len(c.candidates) > 0 {
			res.Output = append(res.Output, strings.Join(c.candidates, "  "))
		}
	case KeyBackspace:
		if s.input != "" {
			_, size := utf8.DecodeLastRuneInString(s.input)
			s.input = s.input[:len(s.input)-size]
		}
		s.historyIndex = -1
	default:
		if r, size := utf8.DecodeRuneInString(ev.Key); size == len(ev.Key) && r != utf8.RuneError && unicode.IsPrint(r) {
			s.input += ev.Key
			s.historyIndex = -1
		}
	}

	res.Line = i.lineLocked(s)
	return res
}

// handleControl covers Ctrl+L (clear screen), Ctrl+C (cancel line) and Ctrl+U
// (clear input).
func (i *Interpreter) handleControl(s *Session, key string, res *KeyResult) {
	switch key {
	case "l":
		res.Clear = true
	case "c":
		res.Output = append(res.Output, i.promptLocked(s)+s.input+"^C")
		s.input = ""
		s.historyIndex = -1
	case "u":
		s.input = ""
		s.historyIndex = -1
	}
}

func (i *Interpreter) lineLocked(s *Session) LineState {
	st := LineState{Prompt: i.promptLocked(s), Input: s.input}
	if s.closed {
		return st
	}
	fs := i.store.As(s.User)
	st.Validity = i.validity(fs, s, s.input)
	if s.historyIndex == -1 {
		st.Ghost = ghost(s.history, s.input)
	}
	return st
}
