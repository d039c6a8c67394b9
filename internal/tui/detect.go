package tui

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether stdin and stdout are both terminals and the
// environment does not ask for plain output.
func IsInteractive() bool {
	if os.Getenv("AURORA_NON_INTERACTIVE") == "1" || os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
