package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/aurora/internal/infrastructure/server"
	"github.com/GriffinCanCode/aurora/internal/shell"
	"github.com/GriffinCanCode/aurora/internal/tui"
)

const motdPath = "/etc/motd"

func newShellCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open an interactive terminal session",
		Long: `Open a terminal session as the configured user.

On a terminal this runs a full-screen shell with history (up/down), tab
completion and ghost suggestions (right arrow). Ctrl+D quits. When stdin is
not a terminal, lines are read from stdin and executed one by one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := opts.openCore()
			if err != nil {
				return err
			}
			defer core.Close()

			s, err := core.Sessions.Create(core.Config.Shell.User)
			if err != nil {
				return err
			}
			defer core.Sessions.Close(s.ID)

			if tui.IsInteractive() {
				return tui.Run(core.Shell, s, motd(core))
			}
			return runScript(cmd, core, s)
		},
	}
}

func motd(core *server.Core) []string {
	content, ok := core.Store.ReadFile(motdPath)
	if !ok {
		return nil
	}
	return strings.Split(strings.TrimRight(content, "\n"), "\n")
}

// runScript executes stdin line by line, stopping at exit or logout.
func runScript(cmd *cobra.Command, core *server.Core, s *shell.Session) error {
	failed := false
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		res := core.Shell.Execute(s, scanner.Text())
		printResult(cmd, res.Output, res.IsError)
		failed = failed || res.IsError
		if res.Closed {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if failed {
		return ErrCommandFailed
	}
	return nil
}
