package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newExecCommand(opts *options) *cobra.Command {
	var cwd string
	cmd := &cobra.Command{
		Use:   "exec <line...>",
		Short: "Run one command line and print its output",
		Example: `  aurora exec ls -l /home/user
  aurora exec --cwd /tmp 'touch notes.txt'
  aurora -u root exec chown guest /tmp/notes.txt`,
		Args: cobra.MinimumNArgs(1),
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

			if cwd != "" {
				if res := core.Shell.Execute(s, "cd "+cwd); res.IsError {
					printResult(cmd, res.Output, true)
					return ErrCommandFailed
				}
			}

			res := core.Shell.Execute(s, strings.Join(args, " "))
			printResult(cmd, res.Output, res.IsError)
			if res.IsError {
				return ErrCommandFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cwd, "cwd", "", "Working directory to run in")
	return cmd
}
