package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the factory filesystem and volume settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := opts.openCore()
			if err != nil {
				return err
			}
			defer core.Close()

			core.Store.ResetFileSystem()
			core.Volume.Reset()
			fmt.Fprintln(cmd.OutOrStdout(), "Filesystem and settings restored to defaults")
			return nil
		},
	}
}
