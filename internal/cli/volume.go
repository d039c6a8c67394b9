package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/aurora/internal/domain/settings"
)

func newVolumeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "volume [category [value]]",
		Short: "Show or set sound volumes",
		Long: `Show or set sound volumes.

With no arguments every category is printed. With a category its level is
printed; with a category and a value in [0, 1] the level is stored. Values
outside the range are clamped.

Categories: master, system, ui, feedback`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := opts.openCore()
			if err != nil {
				return err
			}
			defer core.Close()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				v := core.Volume.All()
				for _, c := range settings.Categories {
					fmt.Fprintf(out, "%-9s %.2f\n", c, v.Get(c))
				}
				return nil
			}

			category, err := settings.ParseCategory(args[0])
			if err != nil {
				return err
			}
			var level float64
			if len(args) == 1 {
				level, err = core.Volume.Get(category)
			} else {
				value, perr := strconv.ParseFloat(args[1], 64)
				if perr != nil {
					return fmt.Errorf("invalid volume %q: %w", args[1], perr)
				}
				level, err = core.Volume.Set(category, value)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %.2f\n", category, level)
			return nil
		},
	}
}
