package cli

import (
	"github.com/spf13/cobra"
)

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "set WIDTHxHEIGHT[@RATE]",
		Short:   "Switch a display to a mode",
		Example: "  displaymode set 2560x1440@60\n  displaymode set 1512x982 --hidpi -d main",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hiDPI, _ := cmd.Flags().GetBool("hidpi")
			target, err := parseTarget(args[0], hiDPI)
			if err != nil {
				return err
			}
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			display, err := a.display(cmd.Context())
			if err != nil {
				return err
			}
			return a.switchTo(cmd.Context(), display.ID, target)
		},
	}
	cmd.Flags().Bool("hidpi", false, "Target the HiDPI (scaled) variant")
	return cmd
}
