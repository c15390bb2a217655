package cli

import (
	"github.com/hamidzr/displaymode/core"
	"github.com/hamidzr/displaymode/render"
	"github.com/spf13/cobra"
)

func newDisplaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "displays",
		Short: "List online displays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			snap, err := a.session.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			return render.Displays(a.out, snap.Displays)
		},
	}
}

func newModesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modes",
		Short: "List every mode of a display, best first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			display, err := a.display(cmd.Context())
			if err != nil {
				return err
			}
			modes := display.Modes
			if all, _ := cmd.Flags().GetBool("all"); !all {
				settings, err := a.store.Load()
				if err != nil {
					return err
				}
				filter, err := a.filter(cmd, settings)
				if err != nil {
					return err
				}
				kept := modes[:0:0]
				for _, m := range modes {
					if filter.Keep(m) {
						kept = append(kept, m)
					}
				}
				modes = kept
			}
			return render.Modes(a.out, core.SortModesBestFirst(modes), display.Current)
		},
	}
	cmd.Flags().BoolP("all", "a", false, "Ignore the hidpi filter")
	addHiDPIFlags(cmd)
	return cmd
}

func newGroupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List the resolutions of a display with their refresh rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			display, err := a.display(cmd.Context())
			if err != nil {
				return err
			}
			settings, err := a.store.Load()
			if err != nil {
				return err
			}
			filter, err := a.filter(cmd, settings)
			if err != nil {
				return err
			}
			groups := core.GroupModes(display.Modes, filter)
			sel, ok := core.InitialSelection(display.Current, groups)
			return render.Groups(a.out, groups, sel, ok)
		},
	}
	addHiDPIFlags(cmd)
	return cmd
}
