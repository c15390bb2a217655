package cli

import (
	"fmt"

	"github.com/hamidzr/displaymode/render"
	"github.com/spf13/cobra"
)

func newPresetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage named target modes",
	}

	add := &cobra.Command{
		Use:   "add NAME WIDTHxHEIGHT[@RATE]",
		Short: "Save a preset for the selected display",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hiDPI, _ := cmd.Flags().GetBool("hidpi")
			target, err := parseTarget(args[1], hiDPI)
			if err != nil {
				return err
			}
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			displayID, err := a.targetDisplayID(cmd.Context())
			if err != nil {
				return err
			}
			settings, err := a.store.Load()
			if err != nil {
				return err
			}
			if existing, ok := settings.FindPreset(args[0]); ok && existing.Name == args[0] {
				return fmt.Errorf("preset %q already exists", args[0])
			}
			preset := settings.AddPreset(args[0], displayID, target)
			if err := a.store.Save(settings); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "added preset %s (%s)\n", preset.Name, preset.ID)
			return nil
		},
	}
	add.Flags().Bool("hidpi", false, "Target the HiDPI (scaled) variant")

	list := &cobra.Command{
		Use:   "list",
		Short: "List presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			settings, err := a.store.Load()
			if err != nil {
				return err
			}
			return render.Presets(a.out, settings.Presets)
		},
	}

	remove := &cobra.Command{
		Use:   "remove NAME|ID",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			settings, err := a.store.Load()
			if err != nil {
				return err
			}
			if !settings.RemovePreset(args[0]) {
				return fmt.Errorf("no preset %q", args[0])
			}
			return a.store.Save(settings)
		},
	}

	apply := &cobra.Command{
		Use:   "apply NAME|ID",
		Short: "Switch to a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			settings, err := a.store.Load()
			if err != nil {
				return err
			}
			preset, ok := settings.FindPreset(args[0])
			if !ok {
				return fmt.Errorf("no preset %q", args[0])
			}
			return a.switchTo(cmd.Context(), preset.DisplayID, preset.Target)
		},
	}

	cmd.AddCommand(add, list, remove, apply)
	return cmd
}
