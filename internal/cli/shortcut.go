package cli

import (
	"fmt"

	"github.com/hamidzr/displaymode/core"
	"github.com/hamidzr/displaymode/render"
	"github.com/spf13/cobra"
)

func newShortcutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shortcut",
		Short: "Manage global keyboard shortcuts",
		Long:  "Shortcuts are bound while the daemon runs and reloaded when they change.",
	}

	add := &cobra.Command{
		Use:     "add KEYS WIDTHxHEIGHT[@RATE]",
		Short:   "Bind a key chord to a mode of the selected display",
		Example: "  displaymode shortcut add ctrl+option+1 1512x982 --hidpi",
		Args:    cobra.ExactArgs(2),
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
			sc, err := settings.AddShortcut(args[0], displayID, target)
			if err != nil {
				return err
			}
			if err := a.store.Save(settings); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "bound %s to %s (%s)\n", sc.Keys, sc.Target, sc.ID)
			return nil
		},
	}
	add.Flags().Bool("hidpi", false, "Target the HiDPI (scaled) variant")

	list := &cobra.Command{
		Use:   "list",
		Short: "List shortcuts",
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
			return render.Shortcuts(a.out, settings.Shortcuts)
		},
	}

	remove := &cobra.Command{
		Use:   "remove KEYS|ID",
		Short: "Delete a shortcut",
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
			if !settings.RemoveShortcut(args[0]) {
				return fmt.Errorf("no shortcut %q", args[0])
			}
			return a.store.Save(settings)
		},
	}

	fire := &cobra.Command{
		Use:   "fire KEYS|ID",
		Short: "Run a shortcut as if its keys were pressed",
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
			sc, ok := settings.FindShortcut(args[0])
			if !ok {
				return fmt.Errorf("no shortcut %q", args[0])
			}
			applied, err := core.NewDispatcher(a.session, core.DefaultFireInterval).Fire(cmd.Context(), sc)
			if err != nil {
				return err
			}
			if applied {
				fmt.Fprintf(a.out, "%s: switched to %s\n", sc.Keys, sc.Target)
			} else {
				fmt.Fprintf(a.out, "%s: nothing to do\n", sc.Keys)
			}
			return nil
		},
	}

	cmd.AddCommand(add, list, remove, fire)
	return cmd
}
