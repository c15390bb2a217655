package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hamidzr/displaymode/core"
	"github.com/hamidzr/displaymode/model"
	"github.com/hamidzr/displaymode/render"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const pickHelp = "up/down resolution  left/right rate  f filter  enter apply  q quit"

func newPickCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a mode interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd)
		},
	}
	addHiDPIFlags(cmd)
	return cmd
}

func runPick(cmd *cobra.Command) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	display, err := a.display(ctx)
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

	picker := core.NewPicker(core.GroupModes(display.Modes, filter), display.Current)
	view := core.PickerView{
		Draw: func(w io.Writer, p *core.Picker) error {
			fmt.Fprintf(w, "%s (%s modes)\n\n", display.Name, filter)
			sel, ok := p.Selection()
			if err := render.Groups(w, p.Groups(), sel, ok); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "\n%s\n", pickHelp)
			return err
		},
		CycleFilter: func(p *core.Picker) {
			filter = filter.Next()
			selected, ok := p.Selected()
			if !ok {
				selected = model.RawMode{}
				if display.Current != nil {
					selected = *display.Current
				}
			}
			p.Reset(core.GroupModes(display.Modes, filter), &selected)
		},
	}

	mode, err := core.RunPicker(os.Stdin, a.out, picker, view)
	if errors.Is(err, core.ErrPickCanceled) {
		return model.NewExitError(model.UserCanceled, err)
	}
	if err != nil {
		return err
	}

	if _, set := hiDPIFlag(cmd); !set && settings.Filter != filter.String() {
		settings.Filter = filter.String()
		if err := a.store.Save(settings); err != nil {
			logrus.WithError(err).Warn("failed to remember hidpi filter")
		}
	}

	if display.Current != nil && display.Current.SameShape(mode) {
		fmt.Fprintf(a.out, "%s is already at %s\n", display.Name, mode)
		return nil
	}
	if err := a.session.Apply(ctx, display.ID, mode); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s switched to %s\n", display.Name, mode)
	return nil
}
