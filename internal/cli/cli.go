package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hamidzr/displaymode/constant"
	"github.com/hamidzr/displaymode/core"
	"github.com/hamidzr/displaymode/internal/config"
	"github.com/hamidzr/displaymode/internal/logger"
	"github.com/hamidzr/displaymode/model"
	"github.com/hamidzr/displaymode/store"
	"github.com/spf13/cobra"
)

// app is everything a command needs once config is loaded.
type app struct {
	cfg     *model.Config
	out     io.Writer
	session *core.Session
	store   *store.FileStore
	// pidFile keeps a second daemon from starting; empty disables it.
	pidFile string
}

func InitCLI() *cobra.Command {
	RootCmd := &cobra.Command{
		Use:           "displaymode",
		Short:         "displaymode switches display resolutions and refresh rates",
		Long:          "Without a subcommand displaymode opens the interactive picker.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			initConfig, _ := cmd.Flags().GetBool("init-config")
			if initConfig {
				configPath, err := config.InitConfigFile()
				if err != nil {
					return fmt.Errorf("failed to initialize config: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Config file created at: %s\n", configPath)
				return nil
			}
			return runPick(cmd)
		},
	}
	config.BindFlags(RootCmd)
	addHiDPIFlags(RootCmd)

	RootCmd.AddCommand(
		newDisplaysCmd(),
		newModesCmd(),
		newGroupsCmd(),
		newPickCmd(),
		newSetCmd(),
		newPresetCmd(),
		newShortcutCmd(),
		newDaemonCmd(),
	)
	return RootCmd
}

// loadApp reads config, sets up logging and opens the display source and
// settings store.
func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.InitConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	if err := logger.SetupLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, err
	}
	source, err := openSource(cfg)
	if err != nil {
		return nil, err
	}
	settingsPath, err := config.SettingsPath(cfg)
	if err != nil {
		return nil, err
	}
	st, err := store.NewFileStore(settingsPath)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:     cfg,
		out:     cmd.OutOrStdout(),
		session: core.NewSession(source),
		store:   st,
		pidFile: filepath.Join(os.TempDir(), constant.ProjectName+".pid"),
	}, nil
}

func openSource(cfg *model.Config) (core.DisplaySource, error) {
	if cfg.ModesFile != "" {
		return core.LoadStaticSource(cfg.ModesFile)
	}
	source, err := core.NewSystemSource()
	if errors.Is(err, model.ErrUnsupportedPlatform) {
		return nil, fmt.Errorf("reading displays is %w; set modes_file to use a fixture", err)
	}
	return source, err
}

// display refreshes and returns the display selected by the display setting.
func (a *app) display(ctx context.Context) (model.Display, error) {
	snap, err := a.session.Refresh(ctx)
	if err != nil {
		return model.Display{}, err
	}
	return core.FindDisplay(snap.Displays, a.cfg.Display)
}

// targetDisplayID is the display id stored with presets and shortcuts. With
// no display setting it is the main display, whichever that is at the time.
func (a *app) targetDisplayID(ctx context.Context) (uint32, error) {
	if a.cfg.Display == "" {
		return 0, nil
	}
	d, err := a.display(ctx)
	if err != nil {
		return 0, err
	}
	return d.ID, nil
}

// filter picks the hidpi filter: flags first, then the one remembered by the
// picker, then config.
func (a *app) filter(cmd *cobra.Command, settings store.Settings) (model.HiDPIFilter, error) {
	if hiDPI, set := hiDPIFlag(cmd); set {
		return model.FilterFor(hiDPI), nil
	}
	if settings.Filter != "" {
		return model.ParseHiDPIFilter(settings.Filter)
	}
	return model.ParseHiDPIFilter(a.cfg.HiDPIFilter)
}

func addHiDPIFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("hidpi", false, "Only HiDPI (scaled) modes")
	cmd.Flags().Bool("no-hidpi", false, "Only standard modes")
	cmd.MarkFlagsMutuallyExclusive("hidpi", "no-hidpi")
}

// hiDPIFlag returns the filter requested on the command line, if any.
func hiDPIFlag(cmd *cobra.Command) (*bool, bool) {
	flags := cmd.Flags()
	yes := true
	no := false
	switch {
	case flags.Changed("hidpi"):
		return &yes, true
	case flags.Changed("no-hidpi"):
		return &no, true
	}
	return nil, false
}

// parseTarget reads WxH, WxH@RATE or WxH@RATEHz.
func parseTarget(s string, hiDPI bool) (model.TargetSpec, error) {
	target := model.TargetSpec{IsHiDPI: hiDPI}
	spec := strings.ToLower(strings.TrimSpace(s))
	if at := strings.IndexByte(spec, '@'); at >= 0 {
		rateText := strings.TrimSuffix(spec[at+1:], "hz")
		rate, err := strconv.ParseFloat(rateText, 64)
		if err != nil || rate <= 0 {
			return target, fmt.Errorf("invalid refresh rate in %q", s)
		}
		target.RefreshRate = rate
		spec = spec[:at]
	}
	w, h, ok := strings.Cut(spec, "x")
	if !ok {
		return target, fmt.Errorf("mode %q must look like 1920x1080 or 1920x1080@60", s)
	}
	var err error
	if target.Width, err = strconv.Atoi(w); err != nil || target.Width <= 0 {
		return target, fmt.Errorf("invalid width in %q", s)
	}
	if target.Height, err = strconv.Atoi(h); err != nil || target.Height <= 0 {
		return target, fmt.Errorf("invalid height in %q", s)
	}
	return target, nil
}

// switchTo applies target on a display and reports what happened.
func (a *app) switchTo(ctx context.Context, displayID uint32, target model.TargetSpec) error {
	match, ok, applied, err := a.session.Switch(ctx, displayID, target)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s has no mode matching %s", match.Display.Name, target)
	}
	if !applied {
		fmt.Fprintf(a.out, "%s is already at %s\n", match.Display.Name, match.Mode)
		return nil
	}
	fmt.Fprintf(a.out, "%s switched to %s\n", match.Display.Name, match.Mode)
	return nil
}
