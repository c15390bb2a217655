package config

import (
	"strings"

	"github.com/hamidzr/displaymode/constant"
	"github.com/hamidzr/displaymode/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"log-level":     "log_level",
	"log-file":      "log_file",
	"settings-file": "settings_file",
	"modes-file":    "modes_file",
	"hidpi-filter":  "hidpi_filter",
	"poll-interval": "poll_interval",
	"display":       "display",
}

// BindFlags binds CLI flags to the cobra command
func BindFlags(cmd *cobra.Command) {
	defaults := model.DefaultConfig()

	cmd.PersistentFlags().StringP("log-level", "l", defaults.LogLevel, "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().String("log-file", defaults.LogFile, "Also write logs to this file, rotated by size")
	cmd.PersistentFlags().String("settings-file", defaults.SettingsFile, "Presets and shortcuts file (json or yaml)")
	cmd.PersistentFlags().String("modes-file", defaults.ModesFile, "Read displays from this fixture instead of the OS")
	cmd.PersistentFlags().StringP("hidpi-filter", "f", defaults.HiDPIFilter, "Which modes to group: all, hidpi or standard")
	cmd.PersistentFlags().Duration("poll-interval", defaults.PollInterval, "How often the daemon re-reads the displays")
	cmd.PersistentFlags().StringP("display", "d", defaults.Display, "Display to act on: main, an id or part of a name")
	cmd.PersistentFlags().Bool("init-config", false, "Generate and save default config file")
}

// bindFlags makes flags the user actually set win over env and file values.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}

// SetViperDefaults sets default values in viper configuration
func SetViperDefaults(v *viper.Viper) {
	defaults := model.DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("settings_file", defaults.SettingsFile)
	v.SetDefault("modes_file", defaults.ModesFile)
	v.SetDefault("hidpi_filter", defaults.HiDPIFilter)
	v.SetDefault("poll_interval", defaults.PollInterval)
	v.SetDefault("display", defaults.Display)
}

// SetViperEnvSettings configures viper environment variable settings
func SetViperEnvSettings(v *viper.Viper) {
	v.SetEnvPrefix(constant.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}
