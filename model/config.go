package model

import "time"

// Config holds all configuration for the application.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// LogFile, when set, also writes logs to a rotating file.
	LogFile      string `mapstructure:"log_file" yaml:"log_file"`
	SettingsFile string `mapstructure:"settings_file" yaml:"settings_file"`
	// ModesFile replaces the OS display source with a fixture file.
	ModesFile    string        `mapstructure:"modes_file" yaml:"modes_file"`
	HiDPIFilter  string        `mapstructure:"hidpi_filter" yaml:"hidpi_filter"`
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	Display      string        `mapstructure:"display" yaml:"display"`

	// ConfigDir is the directory of the config file that was read, if any.
	ConfigDir string `mapstructure:"-" yaml:"-"`
}

// DefaultConfig returns a config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		LogFile:      "",
		SettingsFile: "", // resolved next to the config file
		ModesFile:    "",
		HiDPIFilter:  FilterAll.String(),
		PollInterval: 5 * time.Second,
		Display:      "",
	}
}
