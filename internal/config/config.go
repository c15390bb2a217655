package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/hamidzr/displaymode/constant"
	"github.com/hamidzr/displaymode/model"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// getConfigPaths returns the config directory paths in priority order
// prefers ~/.config over macos application support dir
func getConfigPaths() []string {
	var paths []string
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", constant.ProjectName))
		paths = append(paths, filepath.Join(homeDir, "."+constant.ProjectName))
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, constant.ProjectName))
	}
	paths = append(paths, ".")
	return paths
}

// getPreferredConfigDir returns the preferred config directory for writing
func getPreferredConfigDir() (string, error) {
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", constant.ProjectName), nil
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(userConfigDir, constant.ProjectName), nil
	}
	return "", fmt.Errorf("unable to determine config directory")
}

// InitConfig initializes Viper configuration with proper priority:
// 1. CLI flags (highest priority)
// 2. Environment variables
// 3. Config file (lowest priority)
func InitConfig(cmd *cobra.Command) (*model.Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, path := range getConfigPaths() {
		v.AddConfigPath(path)
	}

	SetViperEnvSettings(v)
	SetViperDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// config file not found is ok, we'll use defaults + env vars + flags
	}
	if err := validateConfigFileKeys(v.ConfigFileUsed()); err != nil {
		return nil, err
	}
	// aliases move camelCase values already read from the file onto the
	// canonical keys, so they must be registered after reading.
	registerConfigKeyAliases(v)

	if err := bindFlags(v, cmd); err != nil {
		return nil, fmt.Errorf("error binding flags: %w", err)
	}

	var config model.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if _, err := model.ParseHiDPIFilter(config.HiDPIFilter); err != nil {
		return nil, err
	}
	if config.PollInterval <= 0 {
		return nil, fmt.Errorf("poll_interval must be positive, got %s", config.PollInterval)
	}
	config.SettingsFile = expandHome(config.SettingsFile)
	config.ModesFile = expandHome(config.ModesFile)
	config.LogFile = expandHome(config.LogFile)
	if used := v.ConfigFileUsed(); used != "" {
		config.ConfigDir = filepath.Dir(used)
	}

	return &config, nil
}

// SettingsPath returns the settings file to use: the configured one, or
// settings.json next to the config file that was read, or in the preferred
// config directory when there was none.
func SettingsPath(cfg *model.Config) (string, error) {
	if cfg != nil && cfg.SettingsFile != "" {
		return cfg.SettingsFile, nil
	}
	if cfg != nil && cfg.ConfigDir != "" {
		return filepath.Join(cfg.ConfigDir, "settings.json"), nil
	}
	configDir, err := getPreferredConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "settings.json"), nil
}

// Watch calls fn every time the file at path is written or replaced. The
// file must exist. Like the settings store, .yaml and .yml are read as yaml
// and anything else, extensionless included, as json. Watching lasts for the
// life of the process.
func Watch(path string, fn func(fsnotify.Event)) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(watchFormat(path))
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	v.OnConfigChange(fn)
	v.WatchConfig()
	return nil
}

func watchFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}

// InitConfigFile generates and saves a default config file to the appropriate location
func InitConfigFile() (string, error) {
	configDir, err := getPreferredConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists at %s", configPath)
	}

	yamlData, err := yaml.Marshal(fileConfig(model.DefaultConfig()))
	if err != nil {
		return "", fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	header := `# displaymode configuration file
# Generated automatically - customize as needed
#
# log_level: trace, debug, info, warn, error
# hidpi_filter: all, hidpi, standard
# settings_file: empty means settings.json next to this file
# display: main, a display id or part of a display name
#

`
	if err := os.WriteFile(configPath, []byte(header+string(yamlData)), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}
	return configPath, nil
}

// fileConfigT is model.Config as written to disk. Durations are kept as
// strings so the file stays readable.
type fileConfigT struct {
	LogLevel     string `yaml:"log_level"`
	LogFile      string `yaml:"log_file"`
	SettingsFile string `yaml:"settings_file"`
	ModesFile    string `yaml:"modes_file"`
	HiDPIFilter  string `yaml:"hidpi_filter"`
	PollInterval string `yaml:"poll_interval"`
	Display      string `yaml:"display"`
}

func fileConfig(cfg *model.Config) fileConfigT {
	return fileConfigT{
		LogLevel:     cfg.LogLevel,
		LogFile:      cfg.LogFile,
		SettingsFile: cfg.SettingsFile,
		ModesFile:    cfg.ModesFile,
		HiDPIFilter:  cfg.HiDPIFilter,
		PollInterval: cfg.PollInterval.String(),
		Display:      cfg.Display,
	}
}

func expandHome(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}
