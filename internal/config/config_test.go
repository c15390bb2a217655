package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hamidzr/displaymode/model"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

// isolatedHome points the config search paths at an empty temp directory and
// returns the directory config.yaml is read from.
func isolatedHome(t *testing.T) string {
	t.Helper()
	homedir.DisableCache = true
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	configDir := filepath.Join(tmpDir, ".config", "displaymode")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	return configDir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
}

func newCommand(args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "displaymode"}
	BindFlags(cmd)
	_ = cmd.ParseFlags(args)
	return cmd
}

// TestConfigDefaults tests that default values are set correctly
func TestConfigDefaults(t *testing.T) {
	isolatedHome(t)

	cfg, err := InitConfig(newCommand())
	require.NoError(t, err)
	defaults := model.DefaultConfig()
	assert.Equal(t, defaults.LogLevel, cfg.LogLevel)
	assert.Equal(t, "all", cfg.HiDPIFilter)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Empty(t, cfg.SettingsFile)
	assert.Empty(t, cfg.ModesFile)
}

// TestConfigLoading tests configuration file loading
func TestConfigLoading(t *testing.T) {
	configDir := isolatedHome(t)
	writeConfig(t, configDir, `
log_level: debug
settings_file: ~/presets.yaml
modes_file: /tmp/modes.json
hidpi_filter: hidpi
poll_interval: 30s
display: LG
`)

	cfg, err := InitConfig(newCommand())
	require.NoError(t, err)
	home, _ := os.UserHomeDir()
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join(home, "presets.yaml"), cfg.SettingsFile)
	assert.Equal(t, "/tmp/modes.json", cfg.ModesFile)
	assert.Equal(t, "hidpi", cfg.HiDPIFilter)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, "LG", cfg.Display)
}

func TestInitConfigAcceptsCamelCase(t *testing.T) {
	configDir := isolatedHome(t)
	writeConfig(t, configDir, `
logLevel: warn
hidpiFilter: standard
pollInterval: 1m
`)

	cfg, err := InitConfig(newCommand())
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "standard", cfg.HiDPIFilter)
	assert.Equal(t, time.Minute, cfg.PollInterval)
}

func TestInitConfigRejectsMixedNamingStyles(t *testing.T) {
	configDir := isolatedHome(t)
	writeConfig(t, configDir, `
log_level: debug
logLevel: trace
`)

	cfg, err := InitConfig(newCommand())
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "log_level")
	assert.Contains(t, err.Error(), "logLevel")
}

// TestConfigValidation tests configuration validation
func TestConfigValidation(t *testing.T) {
	testCases := []struct {
		name     string
		config   string
		errorMsg string
	}{
		{
			name:   "valid config",
			config: "hidpi_filter: standard\n",
		},
		{
			name:     "unknown key",
			config:   "search_method: fuzzy\n",
			errorMsg: `invalid key "search_method"`,
		},
		{
			name:     "unknown filter",
			config:   "hidpi_filter: retina\n",
			errorMsg: "unknown hidpi filter",
		},
		{
			name:     "zero poll interval",
			config:   "poll_interval: 0s\n",
			errorMsg: "poll_interval must be positive",
		},
		{
			name:     "invalid yaml",
			config:   "log_level: [debug\n",
			errorMsg: "config file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			configDir := isolatedHome(t)
			writeConfig(t, configDir, tc.config)

			cfg, err := InitConfig(newCommand())
			if tc.errorMsg == "" {
				assert.NoError(t, err)
				assert.NotNil(t, cfg)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errorMsg)
			assert.Nil(t, cfg)
		})
	}
}

// TestConfigPriority tests flags over env vars over the config file
func TestConfigPriority(t *testing.T) {
	configDir := isolatedHome(t)
	writeConfig(t, configDir, `
log_level: error
hidpi_filter: hidpi
display: main
`)
	t.Setenv("DISPLAYMODE_HIDPI_FILTER", "standard")
	t.Setenv("DISPLAYMODE_DISPLAY", "LG")

	cfg, err := InitConfig(newCommand("--display", "69733382"))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "standard", cfg.HiDPIFilter)
	assert.Equal(t, "69733382", cfg.Display)
}

// TestInitConfigFile tests config file generation
func TestInitConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configPath, err := InitConfigFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, ".config", "displaymode", "config.yaml"), configPath)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# displaymode configuration file")

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Equal(t, "5s", raw["poll_interval"])
	assert.Equal(t, "all", raw["hidpi_filter"])

	// the generated file must load back through viper untouched
	cfg, err := InitConfig(newCommand())
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(configPath), cfg.ConfigDir)
	cfg.ConfigDir = ""
	assert.Equal(t, *model.DefaultConfig(), *cfg)

	_, err = InitConfigFile()
	assert.Error(t, err, "existing config must not be overwritten")
}

func TestSettingsPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	path, err := SettingsPath(model.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, ".config", "displaymode", "settings.json"), path)

	path, err = SettingsPath(&model.Config{SettingsFile: "/etc/displaymode.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "/etc/displaymode.yaml", path)
}

func TestSettingsPathFollowsConfigFile(t *testing.T) {
	isolatedHome(t)
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	dotDir := filepath.Join(home, ".displaymode")
	require.NoError(t, os.MkdirAll(dotDir, 0o755))
	writeConfig(t, dotDir, "log_level: debug\n")

	cfg, err := InitConfig(newCommand())
	require.NoError(t, err)
	assert.Equal(t, dotDir, cfg.ConfigDir)

	path, err := SettingsPath(cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dotDir, "settings.json"), path)
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	assert.Error(t, Watch(path, func(fsnotify.Event) {}), "missing file cannot be watched")

	require.NoError(t, os.WriteFile(path, []byte(`{"version": 1}`), 0o644))
	changed := make(chan struct{}, 1)
	require.NoError(t, Watch(path, func(fsnotify.Event) {
		select {
		case changed <- struct{}{}:
		default:
		}
	}))

	// give the watcher a moment to start before writing
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 1, "presets": []}`), 0o644))
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change event")
	}
}

func TestWatchExtensionlessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dm-settings")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 1}`), 0o644))
	assert.NoError(t, Watch(path, func(fsnotify.Event) {}))

	yamlPath := filepath.Join(t.TempDir(), "settings.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("version: 1\n"), 0o644))
	assert.NoError(t, Watch(yamlPath, func(fsnotify.Event) {}))
	assert.Equal(t, "json", watchFormat(path))
	assert.Equal(t, "yaml", watchFormat(yamlPath))
}

func TestKeyStyle(t *testing.T) {
	assert.Equal(t, "snake_case", keyStyle("log_level"))
	assert.Equal(t, "camelCase", keyStyle("logLevel"))
	assert.Equal(t, "unknown style", keyStyle(""))
}
