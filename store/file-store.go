package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// FileStore keeps settings in a single json or yaml file.
type FileStore struct {
	path   string
	format string
}

// NewFileStore creates a store for path. The format follows the extension:
// .yaml and .yml are yaml, everything else json.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("settings path cannot be empty")
	}
	format := "json"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	}
	return &FileStore{path: path, format: format}, nil
}

// Path returns the file the store reads and writes.
func (fs *FileStore) Path() string {
	return fs.path
}

// Marshal serializes data in the store's format.
func (fs *FileStore) Marshal(data any) ([]byte, error) {
	switch fs.format {
	case "yaml":
		return yaml.Marshal(data)
	default:
		return json.MarshalIndent(data, "", "  ")
	}
}

// Unmarshal deserializes data in the store's format.
func (fs *FileStore) Unmarshal(data []byte, v any) error {
	switch fs.format {
	case "yaml":
		return yaml.Unmarshal(data, v)
	default:
		return json.Unmarshal(data, v)
	}
}

// Load reads the settings. A missing or empty file yields empty settings.
func (fs *FileStore) Load() (Settings, error) {
	settings := Settings{Version: SettingsVersion}
	serialized, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return settings, errors.Wrapf(err, "failed to read settings %s", fs.path)
	}
	if len(strings.TrimSpace(string(serialized))) == 0 {
		return settings, nil
	}
	if err := fs.Unmarshal(serialized, &settings); err != nil {
		return Settings{}, errors.Wrapf(err, "failed to parse settings %s", fs.path)
	}
	if settings.Version > SettingsVersion {
		return Settings{}, fmt.Errorf("settings %s were written by a newer version (%d)", fs.path, settings.Version)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, errors.Wrapf(err, "invalid settings %s", fs.path)
	}
	return settings, nil
}

// Save validates and writes the settings. The file is replaced atomically so
// a watcher never sees a half written document.
func (fs *FileStore) Save(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	settings.Version = SettingsVersion
	serialized, err := fs.Marshal(settings)
	if err != nil {
		return err
	}
	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create settings directory %s", dir)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(fs.path)+".*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp settings file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(append(serialized, '\n')); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "failed to write settings")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to write settings")
	}
	if err := os.Rename(tmp.Name(), fs.path); err != nil {
		return errors.Wrapf(err, "failed to replace settings %s", fs.path)
	}
	return nil
}
