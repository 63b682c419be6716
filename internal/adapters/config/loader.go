// Package config provides the launcher settings loader.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// EnvConfigPath is the environment variable naming an explicit config file.
const EnvConfigPath = "EMBER_CONFIG"

const defaultFilename = "ember.yaml"

// Default values applied for absent fields.
const (
	DefaultDownloadConcurrency = 8
	DefaultMemoryMB            = 4096
)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct{}

// NewLoader creates a new FileConfigLoader.
func NewLoader() *FileConfigLoader {
	return &FileConfigLoader{}
}

// Load reads settings from the given path. When path is empty the loader
// falls back to $EMBER_CONFIG, then to ember.yaml in the default data
// directory. A missing file yields pure defaults.
func (l *FileConfigLoader) Load(path string) (*ports.Settings, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = filepath.Join(defaultDataDir(), defaultFilename)
	}

	settings := defaultSettings()

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file Emberfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	apply(settings, file)
	return settings, nil
}

func defaultSettings() *ports.Settings {
	return &ports.Settings{
		DataDir:             defaultDataDir(),
		DownloadConcurrency: DefaultDownloadConcurrency,
		MemoryMB:            DefaultMemoryMB,
	}
}

func apply(settings *ports.Settings, file Emberfile) {
	if file.DataDir != "" {
		settings.DataDir = file.DataDir
	}
	if file.DownloadConcurrency > 0 {
		settings.DownloadConcurrency = file.DownloadConcurrency
	}
	if file.MemoryMB > 0 {
		settings.MemoryMB = file.MemoryMB
	}
	if file.JavaPath != "" {
		settings.JavaPath = file.JavaPath
	}
	if file.Preset != "" {
		settings.Preset = file.Preset
	}
	if len(file.CustomFlags) > 0 {
		settings.CustomFlags = file.CustomFlags
	}
	if file.Resolution != nil && file.Resolution.Width > 0 && file.Resolution.Height > 0 {
		settings.Resolution = &domain.Resolution{
			Width:  file.Resolution.Width,
			Height: file.Resolution.Height,
		}
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ember"
	}
	return filepath.Join(home, ".ember")
}
