package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/ember/internal/adapters/config"
)

func TestLoader_Defaults(t *testing.T) {
	loader := config.NewLoader()

	settings, err := loader.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.DefaultDownloadConcurrency, settings.DownloadConcurrency)
	require.Equal(t, config.DefaultMemoryMB, settings.MemoryMB)
	require.NotEmpty(t, settings.DataDir)
	require.Empty(t, settings.JavaPath)
}

func TestLoader_FileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ember.yaml")
	content := `
dataDir: /srv/ember
downloadConcurrency: 4
memoryMB: 8192
preset: aikars
customFlags:
  - "-XX:+UseStringDeduplication"
resolution:
  width: 1920
  height: 1080
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := config.NewLoader().Load(path)
	require.NoError(t, err)
	require.Equal(t, "/srv/ember", settings.DataDir)
	require.Equal(t, 4, settings.DownloadConcurrency)
	require.Equal(t, 8192, settings.MemoryMB)
	require.Equal(t, "aikars", settings.Preset)
	require.Equal(t, []string{"-XX:+UseStringDeduplication"}, settings.CustomFlags)
	require.NotNil(t, settings.Resolution)
	require.Equal(t, 1920, settings.Resolution.Width)
}

func TestLoader_EnvFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "from-env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("memoryMB: 2048\n"), 0o644))
	t.Setenv(config.EnvConfigPath, path)

	settings, err := config.NewLoader().Load("")
	require.NoError(t, err)
	require.Equal(t, 2048, settings.MemoryMB)
}

func TestLoader_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ember.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dataDir: [unclosed"), 0o644))

	_, err := config.NewLoader().Load(path)
	require.Error(t, err)
}
