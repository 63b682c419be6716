package ports

import "go.trai.ch/ember/internal/core/domain"

// Settings is the host-tunable launcher configuration.
type Settings struct {
	// DataDir is the root of the on-disk store.
	DataDir string
	// DownloadConcurrency bounds parallel downloads. Zero means the default.
	DownloadConcurrency int
	// MemoryMB is the default -Xmx value in megabytes.
	MemoryMB int
	// JavaPath overrides Java runtime resolution when set.
	JavaPath string
	// Preset names the default JVM tuning preset.
	Preset string
	// CustomFlags are extra JVM flags appended after preset flags.
	CustomFlags []string
	// Resolution is the default game window size.
	Resolution *domain.Resolution
}

// ConfigLoader loads launcher settings.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads settings from the given path, or from the default search
	// locations when path is empty. Missing files yield defaults.
	Load(path string) (*Settings, error)
}
