package config

// Emberfile represents the structure of the ember.yaml configuration file.
type Emberfile struct {
	DataDir             string         `yaml:"dataDir"`
	DownloadConcurrency int            `yaml:"downloadConcurrency"`
	MemoryMB            int            `yaml:"memoryMB"`
	JavaPath            string         `yaml:"javaPath"`
	Preset              string         `yaml:"preset"`
	CustomFlags         []string       `yaml:"customFlags"`
	Resolution          *ResolutionDTO `yaml:"resolution"`
}

// ResolutionDTO is the window size block of the configuration file.
type ResolutionDTO struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}
