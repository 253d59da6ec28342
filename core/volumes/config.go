package volumes

import "path/filepath"

// Config holds the filesystem layout of the shared TeddyCloud data volume.
// All other paths are derived from the single data root.
type Config struct {
	// DataPath is the mount point of the TeddyCloud data directory.
	DataPath string `mapstructure:"data_path" default:"/data"`
}

// ConfigPath is the device config directory (tonies.custom.json,
// config.overlay.ini).
func (c Config) ConfigPath() string {
	return filepath.Join(c.DataPath, "config")
}

// LibraryPath is the audio content library root.
func (c Config) LibraryPath() string {
	return filepath.Join(c.DataPath, "library")
}

// ContentPath is the per-box content directory root, holding one
// subdirectory per box with the per-tag hardware state files.
func (c Config) ContentPath() string {
	return filepath.Join(c.DataPath, "content", "default")
}
