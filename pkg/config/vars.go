package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "orthobot"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/orthobot by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/orthobot by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/orthobot/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// DataDir returns the directory where decompressed OMA export files live.
// Returns ~/.local/share/orthobot/oma by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "oma")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/orthobot/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// RunLogPath returns the full path to the SQLite run log database.
// Returns ~/.cache/orthobot/runs.db by default.
func RunLogPath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "runs.db")
}

// MappingCacheDir returns the directory of the Badger mapping cache.
// Returns ~/.cache/orthobot/mappings by default.
func MappingCacheDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "mappings")
}

// OMADir returns the effective OMA data directory for the config.
func (c *Config) OMADir() string {
	if c.OMA.DataDir != "" {
		return c.OMA.DataDir
	}
	return DataDir(c.HomeDir)
}
