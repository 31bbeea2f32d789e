package config

import (
	"os"
	"path/filepath"
)

// DefaultHomeDir returns ~/.netmgmt, or a directory under the system temp dir when
// the user home cannot be determined.
func DefaultHomeDir() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".netmgmt")
	}
	return filepath.Join(userHome, ".netmgmt")
}

// DefaultConfigPath returns the config file path inside homeDir.
func DefaultConfigPath(homeDir string) string {
	return filepath.Join(homeDir, "config.yaml")
}
