// Package util holds small helpers shared by the CLI commands.
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a user-supplied path by handling:
// - Tilde (~) expansion to user home directory
// - Environment variable expansion ($VAR or ${VAR})
// - Cleaning the final path
//
// Examples:
//   - "~/topology.yaml" -> "/home/user/topology.yaml"
//   - "$NETMGMT_HOME/config.yaml" -> "/home/user/.netmgmt/config.yaml"
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if strings.HasPrefix(path, "~/") || path == "~" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		if path == "~" {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[2:])
	}

	return filepath.Clean(os.ExpandEnv(path)), nil
}
