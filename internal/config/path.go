// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading ~ and $VAR environment references in a file
// path.
func ExpandPath(path string) string {
	switch {
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}

// DefaultDatabasePath is where run history lives when database.path is not
// configured.
func DefaultDatabasePath() string {
	return ExpandPath("~/.local/share/bankcat/bankcat.db")
}

// DefaultConfigDir is the directory searched for config.yaml.
func DefaultConfigDir() string {
	return ExpandPath("~/.config/bankcat")
}
