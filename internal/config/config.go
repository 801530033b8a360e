// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DatabasePath resolves the SQLite database location. Precedence:
// 1. Viper configuration (config file or DEBTIFY_ env vars)
// 2. DEBTIFY_DB environment variable
// 3. Default under the user's home directory
func DatabasePath() string {
	if v := viper.GetString("database.path"); v != "" {
		return ExpandPath(v)
	}
	if v := os.Getenv("DEBTIFY_DB"); v != "" {
		return ExpandPath(v)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "debtify.db"
	}
	return filepath.Join(home, ".local", "share", "debtify", "debtify.db")
}

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
