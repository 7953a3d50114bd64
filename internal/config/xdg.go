// ABOUTME: XDG Base Directory helpers
// ABOUTME: Resolves data and config directories with fallbacks
package config

import (
	"os"
	"path/filepath"
)

const appName = "runlog"

// GetDataHome returns XDG_DATA_HOME or fallback to ~/.local/share
func GetDataHome() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return xdg
	}
	home := os.Getenv("HOME")
	return filepath.Join(home, ".local", "share")
}

// GetConfigHome returns XDG_CONFIG_HOME or fallback to ~/.config
func GetConfigHome() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	home := os.Getenv("HOME")
	return filepath.Join(home, ".config")
}

// HistoryDBPath returns RUNLOG_DB_PATH or the run history database under the data home.
func HistoryDBPath() string {
	if p := os.Getenv("RUNLOG_DB_PATH"); p != "" {
		return p
	}
	return filepath.Join(GetDataHome(), appName, appName+".db")
}

// UserConfigPath is the config used when no project .runlog file exists.
func UserConfigPath() string {
	return filepath.Join(GetConfigHome(), appName, "config.toml")
}
