// ABOUTME: Project .runlog file detection and config loading
// ABOUTME: Walks directory tree to find project root and applies defaults
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ProjectFile is the name of the per-project config file.
const ProjectFile = ".runlog"

const (
	DefaultLogDir       = "inference_logs"
	DefaultSettingsFile = "settings.py"
	DefaultRunner       = "run_inference.sh"
)

type ProjectConfig struct {
	LogDir       string `toml:"log_dir"`
	SettingsFile string `toml:"settings_file"`
	Runner       string `toml:"runner"`
	StrictNames  bool   `toml:"strict_names"`
	Append       bool   `toml:"append"`
	History      bool   `toml:"history"`
	Sync         bool   `toml:"sync"`
	CharmHost    string `toml:"charm_host"`
}

// Defaults returns the config used when no .runlog file is found.
func Defaults() *ProjectConfig {
	return &ProjectConfig{
		LogDir:       DefaultLogDir,
		SettingsFile: DefaultSettingsFile,
		Runner:       DefaultRunner,
		History:      true,
	}
}

// FindProjectRoot walks up from dir looking for .runlog file
// Returns empty string if not found
func FindProjectRoot(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	// Without a home directory the walk only stops at the filesystem root.
	homeDir, _ := os.UserHomeDir()

	current := absDir
	for {
		configPath := filepath.Join(current, ProjectFile)
		if _, err := os.Stat(configPath); err == nil {
			return current, nil
		}

		parent := filepath.Dir(current)

		// Stop at filesystem root or home directory
		if parent == current || (homeDir != "" && current == homeDir) {
			return "", nil
		}

		current = parent
	}
}

// LoadProjectConfig loads .runlog config from path
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Resolve finds the .runlog file above dir and loads it. Without one it
// tries the user config file, then defaults. Relative paths stay relative to
// dir, which is where the session runs.
func Resolve(dir string) (*ProjectConfig, error) {
	root, err := FindProjectRoot(dir)
	if err != nil {
		return nil, err
	}
	if root != "" {
		return LoadProjectConfig(filepath.Join(root, ProjectFile))
	}

	userConfig := UserConfigPath()
	if _, err := os.Stat(userConfig); err == nil {
		return LoadProjectConfig(userConfig)
	}
	return Defaults(), nil
}
