// ABOUTME: Tests for project .runlog file detection
// ABOUTME: Validates directory walking, defaults, and config parsing
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindProjectRoot(t *testing.T) {
	// Create temp directory structure
	tmpDir := t.TempDir()

	projectRoot := filepath.Join(tmpDir, "project")
	subDir := filepath.Join(projectRoot, "experiments", "deep", "nested")
	_ = os.MkdirAll(subDir, 0755) //nolint:gosec // Test directory permissions

	// Create .runlog file
	configFile := filepath.Join(projectRoot, ProjectFile)
	_ = os.WriteFile(configFile, []byte("append = true\n"), 0644) //nolint:gosec // Test file permissions

	t.Run("finds project root from nested directory", func(t *testing.T) {
		root, err := FindProjectRoot(subDir)
		if err != nil {
			t.Fatalf("FindProjectRoot failed: %v", err)
		}
		if root != projectRoot {
			t.Errorf("got %s, want %s", root, projectRoot)
		}
	})

	t.Run("returns empty when no .runlog found", func(t *testing.T) {
		otherDir := filepath.Join(tmpDir, "other")
		_ = os.MkdirAll(otherDir, 0755) //nolint:gosec // Test directory permissions

		root, err := FindProjectRoot(otherDir)
		if err != nil {
			t.Fatalf("FindProjectRoot failed: %v", err)
		}
		if root != "" {
			t.Errorf("got %s, want empty string", root)
		}
	})
}

func TestLoadProjectConfig(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := `
log_dir = "custom-logs"
runner = "bin/infer"
strict_names = true
sync = true
`
	configPath := filepath.Join(tmpDir, ProjectFile)
	_ = os.WriteFile(configPath, []byte(configContent), 0644) //nolint:gosec // Test file permissions

	cfg, err := LoadProjectConfig(configPath)
	if err != nil {
		t.Fatalf("LoadProjectConfig failed: %v", err)
	}

	if cfg.LogDir != "custom-logs" {
		t.Errorf("got LogDir %s, want custom-logs", cfg.LogDir)
	}
	if cfg.Runner != "bin/infer" {
		t.Errorf("got Runner %s, want bin/infer", cfg.Runner)
	}
	if !cfg.StrictNames || !cfg.Sync {
		t.Error("expected StrictNames and Sync to be true")
	}

	// Keys absent from the file keep their defaults
	if cfg.SettingsFile != DefaultSettingsFile {
		t.Errorf("got SettingsFile %s, want %s", cfg.SettingsFile, DefaultSettingsFile)
	}
	if !cfg.History {
		t.Error("expected History to default to true")
	}
}

func TestLoadProjectConfigInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ProjectFile)
	_ = os.WriteFile(configPath, []byte("log_dir = [unterminated\n"), 0644) //nolint:gosec // Test file permissions

	if _, err := LoadProjectConfig(configPath); err == nil {
		t.Fatal("expected error for malformed TOML")
	}
}

func TestResolve(t *testing.T) {
	t.Run("falls back to defaults", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		cfg, err := Resolve(t.TempDir())
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if cfg.LogDir != DefaultLogDir || cfg.Runner != DefaultRunner {
			t.Errorf("unexpected defaults: %+v", cfg)
		}
	})

	t.Run("loads file from parent directory", func(t *testing.T) {
		root := t.TempDir()
		sub := filepath.Join(root, "sub")
		_ = os.MkdirAll(sub, 0755)                                                               //nolint:gosec // Test directory permissions
		_ = os.WriteFile(filepath.Join(root, ProjectFile), []byte("log_dir = \"runs\"\n"), 0644) //nolint:gosec // Test file permissions

		cfg, err := Resolve(sub)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if cfg.LogDir != "runs" {
			t.Errorf("got LogDir %s, want runs", cfg.LogDir)
		}
	})

	t.Run("works without a home directory", func(t *testing.T) {
		t.Setenv("HOME", "")
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		cfg, err := Resolve(t.TempDir())
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if cfg.LogDir != DefaultLogDir {
			t.Errorf("got LogDir %s, want %s", cfg.LogDir, DefaultLogDir)
		}
	})

	t.Run("uses user config when no project file", func(t *testing.T) {
		cfgHome := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", cfgHome)
		_ = os.MkdirAll(filepath.Join(cfgHome, "runlog"), 0755)                                              //nolint:gosec // Test directory permissions
		_ = os.WriteFile(filepath.Join(cfgHome, "runlog", "config.toml"), []byte("history = false\n"), 0644) //nolint:gosec // Test file permissions

		cfg, err := Resolve(t.TempDir())
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if cfg.History {
			t.Error("expected History to be false from user config")
		}
	})
}
