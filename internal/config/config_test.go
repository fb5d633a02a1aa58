package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "ktp" {
		t.Errorf("expected Name=ktp, got %s", cfg.Name)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected Level=info, got %s", cfg.Logging.Level)
	}
	if cfg.KB.Path != "" {
		t.Errorf("expected empty KB path (embedded default), got %s", cfg.KB.Path)
	}
	if !cfg.Session.SaveSnapshots {
		t.Error("expected SaveSnapshots=true by default")
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("KTP_KB", "")
	t.Setenv("KTP_LOG_LEVEL", "")
	t.Setenv("KTP_SNAPSHOT_DIR", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "ktp.yaml")

	cfg := DefaultConfig()
	cfg.KB.Path = "custom_kb.yaml"
	cfg.Logging.Level = "debug"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.KB.Path != "custom_kb.yaml" {
		t.Errorf("expected KB.Path=custom_kb.yaml, got %s", loaded.KB.Path)
	}
	if loaded.Logging.Level != "debug" {
		t.Errorf("expected Level=debug, got %s", loaded.Logging.Level)
	}
}

func TestConfig_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("KTP_KB", "")
	t.Setenv("KTP_LOG_LEVEL", "")
	t.Setenv("KTP_SNAPSHOT_DIR", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name != "ktp" {
		t.Errorf("expected defaults, got Name=%s", cfg.Name)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	os.Setenv("KTP_KB", "/etc/ktp/kb.yaml")
	defer os.Unsetenv("KTP_KB")
	os.Setenv("KTP_LOG_LEVEL", "debug")
	defer os.Unsetenv("KTP_LOG_LEVEL")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	if cfg.KB.Path != "/etc/ktp/kb.yaml" {
		t.Errorf("expected KB.Path=/etc/ktp/kb.yaml, got %s", cfg.KB.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected Level=debug, got %s", cfg.Logging.Level)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	cfg.Logging.Level = "chatty"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for bad log level")
	}

	cfg = DefaultConfig()
	cfg.KB.Watch = true
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for watch without a path")
	}
}
