package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("expected version 1, got %d", cfg.Version)
	}
	if cfg.Logging.Format != "human" || cfg.Logging.Level != "info" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("unexpected server defaults: %+v", cfg.Server)
	}
	if len(cfg.Scan.IgnoreDirs) == 0 {
		t.Error("expected default ignore dirs")
	}
}

func TestLoad_FromFile(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".pylens")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	content := `{"version": 1, "logging": {"format": "json", "level": "debug"}, "server": {"host": "0.0.0.0", "port": "9000"}}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != "9000" {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	// Fields missing from the file keep their defaults.
	if !cfg.History.Enabled {
		t.Error("expected history to default to enabled")
	}
}

func TestSaveAndReload(t *testing.T) {
	root := t.TempDir()

	cfg := DefaultConfig()
	cfg.Server.Port = "7777"
	if err := cfg.Save(root); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Server.Port != "7777" {
		t.Errorf("expected port 7777, got %s", loaded.Server.Port)
	}
}
