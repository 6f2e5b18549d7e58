//go:build windows

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Tooltip != "wintray demo" || cfg.LogLevel != "info" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigBackfillsEmptyFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "tooltip: \"\"\nlog_level: debug\nmetrics_addr: \"\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Tooltip != "wintray demo" {
		t.Errorf("tooltip = %q, want backfilled default", cfg.Tooltip)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q, want debug", cfg.LogLevel)
	}
	if cfg.MetricsAddr != "" {
		t.Errorf("metrics_addr = %q, want empty (explicitly disabled)", cfg.MetricsAddr)
	}
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("tooltip: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("loadConfig should fail on malformed yaml")
	}
}
