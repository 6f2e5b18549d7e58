//go:build windows

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

type config struct {
	Tooltip     string `yaml:"tooltip"`
	IconPath    string `yaml:"icon_path"`
	LogLevel    string `yaml:"log_level"`
	MetricsAddr string `yaml:"metrics_addr"`
	PipeName    string `yaml:"pipe_name"`
}

func defaultConfig() *config {
	return &config{
		Tooltip:     "wintray demo",
		LogLevel:    "info",
		MetricsAddr: "localhost:9188",
		PipeName:    `\\.\pipe\wintray-demo`,
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "traydemo.yaml"
	}
	return filepath.Join(dir, "traydemo", "config.yaml")
}

// loadConfig reads a yaml config file, falling back to defaults when the
// file does not exist and backfilling fields left empty.
func loadConfig(path string) (*config, error) {
	cfg := defaultConfig()
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("config parse: %w", err)
	}
	if cfg.Tooltip == "" {
		cfg.Tooltip = defaultConfig().Tooltip
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultConfig().LogLevel
	}
	return cfg, nil
}
