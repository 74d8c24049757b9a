package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Format != "json" || cfg.LogLevel != "warn" || cfg.MaxLineSize != 0 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}

	path := writeFile(t, "ras.toml", "format = \"toml\"\nmax_line_size = 1048576\ntrue_token = \"yes\"\n")
	cfg, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	expected := Config{Format: "toml", LogLevel: "warn", MaxLineSize: 1 << 20, TrueToken: "yes", FalseToken: "False"}
	if cfg != expected {
		t.Errorf("Expected %+v, got %+v", expected, cfg)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		text    string
	}{
		{"unknown key", "formt = \"json\"\n", "unknown keys: formt"},
		{"bad format", "format = \"xml\"\n", "unsupported format"},
		{"bad level", "log_level = \"loud\"\n", "invalid log level"},
		{"negative size", "max_line_size = -1\n", "must not be negative"},
		{"not toml", "format = \n", "ras.toml"},
		{"empty true token", "true_token = \"\"\n", "must not be empty"},
		{"same bool tokens", "true_token = \"False\"\n", "must differ"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := writeFile(t, "ras.toml", test.content)
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), test.text) {
				t.Errorf("Expected error to contain %q, got %v", test.text, err)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for a missing config file")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, test := range tests {
		level, err := parseLevel(test.input)
		if err != nil {
			t.Errorf("parseLevel(%q) failed: %v", test.input, err)
			continue
		}
		if level != test.expected {
			t.Errorf("parseLevel(%q): expected %v, got %v", test.input, test.expected, level)
		}
	}
}
