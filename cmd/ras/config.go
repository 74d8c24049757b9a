package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/raspy-format/ras"
)

// Config holds settings read from the optional TOML config file.
type Config struct {
	Format      string `toml:"format"`
	LogLevel    string `toml:"log_level"`
	MaxLineSize int    `toml:"max_line_size"`
	TrueToken   string `toml:"true_token"`
	FalseToken  string `toml:"false_token"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Format:     "json",
		LogLevel:   "warn",
		TrueToken:  "True",
		FalseToken: "False",
	}
}

// LoadConfig reads a TOML config file over the defaults. An empty path
// returns the defaults. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	return cfg, cfg.Validate()
}

// Validate checks every setting against what the parser and encoders accept.
func (c Config) Validate() error {
	if _, err := ras.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.MaxLineSize < 0 {
		return fmt.Errorf("config: max_line_size must not be negative, got %d", c.MaxLineSize)
	}
	if c.TrueToken == "" || c.FalseToken == "" {
		return fmt.Errorf("config: true_token and false_token must not be empty")
	}
	if c.TrueToken == c.FalseToken {
		return fmt.Errorf("config: true_token and false_token must differ, both are %q", c.TrueToken)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
