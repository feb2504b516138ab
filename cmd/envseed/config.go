package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/tusharlock10/envseed/internal/probe"
)

// cliConfig is the resolved runtime configuration of the CLI.
type cliConfig struct {
	ProbeTimeout   time.Duration
	LogLevel       string
	DisabledProbes []string

	// Identity overrides pin facets that would otherwise be sampled.
	UserAgent string
	Platform  string
	Language  string
}

func defaultCLIConfig() cliConfig {
	return cliConfig{
		ProbeTimeout: probe.DefaultTimeout,
		LogLevel:     "info",
	}
}

// fileConfig maps envseed.toml keys onto cliConfig.
type fileConfig struct {
	ProbeTimeoutMS int64    `toml:"probe_timeout_ms"`
	LogLevel       string   `toml:"log_level"`
	DisabledProbes []string `toml:"disabled_probes"`
	UserAgent      string   `toml:"user_agent"`
	Platform       string   `toml:"platform"`
	Language       string   `toml:"language"`
}

// loadCLIConfig reads a TOML config with default overlay: only keys present
// in the file override the defaults.
func loadCLIConfig(path string) (cliConfig, error) {
	cfg := defaultCLIConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return cliConfig{}, fmt.Errorf("load envseed config: %w", err)
	}

	if meta.IsDefined("probe_timeout_ms") {
		if raw.ProbeTimeoutMS <= 0 {
			return cliConfig{}, fmt.Errorf("probe_timeout_ms must be positive, got %d", raw.ProbeTimeoutMS)
		}
		cfg.ProbeTimeout = time.Duration(raw.ProbeTimeoutMS) * time.Millisecond
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("disabled_probes") {
		for _, name := range raw.DisabledProbes {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			cfg.DisabledProbes = append(cfg.DisabledProbes, name)
		}
	}
	if meta.IsDefined("user_agent") {
		cfg.UserAgent = strings.TrimSpace(raw.UserAgent)
	}
	if meta.IsDefined("platform") {
		cfg.Platform = strings.TrimSpace(raw.Platform)
	}
	if meta.IsDefined("language") {
		cfg.Language = strings.TrimSpace(raw.Language)
	}

	return cfg, nil
}
