// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-08-24
// Last Modified: 2026-08-29

// Package config handles loading and validating AnyRepo configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Remote kinds supported by the relay.
const (
	KindGitHub = "github"
	KindGitLab = "gitlab"
)

// Config is the root configuration structure. It is loaded once at
// startup and treated as an immutable snapshot for the process
// lifetime.
type Config struct {
	// Addr is the listen address of the hook server.
	Addr string `yaml:"addr" env:"ANYREPO_ADDR"`

	// LogLevel sets the logging verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level" env:"ANYREPO_LOG_LEVEL"`

	// RemoteTimeout bounds one remote's reconciliation pass.
	RemoteTimeout Duration `yaml:"remote_timeout"`

	// Remotes lists the mirror targets events are replayed against.
	Remotes []RemoteConfig `yaml:"remotes"`

	// Hooks lists the webhook endpoints served.
	Hooks []HookConfig `yaml:"hooks"`
}

// RemoteConfig identifies one mirror target.
type RemoteConfig struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

// HookConfig defines one inbound webhook endpoint.
type HookConfig struct {
	Endpoint string `yaml:"endpoint"`
	Kind     string `yaml:"kind"`
	Secret   string `yaml:"secret"`
}

// Duration wraps time.Duration so YAML values like "30s" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Load reads a config file, expands environment variables, applies
// environment overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand ${VAR} references so secrets can stay out of the file
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindConfigPath searches for a config file in standard locations.
func FindConfigPath(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	candidates := []string{
		"anyrepo.yaml",
		"anyrepo.yml",
		"/etc/anyrepo/anyrepo.yaml",
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			abs, _ := filepath.Abs(c)
			return abs
		}
	}

	return ""
}

// applyDefaults sets default values for unset fields.
func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.RemoteTimeout == 0 {
		c.RemoteTimeout = Duration(30 * time.Second)
	}
}

// Validate checks the loaded configuration for consistency.
func (c *Config) Validate() error {
	names := map[string]bool{}
	for i, r := range c.Remotes {
		if r.Name == "" {
			return fmt.Errorf("remote %d: missing name", i)
		}
		if names[r.Name] {
			return fmt.Errorf("remote %q: duplicate name", r.Name)
		}
		names[r.Name] = true

		if r.Kind != KindGitHub && r.Kind != KindGitLab {
			return fmt.Errorf("remote %q: unsupported kind %q", r.Name, r.Kind)
		}
		if r.Token == "" {
			return fmt.Errorf("remote %q: missing token", r.Name)
		}
	}

	endpoints := map[string]bool{}
	for i, h := range c.Hooks {
		if h.Endpoint == "" || !strings.HasPrefix(h.Endpoint, "/") {
			return fmt.Errorf("hook %d: endpoint must be an absolute path", i)
		}
		if endpoints[h.Endpoint] {
			return fmt.Errorf("hook %q: duplicate endpoint", h.Endpoint)
		}
		endpoints[h.Endpoint] = true

		if h.Kind != KindGitHub && h.Kind != KindGitLab {
			return fmt.Errorf("hook %q: unsupported kind %q", h.Endpoint, h.Kind)
		}
		if h.Secret == "" {
			return fmt.Errorf("hook %q: missing secret", h.Endpoint)
		}
	}

	return nil
}
