// Package config holds process-level configuration for the API server.
// Settings come from an optional YAML file selected by CONFIG_FILE, with
// environment variables taking precedence over the file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	pkgconfig "doc-digest/pkg/config"
)

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string

	// ReadHeaderTimeout bounds header reads to prevent Slowloris attacks.
	ReadHeaderTimeout time.Duration

	// RequestTimeout bounds one request end to end, including model calls.
	RequestTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns the server defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:              ":5000",
		ReadHeaderTimeout: 10 * time.Second,
		RequestTimeout:    5 * time.Minute,
		ShutdownTimeout:   5 * time.Second,
	}
}

// serverConfigFile is the YAML representation. Durations are strings in Go
// duration syntax ("30s", "5m").
type serverConfigFile struct {
	Addr              string `yaml:"addr"`
	ReadHeaderTimeout string `yaml:"read_header_timeout"`
	RequestTimeout    string `yaml:"request_timeout"`
	ShutdownTimeout   string `yaml:"shutdown_timeout"`
}

// LoadServerConfig resolves the server configuration: defaults, then the
// CONFIG_FILE YAML if set, then SERVER_* environment variables.
func LoadServerConfig() (ServerConfig, error) {
	cfg := DefaultServerConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return ServerConfig{}, err
		}
	}

	cfg.Addr = pkgconfig.GetEnvString("SERVER_ADDR", cfg.Addr)
	cfg.ReadHeaderTimeout = pkgconfig.GetEnvDuration("SERVER_READ_HEADER_TIMEOUT", cfg.ReadHeaderTimeout)
	cfg.RequestTimeout = pkgconfig.GetEnvDuration("SERVER_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.ShutdownTimeout = pkgconfig.GetEnvDuration("SERVER_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)

	if err := cfg.Validate(); err != nil {
		return ServerConfig{}, fmt.Errorf("invalid server configuration: %w", err)
	}

	return cfg, nil
}

// applyFile overlays settings from a YAML file onto cfg.
func applyFile(cfg *ServerConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var file serverConfigFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if file.Addr != "" {
		cfg.Addr = file.Addr
	}
	for _, d := range []struct {
		raw  string
		dest *time.Duration
		name string
	}{
		{file.ReadHeaderTimeout, &cfg.ReadHeaderTimeout, "read_header_timeout"},
		{file.RequestTimeout, &cfg.RequestTimeout, "request_timeout"},
		{file.ShutdownTimeout, &cfg.ShutdownTimeout, "shutdown_timeout"},
	} {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("parse %s in %s: %w", d.name, path, err)
		}
		*d.dest = parsed
	}

	return nil
}

// Validate checks the configuration for values that would break the server.
func (c ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address cannot be empty")
	}
	if err := pkgconfig.ValidatePositiveDuration(c.ReadHeaderTimeout); err != nil {
		return fmt.Errorf("read header timeout: %w", err)
	}
	if err := pkgconfig.ValidatePositiveDuration(c.RequestTimeout); err != nil {
		return fmt.Errorf("request timeout: %w", err)
	}
	if err := pkgconfig.ValidatePositiveDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown timeout: %w", err)
	}
	return nil
}
