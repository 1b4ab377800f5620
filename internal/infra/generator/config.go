// Package generator provides model-backed implementations of the question
// answering port. It mirrors the summarizer adapters: OpenAI behind circuit
// breaker and retry, plus a deterministic no-op for development.
package generator

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"doc-digest/internal/usecase/qa"
	"doc-digest/pkg/config"
)

// Provider selects which generation backend to build.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderNoop   Provider = "noop"
)

// Config holds configuration for the generation adapters.
type Config struct {
	// Provider selects the backend: openai or noop.
	Provider Provider

	// Model is the OpenAI API model identifier.
	Model string

	// Timeout is the maximum duration for a single generation API call.
	Timeout time.Duration
}

// LoadConfig loads adapter configuration from environment variables.
//
// Environment variables:
//   - GENERATOR_PROVIDER: openai | noop (default: noop)
//   - GENERATOR_MODEL: OpenAI model id (default: gpt-4o-mini)
//   - GENERATOR_TIMEOUT: per-call timeout (default: 30s)
func LoadConfig() (Config, error) {
	cfg := Config{
		Provider: Provider(config.GetEnvString("GENERATOR_PROVIDER", string(ProviderNoop))),
		Model:    config.GetEnvString("GENERATOR_MODEL", "gpt-4o-mini"),
		Timeout:  config.GetEnvDuration("GENERATOR_TIMEOUT", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid generator configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration and returns an error if invalid.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderNoop:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if err := config.ValidatePositiveDuration(c.Timeout); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}
	return nil
}

// New builds the generative model selected by the configuration.
func New(cfg Config) (qa.GenerativeModel, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
		return NewOpenAI(apiKey, cfg), nil

	case ProviderNoop:
		slog.Warn("using noop generator, answers will be canned responses")
		return NewNoop(), nil

	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
